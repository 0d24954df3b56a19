// Package errdisplay formats a parse failure with source context and a
// caret pointing at the offending token, built around internal/parser's
// *ParseError/ErrorKind and pkg/token.Position.
package errdisplay

import (
	"fmt"
	"strings"
)

// Error is the formattable shape errdisplay needs from a parser error;
// internal/parser.ParseError satisfies it without this package
// importing internal/parser (avoiding a dependency back into the
// compiler from its own error-display helper).
type Error interface {
	Error() string
	Line() int
	Column() int
}

// Format renders one error with its source line and a caret under the
// offending column. If color is true, ANSI codes highlight the caret
// and message.
func Format(err Error, source string, color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("error at line %d, column %d\n", err.Line(), err.Column()))

	line := sourceLine(source, err.Line())
	if line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", err.Line())
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+err.Column()-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(err.Error())
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders every error in errs, numbered the way the
// teacher's FormatErrors does for more than one.
func FormatAll(errs []Error, source string, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return Format(errs[0], source, color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("parsing failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(Format(err, source, color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
