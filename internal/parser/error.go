package parser

import (
	"fmt"

	"github.com/austra-lang/austra/pkg/token"
)

// ErrorKind classifies a parse-time failure (§7 "Error kinds").
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	NameError
	TypeError
	OverloadError
	UsageError
	Abort // benign: completion's caret-reached sentinel
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case OverloadError:
		return "OverloadError"
	case UsageError:
		return "UsageError"
	case Abort:
		return "Abort"
	default:
		return "Error"
	}
}

// ParseError is a single structured failure, carrying the offending
// token's position (§7: "the error message and the caret offset").
type ParseError struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
}

// Line and Column satisfy internal/errdisplay.Error without that
// package importing internal/parser.
func (e *ParseError) Line() int   { return e.Pos.Line }
func (e *ParseError) Column() int { return e.Pos.Column }
