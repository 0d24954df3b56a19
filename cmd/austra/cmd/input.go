package cmd

import (
	"fmt"
	"io"
	"os"
)

// readInput resolves a subcommand's source text from, in priority
// order, an inline -e/--eval flag, a file argument, or stdin -
// the same three-way precedence every dwscript subcommand uses.
func readInput(eval string, args []string) (input, label string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}
