package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/errdisplay"
	"github.com/austra-lang/austra/pkg/austra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read one statement per line from stdin and print its result type",
	Long: `repl is a line-at-a-time loop over parse_statement: each line
is its own independent program against one shared Bindings, the same
isolation pkg/austra.ParseAll relies on for concurrent hosts. Unlike a
stateful scripting REPL, "def" macros and "let" locals do not persist
between lines - each line starts a fresh Parser.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(*cobra.Command, []string) error {
	b, err := bindings.New()
	if err != nil {
		return fmt.Errorf("building bindings: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stderr, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Fprint(os.Stderr, "> ")
			continue
		}

		expr, err := austra.ParseStatement(line, b)
		if err != nil {
			fmt.Fprintln(os.Stderr, errdisplay.Format(lineError{err, line}, line, false))
		} else {
			fmt.Printf("%s\n", expr.Type)
		}
		fmt.Fprint(os.Stderr, "> ")
	}
	return scanner.Err()
}

// lineError adapts a pkg/austra error (which may wrap several
// parser.ParseError values with no single source position) to
// errdisplay.Error for a best-effort caret when one position applies.
type lineError struct {
	err  error
	line string
}

func (e lineError) Error() string { return e.err.Error() }
func (e lineError) Line() int     { return 1 }
func (e lineError) Column() int   { return 1 }
