package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/austra-lang/austra/internal/lexer"
	"github.com/austra-lang/austra/pkg/token"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an AUSTRA expression and print the resulting tokens",
	Long: `Tokenize an AUSTRA expression and print the resulting tokens.

If no file is given, reads from stdin. Use -e to tokenize an inline
expression instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize an inline expression instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only lexical errors")
}

func runLex(_ *cobra.Command, args []string) error {
	input, label, err := readInput(lexEval, args)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Printf("Tokenizing: %s\n", label)
		fmt.Println("---")
	}

	l := lexer.New(input)
	count := 0
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		count++
		if !lexOnlyErrs {
			printToken(tok)
		}
	}

	errs := l.Errors()
	for _, e := range errs {
		fmt.Printf("lexical error: %s\n", e.Error())
	}
	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", count)
	}
	if len(errs) > 0 {
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("[%-12s] %q", tok.Kind, tok.Text)
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
