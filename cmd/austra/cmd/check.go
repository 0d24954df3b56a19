package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/pkg/austra"
)

var checkEval string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check a `;`-separated program and print each statement's result type",
	Long: `Type-check runs a dry parse: every top-level statement is
checked but no expression tree is retained, the same shape pkg/austra's
parse_type host call returns.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkEval, "eval", "e", "", "check an inline program instead of reading from file")
}

func runCheck(_ *cobra.Command, args []string) error {
	input, _, err := readInput(checkEval, args)
	if err != nil {
		return err
	}

	b, err := bindings.New()
	if err != nil {
		return fmt.Errorf("building bindings: %w", err)
	}

	types, err := austra.ParseType(input, b)
	if err != nil {
		return err
	}
	for i, t := range types {
		fmt.Printf("stmt[%d]: %s\n", i, t)
	}
	return nil
}
