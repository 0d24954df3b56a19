package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/pkg/austra"
)

var (
	completeSource string
	completeClass  bool
	completeParams bool
)

var completeCmd = &cobra.Command{
	Use:   "complete <text>",
	Short: "List completions at the end of a source fragment",
	Long: `complete drives the same member-lookup, class-member, and
parameter-info logic an editor would call at the caret: text is the
fragment up to (and ending at) the cursor.

Use --class to list a class's static members instead of resolving a
value's type, and --params to list the active call's overload signatures.`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)

	completeCmd.Flags().StringVar(&completeSource, "source", "", "full source text, for let/in header detection")
	completeCmd.Flags().BoolVar(&completeClass, "class", false, "list a class's static members")
	completeCmd.Flags().BoolVar(&completeParams, "params", false, "list the open call's overload signatures")
}

func runComplete(_ *cobra.Command, args []string) error {
	text := args[0]

	b, err := bindings.New()
	if err != nil {
		return fmt.Errorf("building bindings: %w", err)
	}

	switch {
	case completeParams:
		for _, name := range austra.ParamInfo(text, b) {
			fmt.Println(name)
		}
	case completeClass:
		for _, m := range austra.ClassMembers(text, b) {
			printMember(m.Name, m.Kind, m.ReturnType.String(), m.Doc)
		}
	default:
		members, resultType, ok := austra.Members(completeSource, text, b)
		if !ok {
			return fmt.Errorf("no completions: fragment did not resolve to a typed value")
		}
		if verbose {
			fmt.Printf("receiver type: %s\n", resultType)
		}
		for _, m := range members {
			printMember(m.Name, m.Kind, m.ReturnType.String(), m.Doc)
		}
	}
	return nil
}

func printMember(name, kind, returnType, doc string) {
	out := fmt.Sprintf("%-20s %-10s -> %s", name, kind, returnType)
	if doc != "" {
		out += "  // " + doc
	}
	fmt.Println(out)
}
