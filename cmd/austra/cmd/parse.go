package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/errdisplay"
	"github.com/austra-lang/austra/internal/parser"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse and type-check an AUSTRA program, printing each statement's type",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse an inline expression instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the expression tree shape of each statement")
}

func runParse(_ *cobra.Command, args []string) error {
	input, _, err := readInput(parseEval, args)
	if err != nil {
		return err
	}

	b, err := bindings.New()
	if err != nil {
		return fmt.Errorf("building bindings: %w", err)
	}

	p := parser.New(input, b)
	stmts := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		displayed := make([]errdisplay.Error, len(errs))
		for i, e := range errs {
			displayed[i] = e
		}
		fmt.Print(errdisplay.FormatAll(displayed, input, false))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	for i, s := range stmts {
		fmt.Printf("stmt[%d]: %s\n", i, s.Type)
		if parseDumpAST {
			dumpExpr(s, 1)
		}
	}
	return nil
}

func dumpExpr(e *ast.Expr, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	switch e.Kind {
	case ast.KindConstant:
		fmt.Printf("%sConstant(%s): %s\n", pad, e.Type, e.Const)
	case ast.KindParameter:
		fmt.Printf("%sParameter(%s) #%d\n", pad, e.Type, e.ParamIndex)
	case ast.KindArithmetic:
		fmt.Printf("%sArithmetic %q (%s)\n", pad, e.Op, e.Type)
		dumpExpr(e.Left, indent+1)
		if e.Right != nil {
			dumpExpr(e.Right, indent+1)
		}
	case ast.KindCall, ast.KindNew:
		fmt.Printf("%sCall %s.%s (%s)\n", pad, e.ClassName, e.Method, e.Type)
		if e.Target != nil {
			dumpExpr(e.Target, indent+1)
		}
		for _, a := range e.Args {
			dumpExpr(a, indent+1)
		}
	case ast.KindMember:
		fmt.Printf("%sMember .%s (%s)\n", pad, e.Member, e.Type)
		dumpExpr(e.Target, indent+1)
	case ast.KindCondition:
		fmt.Printf("%sCondition (%s)\n", pad, e.Type)
		for i, c := range e.Conds {
			dumpExpr(c, indent+1)
			dumpExpr(e.Thens[i], indent+1)
		}
		dumpExpr(e.Else, indent+1)
	case ast.KindLambda:
		fmt.Printf("%sLambda (%s)\n", pad, e.Type)
		dumpExpr(e.Body, indent+1)
	case ast.KindConvert:
		fmt.Printf("%sConvert (%s)\n", pad, e.Type)
		dumpExpr(e.Operand, indent+1)
	case ast.KindBlock:
		fmt.Printf("%sBlock (%s)\n", pad, e.Type)
		for _, s := range e.Stmts {
			dumpExpr(s, indent+1)
		}
	case ast.KindAssign:
		fmt.Printf("%sAssign %s (%s)\n", pad, e.Name, e.Type)
		dumpExpr(e.RHS, indent+1)
	}
}
