package cmd

import (
	"testing"

	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/parser"
	"github.com/austra-lang/austra/internal/types"
)

func TestRunParseTypesEachStatement(t *testing.T) {
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  types.Type
	}{
		{name: "int arithmetic", input: "1 + 2", want: types.Int},
		{name: "double literal", input: "1.5 * 2.0", want: types.Double},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parser.New(tt.input, b)
			stmts := p.ParseProgram()
			if len(p.Errors()) > 0 {
				t.Fatalf("unexpected parse errors: %v", p.Errors())
			}
			if len(stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(stmts))
			}
			if stmts[0].Type != tt.want {
				t.Errorf("type = %s, want %s", stmts[0].Type, tt.want)
			}
		})
	}
}

func TestRunParseReportsErrors(t *testing.T) {
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}

	p := parser.New("bogus(1)", b)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Error("expected parse errors for an unknown function call")
	}
}

func TestDumpExprDoesNotPanicOnEachKind(t *testing.T) {
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}

	sources := []string{
		"1 + 2",
		"if true then 1 else 2",
		"let x = 1 in x + 1",
	}
	for _, src := range sources {
		p := parser.New(src, b)
		stmts := p.ParseProgram()
		if len(p.Errors()) > 0 {
			t.Fatalf("%q: unexpected errors: %v", src, p.Errors())
		}
		for _, s := range stmts {
			dumpExpr(s, 0)
		}
	}
}
