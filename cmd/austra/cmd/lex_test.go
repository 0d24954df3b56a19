package cmd

import (
	"testing"

	"github.com/austra-lang/austra/internal/lexer"
	"github.com/austra-lang/austra/pkg/token"
)

func TestLexTokenizesArithmetic(t *testing.T) {
	l := lexer.New("1 + 2")
	var kinds []token.Type
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	if len(kinds) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(kinds), kinds)
	}
	if len(l.Errors()) != 0 {
		t.Errorf("unexpected lexer errors: %v", l.Errors())
	}
}

func TestPrintTokenIncludesPositionWhenRequested(t *testing.T) {
	old := lexShowPos
	lexShowPos = true
	defer func() { lexShowPos = old }()

	tok := token.New(token.Int, "42", token.Position{Line: 1, Column: 1})
	// printToken writes to stdout; this only checks it doesn't panic
	// with show-pos enabled.
	printToken(tok)
}
