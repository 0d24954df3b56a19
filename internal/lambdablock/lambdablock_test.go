package lambdablock

import (
	"testing"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

func TestLookupInnermostShadowWins(t *testing.T) {
	s := New()
	s.Push(Binding{Name: "x", Type: types.Int, Index: 0})
	s.Push(Binding{Name: "x", Type: types.Double, Index: 1})

	got, ok := s.Lookup("x")
	if !ok {
		t.Fatalf("Lookup(x) not found")
	}
	if got.Type != types.Double {
		t.Errorf("Lookup(x) = %+v, want the inner Double binding", got)
	}
}

func TestLookupMissing(t *testing.T) {
	s := New()
	s.Push(Binding{Name: "x", Type: types.Int, Index: 0})
	if _, ok := s.Lookup("y"); ok {
		t.Errorf("Lookup(y) should fail")
	}
}

func TestCloseExactTypeMatch(t *testing.T) {
	s := New()
	s.Push(Binding{Name: "x", Type: types.Int, Index: 0})
	body := ast.ParamRef(token0(), types.Int, 0)
	lam, err := s.Close(body, types.Int, false)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if lam.Kind != ast.KindLambda || lam.Body != body {
		t.Errorf("Close produced %+v", lam)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0 after Close", s.Depth())
	}
}

func TestCloseImplicitIntToDouble(t *testing.T) {
	s := New()
	s.Push(Binding{Name: "x", Type: types.Int, Index: 0})
	body := ast.Constant(token0(), types.Int, value.Int(1))
	lam, err := s.Close(body, types.Double, false)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if lam.Body.Kind != ast.KindConvert || lam.Body.Type != types.Double {
		t.Errorf("Close did not insert an int->double conversion: %+v", lam.Body)
	}
}

func TestCloseUpgradeRequiresFlag(t *testing.T) {
	// A double body against a narrower "int" formal return type is not
	// one of the two standard widening conversions, so it fails unless
	// allowUpgrade is set.
	s := New()
	s.Push(Binding{Name: "x", Type: types.Int, Index: 0})
	body := ast.Constant(token0(), types.Double, value.Real(1.5))
	if _, err := s.Close(body, types.Int, false); err == nil {
		t.Errorf("Close without allowUpgrade should fail a double body against an int formal return type")
	}

	s.Push(Binding{Name: "x", Type: types.Int, Index: 1})
	lam, err := s.Close(body, types.Int, true)
	if err != nil {
		t.Fatalf("Close with allowUpgrade: %v", err)
	}
	if !lam.Upgraded || lam.Type != types.Double {
		t.Errorf("Close should report an upgraded double-typed lambda, got %+v", lam)
	}
}

func token0() token.Position { return token.Position{} }

func TestLookupFoldsCase(t *testing.T) {
	s := New()
	s.Push(Binding{Name: "Alpha", Type: types.Double, Index: 0})
	if _, ok := s.Lookup("alpha"); !ok {
		t.Errorf("Lookup should fold identifier case")
	}
}
