package datasource

import (
	"testing"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/value"
)

func TestSetGetIsCaseInsensitive(t *testing.T) {
	d := NewInMemory()
	d.Set("Rate", value.Real(1.5))

	got, ok := d.Get("rATE")
	if !ok || got.Real != 1.5 {
		t.Fatalf("Get(%q) = %v, %v; want 1.5, true", "rATE", got, ok)
	}
}

func TestDeleteRemovesVariable(t *testing.T) {
	d := NewInMemory()
	d.Set("x", value.Int(1))
	d.Delete("x")
	if _, ok := d.Get("x"); ok {
		t.Errorf("Get after Delete should miss")
	}
}

func TestGetExpressionUnknownNameMisses(t *testing.T) {
	d := NewInMemory()
	if _, ok := d.GetExpression("nope", false); ok {
		t.Errorf("GetExpression on unset variable should miss")
	}
}

func TestGetExpressionReflectsSetType(t *testing.T) {
	d := NewInMemory()
	d.Set("x", value.Real(2))
	e, ok := d.GetExpression("x", false)
	if !ok {
		t.Fatalf("GetExpression missed a set variable")
	}
	if e.Kind != ast.KindCall || e.ClassName != "$datasource" || e.Method != "get" {
		t.Errorf("GetExpression shape = %+v, want a $datasource.get call", e)
	}
}

func TestSetScalarAcceptsIntAndFloat(t *testing.T) {
	d := NewInMemory()
	if err := d.SetScalar("n", 3); err != nil {
		t.Fatalf("SetScalar(int): %v", err)
	}
	got, ok := d.Get("n")
	if !ok || got.Real != 3 {
		t.Errorf("Get(%q) = %v, %v; want 3, true", "n", got, ok)
	}

	if err := d.SetScalar("x", "2.5"); err != nil {
		t.Fatalf("SetScalar(numeric string): %v", err)
	}
	got, ok = d.Get("x")
	if !ok || got.Real != 2.5 {
		t.Errorf("Get(%q) = %v, %v; want 2.5, true", "x", got, ok)
	}
}

func TestSetScalarRejectsNonNumeric(t *testing.T) {
	d := NewInMemory()
	if err := d.SetScalar("bad", "not-a-number"); err == nil {
		t.Error("expected an error for a non-numeric scalar")
	}
}

func TestDefinitionRoundTrips(t *testing.T) {
	d := NewInMemory()
	def := &Definition{Name: "sq", SourceText: "5*5"}
	d.SetDefinition(def)

	got, ok := d.GetDefinition("SQ")
	if !ok || got != def {
		t.Fatalf("GetDefinition = %v, %v; want the registered def", got, ok)
	}
}

func TestPoolRentReturnReusesSlices(t *testing.T) {
	p := NewPool()
	list := p.Rent(4)
	if cap(list) < 4 {
		t.Fatalf("Rent(4) returned cap %d", cap(list))
	}
	if p.ActiveRentals() != 1 {
		t.Errorf("ActiveRentals = %d, want 1", p.ActiveRentals())
	}
	p.Return(list)
	if p.ActiveRentals() != 0 {
		t.Errorf("ActiveRentals after Return = %d, want 0", p.ActiveRentals())
	}

	reused := p.Rent(2)
	if cap(reused) < 4 {
		t.Errorf("expected Rent to reuse the freed slice, got cap %d", cap(reused))
	}
}
