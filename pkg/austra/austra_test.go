package austra

import (
	"context"
	"testing"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/datasource"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
)

func mustBindings(t *testing.T) *bindings.Bindings {
	t.Helper()
	b, err := bindings.New()
	if err != nil {
		t.Fatalf("bindings.New: %v", err)
	}
	return b
}

func TestParseStatementReturnsLastStatement(t *testing.T) {
	b := mustBindings(t)
	e, err := ParseStatement("set x = 1; x + 1", b)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if e.Type != types.Int {
		t.Errorf("result type = %s, want int", e.Type)
	}
}

func TestParseStatementSurfacesErrors(t *testing.T) {
	b := mustBindings(t)
	_, err := ParseStatement("bogus(1)", b)
	if err == nil {
		t.Fatalf("expected an error for an unknown function")
	}
}

func TestParseTypeDryRunMatchesParseStatement(t *testing.T) {
	b := mustBindings(t)
	types_, err := ParseType("1 + 2; 1.5 * 2.0", b)
	if err != nil {
		t.Fatalf("ParseType: %v", err)
	}
	if len(types_) != 2 {
		t.Fatalf("expected 2 result types, got %d", len(types_))
	}
	if types_[0] != types.Int || types_[1] != types.Double {
		t.Errorf("result types = %v, want [int double]", types_)
	}
}

func TestParseDefinitionRegistersMacro(t *testing.T) {
	b := mustBindings(t)
	def, err := ParseDefinition("def sq = 5*5", b)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if def.Name != "sq" || def.ID == "" {
		t.Errorf("definition = %+v, want name sq and a non-empty ID", def)
	}
}

func TestParseAllRunsConcurrently(t *testing.T) {
	b := mustBindings(t)
	results, err := ParseAll(context.Background(), []string{"1 + 1", "2.0 * 3.0", "sqrt(4.0)"}, b)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Type != types.Int || results[1].Type != types.Double || results[2].Type != types.Double {
		t.Errorf("unexpected result types: %v, %v, %v", results[0].Type, results[1].Type, results[2].Type)
	}
}

func TestSessionResolvesPersistedVariables(t *testing.T) {
	b := mustBindings(t)
	ds := datasource.NewInMemory()
	ds.Set("rate", value.Real(1.5))
	s := NewSession(ds, b)

	types_, err := s.ParseType("rate * 2.0")
	if err != nil {
		t.Fatalf("ParseType: %v", err)
	}
	if len(types_) != 1 || types_[0] != types.Double {
		t.Errorf("result types = %v, want [double]", types_)
	}
}

func TestSessionParseDefinitionPersists(t *testing.T) {
	b := mustBindings(t)
	ds := datasource.NewInMemory()
	s := NewSession(ds, b)

	def, err := s.ParseDefinition("def sq = 5*5")
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if def.Name != "sq" || def.ID == "" {
		t.Errorf("definition = %+v, want name sq and a non-empty ID", def)
	}
	if _, ok := ds.GetDefinition("sq"); !ok {
		t.Errorf("definition was not persisted into the data source")
	}
}

func TestSessionRejectsDuplicatePersistedDef(t *testing.T) {
	b := mustBindings(t)
	ds := datasource.NewInMemory()
	s := NewSession(ds, b)

	if _, err := s.ParseDefinition("def sq = 5"); err != nil {
		t.Fatalf("first ParseDefinition: %v", err)
	}
	if _, err := s.ParseDefinition("def sq = 6"); err == nil {
		t.Errorf("re-registering a persisted def should fail")
	}
}

func TestSessionResolvesPersistedDefs(t *testing.T) {
	b := mustBindings(t)
	ds := datasource.NewInMemory()
	s := NewSession(ds, b)

	if _, err := s.ParseDefinition("def sq = 5*5"); err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	e, err := s.ParseStatement("sq! + 1")
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if e.Type != types.Int {
		t.Errorf("sq! + 1 type = %s, want int", e.Type)
	}
}

func TestParseStatementWrapsMultipleStatements(t *testing.T) {
	b := mustBindings(t)
	e, err := ParseStatement("1 + 1; 2.5 * 2.0", b)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if e.Kind != ast.KindBlock {
		t.Fatalf("multiple statements should come back as one block, got %v", e.Kind)
	}
	if e.Type != types.Double {
		t.Errorf("block type = %s, want the last statement's double", e.Type)
	}
}
