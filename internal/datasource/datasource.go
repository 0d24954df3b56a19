// Package datasource defines the host collaborator boundary (spec
// §6.2's IDataSource) and ships a minimal in-memory reference
// implementation so pkg/austra and the end-to-end tests have a real
// collaborator to parse and execute against. Bindings/parser never
// import this package directly — the parser consults a data source
// only through its narrow SessionSource interface (wired in by
// pkg/austra.Session), and otherwise emits "$datasource" call nodes
// (internal/parser's parseSetStmt/resolveIdent) naming the operation
// for the host to carry out at execution time.
package datasource

import (
	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/value"
)

// Definition is the only state the host persists (spec §6.3):
// "Definition{ name, sourceText, description, expression, children }".
// The compiler never writes files.
type Definition struct {
	Name        string
	SourceText  string
	Description string
	Expression  *ast.Expr
	Children    []string
}

// DataSource is the host-provided collaborator spec §6.2 names:
// session variable storage, macro definitions, typed expression
// accessors for session variables, and the argument-list pool.
type DataSource interface {
	// Get returns the current value of a session variable, if set.
	Get(name string) (value.Value, bool)
	// Set assigns a session variable.
	Set(name string, v value.Value)
	// Delete removes a session variable (the `set x` no-rhs form).
	Delete(name string)

	// GetDefinition returns a previously registered macro.
	GetDefinition(name string) (*Definition, bool)
	// SetDefinition registers or replaces a macro.
	SetDefinition(def *Definition)

	// GetExpression returns a host expression node that retrieves the
	// named session variable at execution time, typed by its current
	// value (or by its registered Definition, when isDef is true).
	GetExpression(name string, isDef bool) (*ast.Expr, bool)
	// SetExpression wraps an assignment to name into an expression node.
	SetExpression(name string, expr *ast.Expr) *ast.Expr

	// Rent returns a reusable argument-expression slice of capacity
	// size; the parser must clear it before Return (spec §5 "Shared
	// resources").
	Rent(size int) []*ast.Expr
	// Return releases a slice obtained from Rent back to the pool.
	Return(list []*ast.Expr)
}
