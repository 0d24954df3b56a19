package datasource

import (
	"fmt"
	"sync"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/runtime"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// InMemory is the reference DataSource: plain maps guarded by a mutex,
// sufficient for the end-to-end tests and for a host that doesn't need
// durable session storage.
type InMemory struct {
	*Pool

	mu          sync.RWMutex
	vars        map[string]value.Value
	varTypes    map[string]types.Type
	definitions map[string]*Definition
}

var _ DataSource = (*InMemory)(nil)

// NewInMemory returns an empty reference DataSource.
func NewInMemory() *InMemory {
	return &InMemory{
		Pool:        NewPool(),
		vars:        make(map[string]value.Value),
		varTypes:    make(map[string]types.Type),
		definitions: make(map[string]*Definition),
	}
}

func (d *InMemory) Get(name string) (value.Value, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.vars[token.Normalize(name)]
	return v, ok
}

func (d *InMemory) Set(name string, v value.Value) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := token.Normalize(name)
	d.vars[key] = v
	d.varTypes[key] = valueType(v)
}

// SetScalar stores a raw Go scalar under name, the entry point for a
// host whose underlying storage (a DB row, a JSON field) hands back
// an untyped numeric value rather than an already-built value.Value.
func (d *InMemory) SetScalar(name string, raw any) error {
	f, err := runtime.ScalarArg(raw)
	if err != nil {
		return fmt.Errorf("datasource: %s: %w", name, err)
	}
	d.Set(name, value.Real(f))
	return nil
}

func (d *InMemory) Delete(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := token.Normalize(name)
	delete(d.vars, key)
	delete(d.varTypes, key)
}

func (d *InMemory) GetDefinition(name string) (*Definition, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	def, ok := d.definitions[token.Normalize(name)]
	return def, ok
}

func (d *InMemory) SetDefinition(def *Definition) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.definitions[token.Normalize(def.Name)] = def
}

// GetExpression builds the same "$datasource"/"get" call node shape
// internal/parser's resolveIdent already emits directly for `set`
// variables of the same input, so a host that does supply one sees
// identical tree shapes whether the parser resolved the session
// variable itself or deferred to this collaborator.
func (d *InMemory) GetExpression(name string, isDef bool) (*ast.Expr, bool) {
	pos := token.Position{}
	if isDef {
		def, ok := d.GetDefinition(name)
		if !ok {
			return nil, false
		}
		return def.Expression, true
	}
	d.mu.RLock()
	t, ok := d.varTypes[token.Normalize(name)]
	d.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return ast.Call(pos, t, nil, "$datasource", "get",
		[]*ast.Expr{ast.Constant(pos, types.String, value.Str(name))}), true
}

func (d *InMemory) SetExpression(name string, expr *ast.Expr) *ast.Expr {
	return ast.Assign(expr.Pos, expr.Type, name, expr)
}

func valueType(v value.Value) types.Type {
	switch v.Kind {
	case value.IntKind:
		return types.Int
	case value.RealKind:
		return types.Double
	case value.ComplexKind:
		return types.Complex
	case value.BoolKind:
		return types.Bool
	case value.StringKind:
		return types.String
	case value.DateKind:
		return types.DateT
	default:
		return types.Void
	}
}
