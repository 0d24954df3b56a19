// Package ast defines AUSTRA's emitted expression tree: a single tagged
// Expr struct whose Kind selects the populated fields, immutable
// once built. Parameter references are indices into a per-parse Arena
// rather than pointers, so the tree has no cyclic ownership and can be
// handed to the host without the parser remaining alive.
package ast

import (
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// Kind tags which Expr variant a node is.
type Kind int

const (
	KindConstant Kind = iota
	KindParameter
	KindArithmetic
	KindCall
	KindNew
	KindMember
	KindCondition
	KindLambda
	KindConvert
	KindBlock
	KindAssign
)

// Expr is the single node type for the expression tree. Exactly the
// fields relevant to Kind are populated: one tagged struct instead of
// one struct type per node kind, since AUSTRA's node set is small and
// fixed.
type Expr struct {
	Kind Kind
	Type types.Type
	Pos  token.Position

	// KindConstant
	Const value.Value

	// KindParameter: index into the owning Arena.
	ParamIndex int

	// KindArithmetic
	Op    string // "+", "-", "*", "/", "%", ".*", "./", "\\", "^", comparisons, "and", "or", "not"
	Left  *Expr
	Right *Expr // nil for unary operators

	// KindCall / KindNew
	Target    *Expr  // receiver for a method call; nil for a free/class-static call
	ClassName string // set when the call is "Class::method(...)" or a constructor
	Method    string
	Args      []*Expr

	// KindMember
	Member string

	// KindCondition: parallel Conds/Thens for if/elif chains, Else always set.
	Conds []*Expr
	Thens []*Expr
	Else  *Expr

	// KindLambda
	Params   []int // arena indices of the lambda's own parameters
	Body     *Expr
	Upgraded bool // true if an allowUpgrade conversion widened the body's type

	// KindConvert
	Operand *Expr

	// KindBlock
	Stmts []*Expr

	// KindAssign
	Name string
	RHS  *Expr
}

// Arena owns the parameter bindings created during one parse: lambda
// parameters and `let` locals. Expr nodes reference
// parameters by index rather than pointer.
type Arena struct {
	params []Parameter
}

// Parameter is one arena-owned binding: a name and its resolved type.
type Parameter struct {
	Name string
	Type types.Type
}

// NewArena returns an empty parameter arena for one parse.
func NewArena() *Arena { return &Arena{} }

// Bind allocates a new parameter binding and returns its arena index.
func (a *Arena) Bind(name string, t types.Type) int {
	a.params = append(a.params, Parameter{Name: name, Type: t})
	return len(a.params) - 1
}

// At returns the parameter bound at index i.
func (a *Arena) At(i int) Parameter { return a.params[i] }

// Len reports how many parameters have been bound so far.
func (a *Arena) Len() int { return len(a.params) }

// Constant builds a KindConstant leaf.
func Constant(pos token.Position, t types.Type, v value.Value) *Expr {
	return &Expr{Kind: KindConstant, Type: t, Pos: pos, Const: v}
}

// ParamRef builds a KindParameter leaf referencing an Arena slot.
func ParamRef(pos token.Position, t types.Type, index int) *Expr {
	return &Expr{Kind: KindParameter, Type: t, Pos: pos, ParamIndex: index}
}

// Arithmetic builds a binary or unary (Right == nil) arithmetic node.
func Arithmetic(pos token.Position, t types.Type, op string, left, right *Expr) *Expr {
	return &Expr{Kind: KindArithmetic, Type: t, Pos: pos, Op: op, Left: left, Right: right}
}

// Call builds a method/function call node. target is nil for a bare or
// class-static call.
func Call(pos token.Position, t types.Type, target *Expr, className, method string, args []*Expr) *Expr {
	return &Expr{Kind: KindCall, Type: t, Pos: pos, Target: target, ClassName: className, Method: method, Args: args}
}

// New builds a constructor-call node.
func New(pos token.Position, t types.Type, className string, args []*Expr) *Expr {
	return &Expr{Kind: KindNew, Type: t, Pos: pos, ClassName: className, Args: args}
}

// Member builds a property-access node.
func Member(pos token.Position, t types.Type, target *Expr, name string) *Expr {
	return &Expr{Kind: KindMember, Type: t, Pos: pos, Target: target, Member: name}
}

// Condition builds an if/elif/else chain; conds[i]/thens[i] pair up,
// else is mandatory per the grammar.
func Condition(pos token.Position, t types.Type, conds, thens []*Expr, els *Expr) *Expr {
	return &Expr{Kind: KindCondition, Type: t, Pos: pos, Conds: conds, Thens: thens, Else: els}
}

// Lambda builds a lambda node over arena parameter indices.
func Lambda(pos token.Position, t types.Type, params []int, body *Expr, upgraded bool) *Expr {
	return &Expr{Kind: KindLambda, Type: t, Pos: pos, Params: params, Body: body, Upgraded: upgraded}
}

// Convert builds an implicit-widening conversion node.
func Convert(pos token.Position, t types.Type, operand *Expr) *Expr {
	return &Expr{Kind: KindConvert, Type: t, Pos: pos, Operand: operand}
}

// Block builds a sequence of statement expressions.
func Block(pos token.Position, t types.Type, stmts []*Expr) *Expr {
	return &Expr{Kind: KindBlock, Type: t, Pos: pos, Stmts: stmts}
}

// Assign builds a `set`/`let` binding node.
func Assign(pos token.Position, t types.Type, name string, rhs *Expr) *Expr {
	return &Expr{Kind: KindAssign, Type: t, Pos: pos, Name: name, RHS: rhs}
}

// Bind builds an assign node tied to an arena parameter slot, so the
// host can connect the binding to later KindParameter references by
// index instead of by name. Used for `let` locals and for the fresh
// parameters the emitter introduces in power/comparison rewrites.
func Bind(pos token.Position, t types.Type, name string, index int, rhs *Expr) *Expr {
	return &Expr{Kind: KindAssign, Type: t, Pos: pos, Name: name, ParamIndex: index, RHS: rhs}
}

// Equal reports deep structural equality of two trees: same node kinds,
// operators, member/method names, constants, and parameter slots. Used
// by the emitter to recognize "v*v"/"M*M'" shapes without relying on
// source positions.
func Equal(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Type != b.Type || a.Op != b.Op ||
		a.ClassName != b.ClassName || a.Method != b.Method ||
		a.Member != b.Member || a.Name != b.Name ||
		a.ParamIndex != b.ParamIndex || a.Const != b.Const {
		return false
	}
	if len(a.Args) != len(b.Args) || len(a.Conds) != len(b.Conds) ||
		len(a.Thens) != len(b.Thens) || len(a.Stmts) != len(b.Stmts) {
		return false
	}
	for i := range a.Args {
		if !Equal(a.Args[i], b.Args[i]) {
			return false
		}
	}
	for i := range a.Conds {
		if !Equal(a.Conds[i], b.Conds[i]) || !Equal(a.Thens[i], b.Thens[i]) {
			return false
		}
	}
	for i := range a.Stmts {
		if !Equal(a.Stmts[i], b.Stmts[i]) {
			return false
		}
	}
	return Equal(a.Left, b.Left) && Equal(a.Right, b.Right) &&
		Equal(a.Target, b.Target) && Equal(a.Operand, b.Operand) &&
		Equal(a.Else, b.Else) && Equal(a.Body, b.Body) && Equal(a.RHS, b.RHS)
}
