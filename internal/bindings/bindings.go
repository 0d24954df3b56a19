// Package bindings implements C3: the frozen-at-construction symbol
// tables backing property/method/overload/class-method resolution and
// code completion. All lookups are case-insensitive on the identifier
// side. The tables themselves are populated once, from an embedded
// YAML DSL table (table.go), not by reflecting over a runtime library
// (design note §9).
package bindings

import (
	"sort"

	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/pkg/token"
)

// Sentinel marks a formal parameter the emitter auto-supplies at call
// emission rather than one the user provides an actual for (§4.2).
type Sentinel int

const (
	NoSentinel   Sentinel = iota
	Zero                  // auto-supplies the constant 0.0
	One                   // auto-supplies the constant 1.0
	Random                // auto-supplies a fresh uniform random source
	NormalRandom          // auto-supplies a fresh normal random source
)

// MethodKind distinguishes how a MethodData entry is invoked.
type MethodKind int

const (
	Instance MethodKind = iota
	Static              // "Class::method(...)" or bare for the math pseudo-class
	Ctor                // constructor: "Class(...)" at the root
)

// Param is one formal parameter: either a real type or a sentinel
// auto-supplied argument that does not count toward user-visible arity.
type Param struct {
	Type     types.Type
	Sentinel Sentinel
	IsLambda bool // true if this position accepts a 1- or 2-arg lambda
}

// MethodData describes a single overload (§3 "MethodData").
type MethodData struct {
	Implementor string // owning type name or pseudo-class ("math")
	Name        string
	Kind        MethodKind
	Params      []Param
	Variadic    bool // last formal is an array element type, arity is open
	ReturnType  types.Type
	Doc         string
}

// UserArity is the number of actual arguments a caller must supply:
// sentinel-typed formals are excluded from the count.
func (m MethodData) UserArity() int {
	n := 0
	for _, p := range m.Params {
		if p.Sentinel == NoSentinel {
			n++
		}
	}
	return n
}

// LambdaAt reports whether the formal parameter at a user-visible
// argument position (sentinels excluded) is a lambda slot.
func (m MethodData) LambdaAt(userPos int) bool {
	seen := 0
	for _, p := range m.Params {
		if p.Sentinel != NoSentinel {
			continue
		}
		if seen == userPos {
			return p.IsLambda
		}
		seen++
	}
	return false
}

// FormalAt resolves the user-visible formal parameter at userPos
// (sentinels excluded), reporting whether it exists and whether it is
// the trailing variadic element type.
func (m MethodData) FormalAt(userPos int) (param Param, isVariadicTail bool, ok bool) {
	seen := 0
	lastUserIdx := -1
	for i, p := range m.Params {
		if p.Sentinel != NoSentinel {
			continue
		}
		if seen == userPos {
			return p, m.Variadic && i == len(m.Params)-1, true
		}
		lastUserIdx = i
		seen++
	}
	if m.Variadic && lastUserIdx == len(m.Params)-1 && userPos >= seen && seen > 0 {
		return m.Params[lastUserIdx], true, true
	}
	return Param{}, false, false
}

// MethodList is an ordered set of overloads plus a derived per-position
// "any overload expects a lambda here" mask, consulted by the parser to
// decide whether to parse `=>` at a given argument position.
type MethodList struct {
	Overloads []MethodData
}

// LambdaMaskAt reports whether any surviving overload in the list
// expects a lambda at the given user-visible argument position.
func (l MethodList) LambdaMaskAt(userPos int) bool {
	for _, m := range l.Overloads {
		if m.LambdaAt(userPos) {
			return true
		}
	}
	return false
}

// Property is a type-scoped getter (§4.2 "property(T, id)").
type Property struct {
	Implementor string
	Name        string
	ReturnType  types.Type
	Doc         string
}

// Member is a completion-list entry: either a property or a method
// name, with enough information to render a signature or doc string.
type Member struct {
	Name       string
	Kind       string // "property", "method", or "class" (GlobalRoots namespace entries)
	ReturnType types.Type
	Doc        string
}

// key pairs a type with a case-folded identifier for map lookups.
type key struct {
	t    types.Type
	name string
}

// Bindings is the frozen, immutable-after-construction registry (§3).
// All fields are built once by New and never mutated afterward, so a
// *Bindings can be shared read-only across concurrently running
// parsers (§5).
type Bindings struct {
	properties      map[key]Property
	methods         map[key]MethodData
	methodOverloads map[key]MethodList
	classMethods    map[string]MethodList
	classMembers    map[string][]Member
	classNames      map[string]string // folded -> display spelling
	members         map[types.Type][]Member
	typeNames       *types.Names

	defAdornment bool
}

// Option configures Bindings at construction.
type Option func(*Bindings)

// WithDefAdornment toggles the optional `Series.SetName(defName)` side
// effect on `def` registration (design note §9's Open Question); the
// default (false) matches the "later versions" behavior where it is
// absent.
func WithDefAdornment(enabled bool) Option {
	return func(b *Bindings) { b.defAdornment = enabled }
}

// DefAdornment reports whether `def` registration should emit the
// optional Series.SetName side call.
func (b *Bindings) DefAdornment() bool { return b.defAdornment }

// New builds the Bindings registry from the embedded table, applying
// any options.
func New(opts ...Option) (*Bindings, error) {
	b := &Bindings{
		properties:      make(map[key]Property),
		methods:         make(map[key]MethodData),
		methodOverloads: make(map[key]MethodList),
		classMethods:    make(map[string]MethodList),
		classMembers:    make(map[string][]Member),
		classNames:      make(map[string]string),
		members:         make(map[types.Type][]Member),
		typeNames:       types.NewNames(),
	}
	for _, opt := range opts {
		opt(b)
	}

	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	if err := b.populate(table); err != nil {
		return nil, err
	}
	return b, nil
}

// Property resolves `x.id` for a value of type t.
func (b *Bindings) Property(t types.Type, id string) (Property, bool) {
	p, ok := b.properties[key{t, token.Normalize(id)}]
	return p, ok
}

// Method resolves the single-arity convenience lookup for `x.id(...)`;
// prefer Overloads when more than one overload may exist.
func (b *Bindings) Method(t types.Type, id string) (MethodData, bool) {
	m, ok := b.methods[key{t, token.Normalize(id)}]
	return m, ok
}

// Overloads resolves every overload of `x.id(...)` for type t.
func (b *Bindings) Overloads(t types.Type, id string) (MethodList, bool) {
	l, ok := b.methodOverloads[key{t, token.Normalize(id)}]
	return l, ok
}

// ClassMethod resolves `C::m(...)` or a root constructor/pseudo-class
// call `c(...)`, keyed as "class.method" (case-folded).
func (b *Bindings) ClassMethod(class, method string) (MethodList, bool) {
	l, ok := b.classMethods[token.Normalize(class)+"."+token.Normalize(method)]
	return l, ok
}

// Members lists completion members for a value's type.
func (b *Bindings) Members(t types.Type) []Member { return b.members[t] }

// ClassMembers lists completion members (static methods/constructors)
// for a pseudo-class or constructor namespace.
func (b *Bindings) ClassMembers(class string) []Member {
	return b.classMembers[token.Normalize(class)]
}

// TypeName resolves a user-visible type name to its internal Type.
func (b *Bindings) TypeName(name string) (types.Type, bool) {
	return b.typeNames.Lookup(name)
}

// GlobalRoots lists everything reachable with no receiver at all: the
// math pseudo-class's bare functions plus one entry per class
// namespace, for completion on an empty prefix.
func (b *Bindings) GlobalRoots() []Member {
	out := append([]Member(nil), b.classMembers["math"]...)
	for folded, display := range b.classNames {
		if folded == "math" {
			continue
		}
		out = append(out, Member{Name: display, Kind: "class"})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
