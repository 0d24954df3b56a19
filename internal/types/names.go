package types

import "github.com/austra-lang/austra/pkg/token"

// Names is the case-insensitive typeNames: string -> Type table from
// §3 ("typeNames: string → Type — for spec-style type references at
// user level"), a normalized-map lookup adapted from method names to
// plain type names.
type Names struct {
	byName map[string]Type
}

// NewNames builds the typeNames table from the closed universe's
// canonical spellings.
func NewNames() *Names {
	n := &Names{byName: make(map[string]Type, typeEnd)}
	for t := Void; t < typeEnd; t++ {
		if names[t] != "" {
			n.byName[token.Normalize(names[t])] = t
		}
	}
	return n
}

// Lookup resolves a user-visible type name case-insensitively.
func (n *Names) Lookup(name string) (Type, bool) {
	t, ok := n.byName[token.Normalize(name)]
	return t, ok
}
