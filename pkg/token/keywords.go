package token

import (
	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Normalize case-folds an identifier the way every AUSTRA symbol table
// key is folded, using Unicode case folding rather than byte-wise
// strings.ToLower so non-ASCII identifiers compare correctly.
func Normalize(ident string) string {
	return foldCaser.String(ident)
}

var keywords = map[string]Type{
	"let":   Let,
	"in":    In,
	"set":   Set,
	"def":   Def,
	"if":    If,
	"then":  Then,
	"else":  Else,
	"elif":  Elif,
	"and":   And,
	"or":    Or,
	"not":   Not,
	"undef": Undef,
	"true":  TrueTok,
	"false": FalseTok,
}

// LookupKeyword reports the token kind for a case-insensitive keyword,
// or (ILLEGAL, false) if ident is not reserved.
func LookupKeyword(ident string) (Type, bool) {
	kind, ok := keywords[Normalize(ident)]
	return kind, ok
}
