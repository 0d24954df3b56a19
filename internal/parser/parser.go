// Package parser implements C5: the cursor-based recursive-descent
// parser that walks the statement and expression grammars, resolves
// overloads against a Bindings registry, folds constants, and emits
// the algebraic rewrites of §4.4, directly to a typed ast.Expr tree —
// there is no separate untyped parse tree or later type-check pass.
package parser

import (
	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/lambdablock"
	lexpkg "github.com/austra-lang/austra/internal/lexer"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/pkg/token"
)

// Precedence levels, lowest to highest (§4.2 expression grammar).
const (
	_ int = iota
	lowest
	orPrec
	andPrec
	equalityPrec
	relationalPrec
	additivePrec
	multiplicativePrec
	unaryPrec
	powerPrec
	postfixPrec
)

var binaryPrecedence = map[token.Type]int{
	token.Or:        orPrec,
	token.And:       andPrec,
	token.Eq:        equalityPrec,
	token.NotEq:     equalityPrec,
	token.ExclEq:    equalityPrec,
	token.Lt:        relationalPrec,
	token.LtEq:      relationalPrec,
	token.Gt:        relationalPrec,
	token.GtEq:      relationalPrec,
	token.Plus:      additivePrec,
	token.Minus:     additivePrec,
	token.Star:      multiplicativePrec,
	token.Slash:     multiplicativePrec,
	token.Percent:   multiplicativePrec,
	token.DotStar:   multiplicativePrec,
	token.DotSlash:  multiplicativePrec,
	token.Backslash: multiplicativePrec,
	token.Caret:     powerPrec,
}

// comparisonOps are the Relop tokens that may chain (§4.2, §4.4).
var comparisonOps = map[token.Type]bool{
	token.Eq: true, token.NotEq: true, token.ExclEq: true,
	token.Lt: true, token.LtEq: true, token.Gt: true, token.GtEq: true,
}

// Parser is a single-use, mutable cursor over one source string
// (§5: "not thread-safe"). Bindings is the only component shared
// across concurrently running Parser instances.
type Parser struct {
	lex      *lexpkg.Lexer
	bindings *bindings.Bindings
	types    *types.Names
	arena    *ast.Arena
	lambdas  *lambdablock.Stack

	locals     map[string]int // let-bound names -> arena index, keyed case-folded
	setVars    map[string]types.Type
	transient  map[string]bool
	defs       map[string]*Definition
	defStack   []string        // folded names of defs currently being parsed, for child-dependency recording
	references map[string]bool // folded names of every def referenced via "name!"

	session SessionSource

	abortPos int

	cur, peek token.Token
	errors    []*ParseError
}

// SessionSource is the slice of the host data source the parser
// consults while resolving names (§6.2's get_expression/set_expression);
// internal/datasource's DataSource satisfies it. Nil means no host
// session storage is wired in and only same-input `set`/`def` names
// resolve.
type SessionSource interface {
	GetExpression(name string, isDef bool) (*ast.Expr, bool)
	SetExpression(name string, expr *ast.Expr) *ast.Expr
}

// Definition is the persisted `def` macro record (§6.3).
type Definition struct {
	Name        string
	SourceText  string
	Description string
	Expression  *ast.Expr
	Children    []string
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithAbortPosition forwards a completion-façade abort offset to the
// underlying lexer (§4.6, §5).
func WithAbortPosition(offset int) Option {
	return func(p *Parser) { p.abortPos = offset }
}

// WithSessionSource wires a host data source into name resolution, so
// previously persisted session variables and definitions are reachable
// from this parse.
func WithSessionSource(s SessionSource) Option {
	return func(p *Parser) { p.session = s }
}

// New builds a Parser over source, against the given frozen Bindings.
func New(source string, b *bindings.Bindings, opts ...Option) *Parser {
	p := &Parser{
		bindings:   b,
		types:      types.NewNames(),
		arena:      ast.NewArena(),
		lambdas:    lambdablock.New(),
		locals:     make(map[string]int),
		setVars:    make(map[string]types.Type),
		transient:  make(map[string]bool),
		defs:       make(map[string]*Definition),
		references: make(map[string]bool),
		abortPos:   -1,
	}
	for _, opt := range opts {
		opt(p)
	}

	var lexOpts []lexpkg.Option
	if p.abortPos >= 0 {
		lexOpts = append(lexOpts, lexpkg.WithAbortPosition(p.abortPos))
	}
	p.lex = lexpkg.New(source, lexOpts...)

	p.cur = p.lex.NextToken()
	p.peek = p.lex.NextToken()
	return p
}

// Arena exposes the parameter arena backing every ast.Expr this parser
// produced, so the host can resolve KindParameter nodes.
func (p *Parser) Arena() *ast.Arena { return p.arena }

// Errors returns every structured error raised during this parse: the
// scanner's errors first, as LexicalError, then the parser's own.
func (p *Parser) Errors() []*ParseError {
	var out []*ParseError
	for _, le := range p.lex.Errors() {
		out = append(out, &ParseError{Kind: LexicalError, Message: le.Message, Pos: le.Pos})
	}
	return append(out, p.errors...)
}

func (p *Parser) addError(kind ErrorKind, msg string, pos token.Position) {
	p.errors = append(p.errors, &ParseError{Kind: kind, Message: msg, Pos: pos})
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Kind == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Kind == t }

// expect consumes the current token if it matches t, else records a
// SyntaxError and leaves the cursor in place so callers can attempt
// recovery at the statement boundary.
func (p *Parser) expect(t token.Type, what string) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.addError(SyntaxError, "expected "+what+", found "+p.cur.Kind.String(), p.cur.Pos)
	return false
}

// aborted reports whether the lexer's abort position has silenced the
// rest of the token stream (completion mode, §4.6).
func (p *Parser) aborted() bool { return p.lex.Aborted() }

// Aborted is the exported form aborted, consulted by internal/completion
// after an abort-position parse to tell "ran out of lambda frame" apart
// from "genuinely failed".
func (p *Parser) Aborted() bool { return p.lex.Aborted() }

// OpenLambdaParams lists every lambda parameter currently in scope,
// innermost frame first, for completion inside an open lambda body
// (§4.6: "inspecting the lambda block").
func (p *Parser) OpenLambdaParams() []lambdablock.Binding {
	return p.lambdas.GatherForCompletion()
}

// Definitions exposes the def registry built up during this parse, so
// hosts (pkg/austra's ParseDefinition and Session) can read the
// registered macros and their child dependencies without re-parsing.
func (p *Parser) Definitions() map[string]*Definition { return p.defs }

// References lists the case-folded names of every def this parse
// referenced via "name!", for host-side dependency tracking.
func (p *Parser) References() []string {
	out := make([]string, 0, len(p.references))
	for name := range p.references {
		out = append(out, name)
	}
	return out
}
