// Package austra is the host-facing API surface spec.md §6.2 describes:
// parse_statement, parse_type, parse_definition, members, class_members,
// param_info. It is a thin wrapper over internal/parser, internal/
// bindings, internal/completion, and internal/datasource — the packages
// underneath carry all the actual compiler logic; this package exists
// so a host embeds one stable import instead of reaching into internal/.
package austra

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/completion"
	"github.com/austra-lang/austra/internal/parser"
	"github.com/austra-lang/austra/internal/types"
)

// Definition is the persisted macro record (spec §6.3), with a stable
// identity a host can use as a map/database key across reloads.
type Definition struct {
	ID          string
	Name        string
	SourceText  string
	Description string
	Expression  *ast.Expr
	Children    []string
}

// Error wraps a single *parser.ParseError with a stack trace attached
// at this API boundary, preserving an underlying cause while adding
// call-site context.
type Error struct {
	cause *parser.ParseError
}

func (e *Error) Error() string          { return e.cause.Error() }
func (e *Error) Kind() parser.ErrorKind { return e.cause.Kind }
func (e *Error) Unwrap() error          { return e.cause }

func wrapErrors(errs []*parser.ParseError) error {
	if len(errs) == 0 {
		return nil
	}
	wrapped := make([]error, len(errs))
	for i, e := range errs {
		wrapped[i] = errors.WithStack(&Error{cause: e})
	}
	return errors.Wrap(joinErrors(wrapped), "austra: parse failed")
}

func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return errors.New(joinStrings(msgs, "; "))
}

func joinStrings(parts []string, sep string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += sep + p
	}
	return out
}

// ParseStatement implements parse_statement(source, text) -> expression
// (spec §6.2): it parses the full `;`-separated program and returns a
// single executable expression: the statement itself when there is
// one, otherwise a block of all statements typed by the last (a void
// block for an empty program).
func ParseStatement(source string, b *bindings.Bindings) (*ast.Expr, error) {
	p := parser.New(source, b)
	stmts := p.ParseProgram()
	if err := wrapErrors(p.Errors()); err != nil {
		return nil, err
	}
	return blockOf(stmts), nil
}

// ParseType implements parse_type(source, text) -> type[] (spec §6.2):
// a dry run that type-checks every top-level statement and returns just
// their result types, with no code retained.
func ParseType(source string, b *bindings.Bindings) ([]types.Type, error) {
	p := parser.New(source, b)
	stmts := p.ParseProgram()
	if err := wrapErrors(p.Errors()); err != nil {
		return nil, err
	}
	result := make([]types.Type, len(stmts))
	for i, s := range stmts {
		result[i] = s.Type
	}
	return result, nil
}

// ParseDefinition implements parse_definition(source, text) ->
// definition (spec §6.2): source must be one `def name = expr` (or
// `def name: "description" = expr`) statement; the registered
// Definition is returned with a fresh stable ID.
func ParseDefinition(source string, b *bindings.Bindings) (*Definition, error) {
	p := parser.New(source, b)
	p.ParseStatement()
	if err := wrapErrors(p.Errors()); err != nil {
		return nil, err
	}
	for _, def := range p.Definitions() {
		return &Definition{
			ID:          uuid.New().String(),
			Name:        def.Name,
			SourceText:  source,
			Description: def.Description,
			Expression:  def.Expression,
			Children:    def.Children,
		}, nil
	}
	return nil, errors.New("austra: source did not register a definition")
}

// Members implements members(source, text) -> (member[], type?).
func Members(source, text string, b *bindings.Bindings) ([]completion.Member, types.Type, bool) {
	return completion.Members(source, text, b)
}

// ClassMembers implements class_members(text) -> member[].
func ClassMembers(text string, b *bindings.Bindings) []completion.Member {
	return completion.ClassMembers(text, b)
}

// ParamInfo implements param_info(text) -> string[].
func ParamInfo(text string, b *bindings.Bindings) []string {
	return completion.ParamInfo(text, b)
}
