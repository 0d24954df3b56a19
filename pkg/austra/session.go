package austra

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/datasource"
	"github.com/austra-lang/austra/internal/parser"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/pkg/token"
)

// Session pairs a shared Bindings with a host DataSource, so parses
// resolve previously persisted session variables and definitions
// through the data source's get_expression/set_expression hooks
// (spec §6.2). A Session is safe for concurrent use as long as its
// DataSource is; each call builds its own Parser.
type Session struct {
	ds datasource.DataSource
	b  *bindings.Bindings
}

// NewSession wires a data source and a bindings registry together.
func NewSession(ds datasource.DataSource, b *bindings.Bindings) *Session {
	return &Session{ds: ds, b: b}
}

// DataSource returns the wired host collaborator.
func (s *Session) DataSource() datasource.DataSource { return s.ds }

func (s *Session) newParser(text string) *parser.Parser {
	return parser.New(text, s.b, parser.WithSessionSource(s.ds))
}

// ParseStatement parses text against the session's state and returns
// an executable block expression (may be void).
func (s *Session) ParseStatement(text string) (*ast.Expr, error) {
	p := s.newParser(text)
	stmts := p.ParseProgram()
	if err := wrapErrors(p.Errors()); err != nil {
		return nil, err
	}
	return blockOf(stmts), nil
}

// ParseType is the dry-run variant: statement result types only.
func (s *Session) ParseType(text string) ([]types.Type, error) {
	p := s.newParser(text)
	stmts := p.ParseProgram()
	if err := wrapErrors(p.Errors()); err != nil {
		return nil, err
	}
	result := make([]types.Type, len(stmts))
	for i, st := range stmts {
		result[i] = st.Type
	}
	return result, nil
}

// ParseDefinition parses one `def` statement and persists the
// resulting macro into the session's data source.
func (s *Session) ParseDefinition(text string) (*Definition, error) {
	p := s.newParser(text)
	p.ParseStatement()
	if err := wrapErrors(p.Errors()); err != nil {
		return nil, err
	}
	for _, def := range p.Definitions() {
		out := &Definition{
			ID:          uuid.New().String(),
			Name:        def.Name,
			SourceText:  text,
			Description: def.Description,
			Expression:  def.Expression,
			Children:    def.Children,
		}
		s.ds.SetDefinition(&datasource.Definition{
			Name:        def.Name,
			SourceText:  text,
			Description: def.Description,
			Expression:  def.Expression,
			Children:    def.Children,
		})
		return out, nil
	}
	return nil, errors.New("austra: source did not register a definition")
}

// blockOf collapses a statement list into the single expression
// ParseStatement returns: the statement itself when there is one, a
// block typed by the last statement otherwise.
func blockOf(stmts []*ast.Expr) *ast.Expr {
	switch len(stmts) {
	case 0:
		return ast.Block(token.Position{}, types.Void, nil)
	case 1:
		return stmts[0]
	default:
		return ast.Block(stmts[0].Pos, stmts[len(stmts)-1].Type, stmts)
	}
}
