package parser

import (
	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/lambdablock"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// ParseProgram parses a `;`-separated sequence of top-level statements
// (§4.2: "multiple independent top-level let bindings... persist
// across statements in the same input"). Locals bound by one statement
// stay visible to later ones because p.locals is never reset between
// calls to ParseStatement.
func (p *Parser) ParseProgram() []*ast.Expr {
	var stmts []*ast.Expr
	for {
		stmt := p.ParseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.curIs(token.Semicolon) {
			p.advance()
			if p.curIs(token.EOF) {
				break
			}
			continue
		}
		break
	}
	return stmts
}

// ParseStatement parses one Statement production.
func (p *Parser) ParseStatement() *ast.Expr {
	switch p.cur.Kind {
	case token.Set:
		return p.parseSetStmt()
	case token.Def:
		return p.parseDefStmt()
	case token.Undef:
		return p.parseUndefStmt()
	default:
		return p.ParseFormula()
	}
}

func (p *Parser) parseSetStmt() *ast.Expr {
	pos := p.cur.Pos
	p.advance() // 'set'

	var assigns []*ast.Expr
	for {
		name := p.cur.Text
		namePos := p.cur.Pos
		if !p.expect(token.Id, "a session variable name") {
			return nil
		}
		folded := token.Normalize(name)

		if !p.curIs(token.Eq) {
			// no rhs: deletes the session variable
			assigns = append(assigns, ast.Call(pos, types.Void, nil, "$datasource", "delete",
				[]*ast.Expr{ast.Constant(pos, types.String, value.Str(name))}))
			delete(p.setVars, folded)
			delete(p.transient, folded)
		} else {
			if _, taken := p.defs[folded]; taken {
				p.addError(UsageError, "name '"+name+"' is already in use by a definition", namePos)
				return nil
			}
			p.advance() // '='
			rhs := p.ParseFormula()
			if rhs == nil {
				return nil
			}
			// Announced but not yet persisted: later assignments in the
			// same list (and later statements in the same input) may
			// reference it, but a def body may not.
			p.setVars[folded] = rhs.Type
			p.transient[folded] = true
			assigns = append(assigns, p.emitSetExpression(name, rhs, pos))
		}

		if p.curIs(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return ast.Block(pos, types.Void, assigns)
}

// emitSetExpression wraps one `set` assignment, deferring to the host
// data source's set_expression when one is wired in so hosts see their
// own node shape.
func (p *Parser) emitSetExpression(name string, rhs *ast.Expr, pos token.Position) *ast.Expr {
	if p.session != nil {
		return p.session.SetExpression(name, rhs)
	}
	return ast.Assign(pos, rhs.Type, name, rhs)
}

func (p *Parser) parseDefStmt() *ast.Expr {
	pos := p.cur.Pos
	p.advance() // 'def'

	name := p.cur.Text
	isParameterized := p.curIs(token.Functor)
	if !p.curIs(token.Id) && !isParameterized {
		p.addError(SyntaxError, "expected a definition name", p.cur.Pos)
		return nil
	}
	p.advance()
	folded := token.Normalize(name)
	if _, exists := p.defs[folded]; exists {
		p.addError(UsageError, "definition '"+name+"' already registered", pos)
		return nil
	}
	if p.session != nil {
		if _, exists := p.session.GetExpression(name, true); exists {
			p.addError(UsageError, "definition '"+name+"' already registered", pos)
			return nil
		}
	}
	if _, taken := p.setVars[folded]; taken {
		p.addError(UsageError, "name '"+name+"' is already in use by a session variable", pos)
		return nil
	}

	// A parameterized macro, "def sq(x) = x*x", stores its body as a
	// lambda over the declared parameters; a call site "sq(5)" applies
	// it (parseDefMacroCall).
	var params []lambdablock.Binding
	if isParameterized {
		if !p.expect(token.LParen, "'('") {
			return nil
		}
		for {
			pname := p.cur.Text
			if !p.expect(token.Id, "a parameter name") {
				return nil
			}
			idx := p.arena.Bind(pname, types.Double)
			params = append(params, lambdablock.Binding{Name: pname, Type: types.Double, Index: idx})
			if p.curIs(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if !p.expect(token.RParen, "')'") {
			return nil
		}
	}

	var description string
	if p.curIs(token.Colon) {
		p.advance()
		description = p.cur.Text
		if !p.expect(token.Str, "a description string") {
			return nil
		}
	}
	if !p.expect(token.Eq, "'='") {
		return nil
	}

	def := &Definition{Name: name, Description: description}
	p.defs[folded] = def
	p.defStack = append(p.defStack, folded)
	if len(params) > 0 {
		p.lambdas.Push(params...)
	}
	body := p.ParseFormula()
	if len(params) > 0 && body != nil {
		lam, err := p.lambdas.Close(body, body.Type, false)
		if err != nil {
			p.addError(TypeError, err.Error(), pos)
			body = nil
		} else {
			body = lam
		}
	}
	p.defStack = p.defStack[:len(p.defStack)-1]
	if body == nil {
		delete(p.defs, folded)
		return nil
	}
	if p.bindings.DefAdornment() && body.Type == types.Series {
		body = ast.Call(pos, types.Series, body, "", "set_name",
			[]*ast.Expr{ast.Constant(pos, types.String, value.Str(name))})
	}
	def.Expression = body
	return ast.Assign(pos, types.Void, name, body)
}

// parseUndefStmt removes a registered definition: `undef name`.
func (p *Parser) parseUndefStmt() *ast.Expr {
	pos := p.cur.Pos
	p.advance() // 'undef'

	name := p.cur.Text
	if !p.expect(token.Id, "a definition name") {
		return nil
	}
	folded := token.Normalize(name)
	if _, ok := p.defs[folded]; !ok {
		if p.session == nil {
			p.addError(NameError, "unknown definition '"+name+"'", pos)
			return nil
		}
		if _, found := p.session.GetExpression(name, true); !found {
			p.addError(NameError, "unknown definition '"+name+"'", pos)
			return nil
		}
	}
	delete(p.defs, folded)
	return ast.Call(pos, types.Void, nil, "$datasource", "undefine",
		[]*ast.Expr{ast.Constant(pos, types.String, value.Str(name))})
}
