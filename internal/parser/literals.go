package parser

import (
	"strconv"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// parseFactor parses the Factor production and its trailing Postfix
// chain (§4.2): literals, parenthesized expressions, identifier forms,
// vector literals, and then zero or more property/method/transpose/
// indexer suffixes.
func (p *Parser) parseFactor() *ast.Expr {
	var e *ast.Expr
	switch p.cur.Kind {
	case token.Int:
		e = ast.Constant(p.cur.Pos, types.Int, value.Int(p.cur.IntVal))
		p.advance()
	case token.Real:
		e = ast.Constant(p.cur.Pos, types.Double, value.Real(p.cur.RealVal))
		p.advance()
	case token.Imag:
		e = ast.Constant(p.cur.Pos, types.Complex, value.Complex(complex(0, p.cur.RealVal)))
		p.advance()
	case token.Str:
		e = ast.Constant(p.cur.Pos, types.String, value.Str(p.cur.Text))
		p.advance()
	case token.TrueTok:
		e = ast.Constant(p.cur.Pos, types.Bool, value.Bool(true))
		p.advance()
	case token.FalseTok:
		e = ast.Constant(p.cur.Pos, types.Bool, value.Bool(false))
		p.advance()
	case token.Date:
		d := p.cur.DateVal
		e = ast.Constant(p.cur.Pos, types.DateT, value.DateOf(value.Date{Year: d.Year, Month: d.Month, Day: d.Day}))
		p.advance()
	case token.LParen:
		p.advance()
		e = p.parseConditional()
		if e == nil {
			return nil
		}
		if !p.expect(token.RParen, "')'") {
			return nil
		}
	case token.LBrack:
		e = p.parseVectorLiteral()
		if e == nil {
			return nil
		}
	case token.Id:
		e = p.parseIdentifierRef()
		if e == nil {
			return nil
		}
	case token.Functor:
		e = p.parseBareCall()
		if e == nil {
			return nil
		}
	case token.ClassName:
		e = p.parseClassMethodCall()
		if e == nil {
			return nil
		}
	case token.IdBang:
		e = p.parseDefReference()
		if e == nil {
			return nil
		}
	case token.MultVarI:
		e = p.parseAdjacencyMultiply(types.Int, value.Int(p.cur.IntVal))
		if e == nil {
			return nil
		}
	case token.MultVarR:
		e = p.parseAdjacencyMultiply(types.Double, value.Real(p.cur.RealVal))
		if e == nil {
			return nil
		}
	default:
		p.addError(SyntaxError, "expected an expression, found "+p.cur.Kind.String(), p.cur.Pos)
		return nil
	}

	for {
		next := p.parsePostfix(e)
		if next == nil || next == e {
			break
		}
		e = next
	}
	return e
}

func (p *Parser) parseAdjacencyMultiply(numType types.Type, numVal value.Value) *ast.Expr {
	pos := p.cur.Pos
	name := p.cur.Text
	p.advance()
	ref, ok := p.resolveIdent(name, pos)
	if !ok {
		return nil
	}
	left := ast.Constant(pos, numType, numVal)
	left, ref = p.widenPair(left, ref, pos)
	result, ok := types.Widen(left.Type, ref.Type)
	if !ok {
		p.addError(TypeError, "adjacency multiplication requires numeric operands", pos)
		result = left.Type
	}
	return ast.Arithmetic(pos, result, "*", left, ref)
}

// parseVectorLiteral parses "[" e1, e2, ... "]" into a DVector/CVector
// constant build-up call; element types widen to a common numeric
// element type.
func (p *Parser) parseVectorLiteral() *ast.Expr {
	pos := p.cur.Pos
	p.advance() // '['

	var elems []*ast.Expr
	if !p.curIs(token.RBrack) {
		for {
			el := p.parseConditional()
			if el == nil {
				return nil
			}
			elems = append(elems, el)
			if p.curIs(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.expect(token.RBrack, "']'") {
		return nil
	}

	elemType := types.Double
	vecType := types.DVector
	for _, el := range elems {
		if el.Type == types.Complex {
			elemType, vecType = types.Complex, types.CVector
			break
		}
	}
	for i, el := range elems {
		if el.Type != elemType {
			if types.ConvertibleTo(el.Type, elemType) {
				elems[i] = ast.Convert(el.Pos, elemType, el)
			} else {
				p.addError(TypeError, "vector literal elements must share a numeric type", el.Pos)
			}
		}
	}
	return ast.New(pos, vecType, vecType.String(), elems)
}

// resolveIdent looks up a bare identifier against the lambda block,
// local let bindings, the pending set variables of this input,
// then the host data source, in that order (innermost scope wins).
func (p *Parser) resolveIdent(name string, pos token.Position) (*ast.Expr, bool) {
	folded := token.Normalize(name)
	if b, ok := p.lambdas.Lookup(name); ok {
		return ast.ParamRef(pos, b.Type, b.Index), true
	}
	if idx, ok := p.locals[folded]; ok {
		param := p.arena.At(idx)
		return ast.ParamRef(pos, param.Type, idx), true
	}
	if t, ok := p.setVars[folded]; ok {
		if p.inDefBody() && p.transient[folded] {
			p.addError(UsageError, "set variable '"+name+"' cannot be referenced inside a def", pos)
			return nil, false
		}
		return ast.Call(pos, t, nil, "$datasource", "get", []*ast.Expr{ast.Constant(pos, types.String, value.Str(name))}), true
	}
	if p.session != nil {
		if e, ok := p.session.GetExpression(name, false); ok {
			if p.inDefBody() && p.transient[folded] {
				p.addError(UsageError, "set variable '"+name+"' cannot be referenced inside a def", pos)
				return nil, false
			}
			return e, true
		}
	}
	p.addError(NameError, "unknown identifier '"+name+"'", pos)
	return nil, false
}

func (p *Parser) parseIdentifierRef() *ast.Expr {
	pos := p.cur.Pos
	name := p.cur.Text
	p.advance()
	e, ok := p.resolveIdent(name, pos)
	if !ok {
		return nil
	}
	return e
}

// parseBareCall parses a Functor-form call: a bare math function or
// root constructor (§6.1: "math members may be called... bare"), else a
// call to a parameterized def macro, or, failing both, a NameError.
func (p *Parser) parseBareCall() *ast.Expr {
	pos := p.cur.Pos
	name := p.cur.Text
	p.advance()

	if list, ok := p.bindings.ClassMethod("", name); ok {
		return p.parseArgList(pos, nil, "", name, list)
	}
	if macro := p.lookupDefExpression(name); macro != nil && macro.Kind == ast.KindLambda {
		return p.parseDefMacroCall(pos, name, macro)
	}
	p.addError(NameError, "unknown function '"+name+"'", pos)
	p.skipBalancedParens()
	return nil
}

// parseDefMacroCall applies a parameterized def macro: the stored
// lambda is invoked over the parsed actuals, each widened to the
// macro's numeric parameter type.
func (p *Parser) parseDefMacroCall(pos token.Position, name string, macro *ast.Expr) *ast.Expr {
	if !p.expect(token.LParen, "'('") {
		return nil
	}
	var args []*ast.Expr
	if !p.curIs(token.RParen) {
		for {
			arg := p.parseConditional()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.curIs(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.expect(token.RParen, "')'") {
		return nil
	}

	if len(args) != len(macro.Params) {
		p.addError(OverloadError, "definition '"+name+"' expects "+
			strconv.Itoa(len(macro.Params))+" argument(s)", pos)
		return nil
	}
	for i, arg := range args {
		want := p.arena.At(macro.Params[i]).Type
		if arg.Type != want {
			if !types.ConvertibleTo(arg.Type, want) {
				p.addError(TypeError, "invalid argument type for definition '"+name+"'", arg.Pos)
				return nil
			}
			args[i] = ast.Convert(arg.Pos, want, arg)
		}
	}

	p.references[token.Normalize(name)] = true
	if len(p.defStack) > 0 {
		if cur := p.defs[p.defStack[len(p.defStack)-1]]; cur != nil {
			cur.Children = append(cur.Children, name)
		}
	}
	return ast.Call(pos, macro.Type, macro, "", "invoke", args)
}

func (p *Parser) parseClassMethodCall() *ast.Expr {
	pos := p.cur.Pos
	className := p.cur.Text
	p.advance()
	if !p.expect(token.DoubleColon, "'::'") {
		return nil
	}
	methodName := p.cur.Text
	if !p.curIs(token.Functor) && !p.curIs(token.Id) {
		p.addError(SyntaxError, "expected a method name after '::'", p.cur.Pos)
		return nil
	}
	p.advance()

	list, ok := p.bindings.ClassMethod(className, methodName)
	if !ok {
		p.addError(NameError, "unknown class method '"+className+"::"+methodName+"'", pos)
		return nil
	}
	return p.parseArgList(pos, nil, className, methodName, list)
}

// parseDefReference resolves "name!": a forced reference to a
// registered def, recorded as a child dependency when parsed inside
// another def's body (§4.4).
func (p *Parser) parseDefReference() *ast.Expr {
	pos := p.cur.Pos
	name := p.cur.Text
	p.advance()

	expr := p.lookupDefExpression(name)
	if expr == nil {
		p.addError(NameError, "unknown definition '"+name+"!'", pos)
		return nil
	}
	p.references[token.Normalize(name)] = true
	if len(p.defStack) > 0 {
		current := p.defStack[len(p.defStack)-1]
		if cur := p.defs[current]; cur != nil {
			cur.Children = append(cur.Children, name)
		}
	}
	return expr
}

// lookupDefExpression resolves a def body: first among the defs
// registered earlier in this same input, then against the host data
// source's persisted definitions.
func (p *Parser) lookupDefExpression(name string) *ast.Expr {
	if def, ok := p.defs[token.Normalize(name)]; ok {
		return def.Expression
	}
	if p.session != nil {
		if e, ok := p.session.GetExpression(name, true); ok {
			return e
		}
	}
	return nil
}

func (p *Parser) inDefBody() bool { return len(p.defStack) > 0 }

// skipBalancedParens consumes a "(...)" call-argument span after a
// NameError on the call target, so the remaining statement still has
// a chance to resynchronize past it.
func (p *Parser) skipBalancedParens() {
	if !p.curIs(token.LParen) {
		return
	}
	depth := 0
	for {
		switch p.cur.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		case token.EOF:
			return
		}
		p.advance()
		if depth == 0 {
			return
		}
	}
}
