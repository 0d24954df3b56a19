package parser

import (
	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/bindings"
	"github.com/austra-lang/austra/internal/lambdablock"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// parseArgList resolves a call against list's overloads using the
// live-set narrowing algorithm of §4.4 "Overload resolution", and
// returns the emitted call/constructor node. target is nil for a bare
// or class-static call; className/method name the call site.
func (p *Parser) parseArgList(pos token.Position, target *ast.Expr, className, method string, list bindings.MethodList) *ast.Expr {
	if !p.expect(token.LParen, "'('") {
		return nil
	}

	live := make([]int, len(list.Overloads))
	for i := range live {
		live[i] = i
	}

	var actuals []*ast.Expr
	userPos := 0
	if !p.curIs(token.RParen) {
		for {
			if len(live) == 0 {
				p.addError(OverloadError, "invalid argument type for "+method, p.cur.Pos)
				return nil
			}

			if p.allLiveWantLambda(list, live, userPos) {
				formal, _, ok := list.Overloads[live[0]].FormalAt(userPos)
				if !ok {
					p.addError(OverloadError, "inconsistent lambda types for "+method, p.cur.Pos)
					return nil
				}
				for _, li := range live[1:] {
					f, _, _ := list.Overloads[li].FormalAt(userPos)
					if f.Type != formal.Type {
						p.addError(OverloadError, "inconsistent lambda types for "+method, p.cur.Pos)
						return nil
					}
				}
				arg := p.parseLambdaArgument(formal.Type)
				if arg == nil {
					return nil
				}
				actuals = append(actuals, arg)
			} else {
				arg := p.parseConditional()
				if arg == nil {
					return nil
				}
				actuals = append(actuals, arg)
				live = p.narrowLiveSet(list, live, userPos, arg)
			}
			userPos++

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

	live = p.filterByArity(list, live, len(actuals))
	if len(live) == 0 {
		p.addError(OverloadError, "no class method accepts this argument list: "+method, pos)
		return nil
	}
	live = p.preferExactAndPromotion(list, live, actuals)
	if len(live) != 1 {
		p.addError(OverloadError, "ambiguous class method call: "+method, pos)
		return nil
	}

	chosen := list.Overloads[live[0]]
	finalArgs := p.materializeArgs(chosen, actuals, pos)

	if chosen.Kind == bindings.Ctor {
		cls := className
		if cls == "" {
			cls = chosen.Implementor
		}
		return ast.New(pos, chosen.ReturnType, cls, finalArgs)
	}
	return ast.Call(pos, chosen.ReturnType, target, className, method, finalArgs)
}

func (p *Parser) allLiveWantLambda(list bindings.MethodList, live []int, userPos int) bool {
	if len(live) == 0 {
		return false
	}
	for _, i := range live {
		if !list.Overloads[i].LambdaAt(userPos) {
			return false
		}
	}
	return true
}

func (p *Parser) narrowLiveSet(list bindings.MethodList, live []int, userPos int, arg *ast.Expr) []int {
	var next []int
	for _, i := range live {
		m := list.Overloads[i]
		if userPos >= m.UserArity() && !m.Variadic {
			continue
		}
		formal, _, ok := m.FormalAt(userPos)
		if !ok {
			continue
		}
		if convertibleArg(arg.Type, formal.Type) {
			next = append(next, i)
		}
	}
	return next
}

func convertibleArg(from, to types.Type) bool {
	return from == to || types.ConvertibleTo(from, to)
}

func (p *Parser) filterByArity(list bindings.MethodList, live []int, n int) []int {
	var next []int
	for _, i := range live {
		m := list.Overloads[i]
		if m.UserArity() == n || (m.Variadic && n >= m.UserArity()-1) {
			next = append(next, i)
		}
	}
	return next
}

// preferExactAndPromotion implements step 4: prefer an overload whose
// first actual type matches exactly, then prefer int->double over any
// other numeric promotion.
func (p *Parser) preferExactAndPromotion(list bindings.MethodList, live []int, actuals []*ast.Expr) []int {
	if len(live) <= 1 || len(actuals) == 0 {
		return live
	}

	var exact []int
	for _, i := range live {
		if formal, _, ok := list.Overloads[i].FormalAt(0); ok && formal.Type == actuals[0].Type {
			exact = append(exact, i)
		}
	}
	if len(exact) == 1 {
		return exact
	}
	if len(exact) > 1 {
		live = exact
	}

	var intToDouble []int
	for _, i := range live {
		if formal, _, ok := list.Overloads[i].FormalAt(0); ok && actuals[0].Type == types.Int && formal.Type == types.Double {
			intToDouble = append(intToDouble, i)
		}
	}
	if len(intToDouble) == 1 {
		return intToDouble
	}
	return live
}

// materializeArgs applies promotions to the parsed actuals and appends
// sentinel-driven auto-arguments (§4.2, §4.4 step 5).
func (p *Parser) materializeArgs(m bindings.MethodData, actuals []*ast.Expr, pos token.Position) []*ast.Expr {
	out := make([]*ast.Expr, 0, len(m.Params))
	userIdx := 0
	for _, param := range m.Params {
		switch param.Sentinel {
		case bindings.Zero:
			out = append(out, ast.Constant(pos, types.Double, value.Real(0)))
		case bindings.One:
			out = append(out, ast.Constant(pos, types.Double, value.Real(1)))
		case bindings.Random:
			out = append(out, ast.New(pos, types.Void, "Random", nil))
		case bindings.NormalRandom:
			out = append(out, ast.New(pos, types.Void, "NormalRandom", nil))
		default:
			actual := actuals[userIdx]
			if actual.Type != param.Type && types.ConvertibleTo(actual.Type, param.Type) {
				actual = ast.Convert(actual.Pos, param.Type, actual)
			}
			out = append(out, actual)
			userIdx++
		}
	}
	// A variadic last formal absorbs every remaining actual, each
	// converted to the element type when it differs.
	if m.Variadic && len(m.Params) > 0 {
		tail := m.Params[len(m.Params)-1]
		for ; userIdx < len(actuals); userIdx++ {
			actual := actuals[userIdx]
			if actual.Type != tail.Type && types.ConvertibleTo(actual.Type, tail.Type) {
				actual = ast.Convert(actual.Pos, tail.Type, actual)
			}
			out = append(out, actual)
		}
	}
	return out
}

// parseLambdaArgument parses "Id =>" or "(Id, Id) =>" followed by a
// full expression body, against the expected delegate return type
// (§4.3).
func (p *Parser) parseLambdaArgument(returnType types.Type) *ast.Expr {
	var names []string
	if p.curIs(token.LParen) {
		p.advance()
		for {
			if !p.curIs(token.Id) {
				p.addError(SyntaxError, "expected a lambda parameter name", p.cur.Pos)
				return nil
			}
			names = append(names, p.cur.Text)
			p.advance()
			if p.curIs(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if !p.expect(token.RParen, "')'") {
			return nil
		}
	} else {
		if !p.curIs(token.Id) {
			p.addError(SyntaxError, "expected a lambda parameter name", p.cur.Pos)
			return nil
		}
		names = append(names, p.cur.Text)
		p.advance()
	}
	if !p.expect(token.FatArrow, "'=>'") {
		return nil
	}

	bindingsList := make([]lambdablock.Binding, len(names))
	paramType := lambdaParamType(returnType)
	for i, name := range names {
		idx := p.arena.Bind(name, paramType)
		bindingsList[i] = lambdablock.Binding{Name: name, Type: paramType, Index: idx}
	}
	p.lambdas.Push(bindingsList...)

	body := p.parseConditional()
	if body == nil {
		return nil
	}

	lam, err := p.lambdas.Close(body, returnType, true)
	if err != nil {
		p.addError(TypeError, err.Error(), body.Pos)
		return nil
	}
	return lam
}

// lambdaParamType picks the formal parameter type for a lambda's own
// bound names. Every delegate the bindings table registers ranges over
// numeric elements (§4.3's "single/double numeric parameter"), so
// parameters are double regardless of the lambda's return type — a
// predicate lambda still receives numeric elements and returns bool.
func lambdaParamType(types.Type) types.Type {
	return types.Double
}
