package parser

import (
	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// ParseFormula parses the Formula production: an optional `let ... in`
// header followed by a Conditional (§4.2).
func (p *Parser) ParseFormula() *ast.Expr {
	if p.curIs(token.Let) {
		return p.parseLetIn()
	}
	return p.parseConditional()
}

func (p *Parser) parseLetIn() *ast.Expr {
	pos := p.cur.Pos
	p.advance() // 'let'

	var stmts []*ast.Expr
	for {
		name := p.cur.Text
		if !p.expect(token.Id, "a local name") {
			return nil
		}
		if !p.expect(token.Eq, "'='") {
			return nil
		}
		rhs := p.parseConditional()
		if rhs == nil {
			return nil
		}
		idx := p.arena.Bind(name, rhs.Type)
		p.locals[token.Normalize(name)] = idx
		stmts = append(stmts, ast.Bind(pos, rhs.Type, name, idx, rhs))

		if p.curIs(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if !p.expect(token.In, "'in'") {
		return nil
	}
	body := p.parseConditional()
	if body == nil {
		return nil
	}
	stmts = append(stmts, body)
	return ast.Block(pos, body.Type, stmts)
}

func (p *Parser) parseConditional() *ast.Expr {
	if !p.curIs(token.If) {
		return p.parseDisjConj()
	}

	pos := p.cur.Pos
	var conds, thens []*ast.Expr
	var resultType types.Type

	for {
		p.advance() // 'if' or 'elif'
		cond := p.parseDisjConj()
		if cond == nil {
			return nil
		}
		if cond.Type != types.Bool {
			p.addError(TypeError, "condition must be bool", cond.Pos)
		}
		if !p.expect(token.Then, "'then'") {
			return nil
		}
		then := p.parseConditional()
		if then == nil {
			return nil
		}
		conds = append(conds, cond)
		thens = append(thens, then)
		if resultType == types.Void {
			resultType = then.Type
		}

		if p.curIs(token.Elif) {
			continue
		}
		break
	}

	if !p.expect(token.Else, "'else'") {
		return nil
	}
	els := p.parseConditional()
	if els == nil {
		return nil
	}
	if els.Type != resultType {
		if w, ok := types.Widen(els.Type, resultType); ok {
			resultType = w
		} else {
			p.addError(TypeError, "if/elif/else branches must share a type", els.Pos)
		}
	}

	return ast.Condition(pos, resultType, conds, thens, els)
}

// parseDisjConj parses "and"/"or" chains, left-associative per operator.
func (p *Parser) parseDisjConj() *ast.Expr {
	left := p.parseLogFactor()
	if left == nil {
		return nil
	}
	for p.curIs(token.And) || p.curIs(token.Or) {
		op := p.cur
		p.advance()
		right := p.parseLogFactor()
		if right == nil {
			return nil
		}
		if left.Type != types.Bool || right.Type != types.Bool {
			p.addError(TypeError, "'"+op.Kind.String()+"' requires bool operands", op.Pos)
		}
		left = ast.Arithmetic(op.Pos, types.Bool, opText(op.Kind), left, right)
	}
	return left
}

// parseLogFactor parses "not" and a chained-comparison run over Additive
// operands, rewriting consistent-direction chains to a conjunction per
// §4.4 ("a < b < c" => "(a<b) and (b<c)", middle operand evaluated once).
func (p *Parser) parseLogFactor() *ast.Expr {
	if p.curIs(token.Not) {
		pos := p.cur.Pos
		p.advance()
		operand := p.parseLogFactor()
		if operand == nil {
			return nil
		}
		if operand.Type != types.Bool {
			p.addError(TypeError, "'not' requires a bool operand", pos)
		}
		return ast.Arithmetic(pos, types.Bool, "not", operand, nil)
	}

	first := p.parseAdditive()
	if first == nil {
		return nil
	}
	if !comparisonOps[p.cur.Kind] {
		return first
	}

	type link struct {
		op      token.Token
		operand *ast.Expr
	}
	var links []link
	for comparisonOps[p.cur.Kind] {
		op := p.cur
		p.advance()
		rhs := p.parseAdditive()
		if rhs == nil {
			return nil
		}
		links = append(links, link{op: op, operand: rhs})
	}

	dir := direction(links[0].op.Kind)
	for _, l := range links[1:] {
		if direction(l.op.Kind) != dir {
			p.addError(TypeError, "cannot chain comparisons of different directions", l.op.Pos)
			return ast.Constant(links[len(links)-1].op.Pos, types.Bool, value.Bool(false))
		}
	}

	operands := make([]*ast.Expr, 0, len(links)+1)
	operands = append(operands, first)
	for _, l := range links {
		operands = append(operands, l.operand)
	}

	// A middle operand appears on both sides of the rewritten
	// conjunction; bind it to a fresh parameter so it is evaluated once
	// (§4.4: "the middle operand is evaluated once"). Constants and
	// parameter references are already single evaluations.
	var prelude []*ast.Expr
	for i := 1; i < len(operands)-1; i++ {
		o := operands[i]
		if o.Kind == ast.KindConstant || o.Kind == ast.KindParameter {
			continue
		}
		idx := p.arena.Bind("", o.Type)
		prelude = append(prelude, ast.Bind(o.Pos, o.Type, "", idx, o))
		operands[i] = ast.ParamRef(o.Pos, o.Type, idx)
	}

	result := p.buildComparison(operands[0], operands[1], links[0].op)
	for i := 1; i < len(links); i++ {
		cmp := p.buildComparison(operands[i], operands[i+1], links[i].op)
		result = ast.Arithmetic(links[i].op.Pos, types.Bool, "and", result, cmp)
	}
	if len(prelude) > 0 {
		result = ast.Block(result.Pos, types.Bool, append(prelude, result))
	}
	return result
}

func isMatrixKind(t types.Type) bool {
	return t == types.Matrix || t == types.LMatrix || t == types.RMatrix
}

func direction(k token.Type) int {
	switch k {
	case token.Lt, token.LtEq:
		return -1
	case token.Gt, token.GtEq:
		return 1
	default:
		return 0 // equality ops chain trivially
	}
}

func (p *Parser) buildComparison(left, right *ast.Expr, op token.Token) *ast.Expr {
	if op.Kind == token.Eq || op.Kind == token.NotEq || op.Kind == token.ExclEq {
		// Equality holds on identical types, on matrix-matrix pairs, and
		// on widenable numeric pairs.
		if left.Type != right.Type && !(isMatrixKind(left.Type) && isMatrixKind(right.Type)) {
			if _, ok := types.Widen(left.Type, right.Type); !ok {
				p.addError(TypeError, "comparison requires matching types", op.Pos)
			}
		}
	} else {
		if !left.Type.IsNumericScalar() || !right.Type.IsNumericScalar() {
			p.addError(TypeError, "ordered comparison requires arithmetic operands", op.Pos)
		}
	}
	left, right = p.widenPair(left, right, op.Pos)
	return ast.Arithmetic(op.Pos, types.Bool, opText(op.Kind), left, right)
}

func (p *Parser) parseAdditive() *ast.Expr {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}
	for p.curIs(token.Plus) || p.curIs(token.Minus) {
		op := p.cur
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		if rewrite := p.tryAffineRewrite(left, right, op); rewrite != nil {
			left = rewrite
			continue
		}
		left = p.buildArithmetic(left, right, op)
	}
	return left
}

func (p *Parser) parseMultiplicative() *ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for p.curIs(token.Star) || p.curIs(token.Slash) || p.curIs(token.Percent) ||
		p.curIs(token.DotStar) || p.curIs(token.DotSlash) || p.curIs(token.Backslash) {
		op := p.cur
		p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = p.buildArithmetic(left, right, op)
	}
	return left
}

func (p *Parser) parseUnary() *ast.Expr {
	if p.curIs(token.Plus) || p.curIs(token.Minus) {
		op := p.cur
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		if !operand.Type.IsNumericScalar() && !types.IsVectorAggregate(operand.Type) && operand.Type != types.Matrix {
			p.addError(TypeError, "unary '"+op.Kind.String()+"' requires a numeric operand", op.Pos)
		}
		if op.Kind == token.Plus {
			return operand
		}
		if c, ok := foldUnaryMinus(operand); ok {
			return c
		}
		return ast.Arithmetic(op.Pos, operand.Type, "-", operand, nil)
	}
	return p.parsePower()
}

func (p *Parser) parsePower() *ast.Expr {
	base := p.parseFactor()
	if base == nil {
		return nil
	}
	if !p.curIs(token.Caret) {
		return base
	}
	op := p.cur
	p.advance()
	exponent := p.parseFactor()
	if exponent == nil {
		return nil
	}

	// DVector ^ DVector is the inner product (§4.4).
	if base.Type == types.DVector && exponent.Type == types.DVector {
		return ast.Call(op.Pos, types.Double, base, "", "dot", []*ast.Expr{exponent})
	}

	if expanded := p.tryExpandSmallIntPower(base, exponent, op.Pos); expanded != nil {
		return expanded
	}

	resultType, ok := types.Widen(base.Type, exponent.Type)
	if !ok {
		p.addError(TypeError, "'^' requires numeric operands", op.Pos)
		resultType = base.Type
	}
	return ast.Arithmetic(op.Pos, resultType, "^", base, exponent)
}

// buildArithmetic widens operands per the int->double->complex ladder,
// folds two numeric constants, and otherwise emits a typed node.
func (p *Parser) buildArithmetic(left, right *ast.Expr, op token.Token) *ast.Expr {
	opStr := opText(op.Kind)

	if left.Kind == ast.KindConstant && right.Kind == ast.KindConstant && value.Foldable(left.Const, right.Const) {
		if folded, err := value.FoldArith(opStr, left.Const, right.Const); err == nil {
			return ast.Constant(op.Pos, valueType(folded), folded)
		}
	}

	if op.Kind == token.Plus && (left.Type == types.String || right.Type == types.String) {
		return ast.Call(op.Pos, types.String, nil, "", "concat", []*ast.Expr{left, right})
	}

	if left.Type == types.DateT || right.Type == types.DateT {
		return p.buildDateArithmetic(left, right, op)
	}

	if types.IsPointwise(left.Type) && types.IsPointwise(right.Type) && (op.Kind == token.DotStar || op.Kind == token.DotSlash) {
		if left.Type != right.Type {
			p.addError(TypeError, "pointwise operands must share a type", op.Pos)
		}
		return ast.Arithmetic(op.Pos, left.Type, opStr, left, right)
	}

	if op.Kind == token.Backslash {
		if left.Type != types.Matrix {
			p.addError(TypeError, "'\\' requires a Matrix left operand", op.Pos)
		}
		if right.Type != types.DVector && right.Type != types.Matrix {
			p.addError(TypeError, "'\\' requires a DVector or Matrix right operand", op.Pos)
		}
		return ast.Arithmetic(op.Pos, right.Type, opStr, left, right)
	}

	if op.Kind == token.Star {
		if node, handled := p.buildVectorMatrixProduct(left, right, op.Pos); handled {
			return node
		}
	}

	left, right = p.widenPair(left, right, op.Pos)
	resultType, ok := types.Widen(left.Type, right.Type)
	if !ok {
		p.addError(TypeError, "'"+opStr+"' requires compatible operand types", op.Pos)
		resultType = left.Type
	}
	return ast.Arithmetic(op.Pos, resultType, opStr, left, right)
}

// buildDateArithmetic applies the date-additive rules of §3:
// "date + int" and "date - int" shift by days, "date - date" is the
// day difference; everything else is a TypeError.
func (p *Parser) buildDateArithmetic(left, right *ast.Expr, op token.Token) *ast.Expr {
	switch {
	case left.Type == types.DateT && right.Type == types.Int:
		if op.Kind == token.Plus || op.Kind == token.Minus {
			return ast.Arithmetic(op.Pos, types.DateT, opText(op.Kind), left, right)
		}
	case left.Type == types.Int && right.Type == types.DateT && op.Kind == token.Plus:
		return ast.Arithmetic(op.Pos, types.DateT, "+", right, left)
	case left.Type == types.DateT && right.Type == types.DateT && op.Kind == token.Minus:
		return ast.Arithmetic(op.Pos, types.Int, "-", left, right)
	}
	p.addError(TypeError, "'"+opText(op.Kind)+"' is not defined for these date operands", op.Pos)
	return ast.Arithmetic(op.Pos, left.Type, opText(op.Kind), left, right)
}

// widenPair inserts an explicit ast.Convert node on whichever side is
// narrower, so the emitted tree never mixes unconverted operand types.
func (p *Parser) widenPair(left, right *ast.Expr, pos token.Position) (*ast.Expr, *ast.Expr) {
	if left.Type == right.Type {
		return left, right
	}
	wide, ok := types.Widen(left.Type, right.Type)
	if !ok {
		return left, right
	}
	if left.Type != wide {
		left = ast.Convert(pos, wide, left)
	}
	if right.Type != wide {
		right = ast.Convert(pos, wide, right)
	}
	return left, right
}

func foldUnaryMinus(operand *ast.Expr) (*ast.Expr, bool) {
	if operand.Kind != ast.KindConstant {
		return nil, false
	}
	switch operand.Const.Kind {
	case value.IntKind:
		return ast.Constant(operand.Pos, operand.Type, value.Int(-operand.Const.Int)), true
	case value.RealKind:
		return ast.Constant(operand.Pos, operand.Type, value.Real(-operand.Const.Real)), true
	default:
		return nil, false
	}
}

// valueType maps a folded constant's Kind back to its AUSTRA Type.
func valueType(v value.Value) types.Type {
	switch v.Kind {
	case value.IntKind:
		return types.Int
	case value.RealKind:
		return types.Double
	case value.ComplexKind:
		return types.Complex
	case value.BoolKind:
		return types.Bool
	case value.StringKind:
		return types.String
	case value.DateKind:
		return types.DateT
	default:
		return types.Void
	}
}

func opText(k token.Type) string {
	switch k {
	case token.And:
		return "and"
	case token.Or:
		return "or"
	case token.Eq:
		return "="
	case token.NotEq:
		return "<>"
	case token.ExclEq:
		return "!="
	case token.Lt:
		return "<"
	case token.LtEq:
		return "<="
	case token.Gt:
		return ">"
	case token.GtEq:
		return ">="
	default:
		return k.String()
	}
}
