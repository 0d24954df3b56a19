package parser

import (
	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// parsePostfix consumes exactly one postfix suffix from the Postfix
// production (§4.2) applied to e, or returns e unchanged when the
// current token starts none of them, ending the caller's loop.
func (p *Parser) parsePostfix(e *ast.Expr) *ast.Expr {
	switch p.cur.Kind {
	case token.Dot:
		return p.parseMemberAccess(e)
	case token.Quote:
		return p.parseTransposeOrConjugate(e)
	case token.Caret2:
		return p.parseSquaringSuffix(e)
	case token.LBrack:
		return p.parseIndexer(e)
	case token.LBrace:
		return p.parseSafeIndexer(e)
	default:
		return e
	}
}

func (p *Parser) parseMemberAccess(e *ast.Expr) *ast.Expr {
	pos := p.cur.Pos
	p.advance() // '.'

	if p.curIs(token.Functor) {
		name := p.cur.Text
		p.advance()
		list, ok := p.bindings.Overloads(e.Type, name)
		if !ok {
			p.addError(NameError, "unknown method '"+name+"' on "+e.Type.String(), pos)
			p.skipBalancedParens()
			return nil
		}
		return p.parseArgList(pos, e, "", name, list)
	}

	if !p.curIs(token.Id) {
		p.addError(SyntaxError, "expected a property or method name after '.'", p.cur.Pos)
		return nil
	}
	name := p.cur.Text
	p.advance()

	if prop, ok := p.bindings.Property(e.Type, name); ok {
		return ast.Member(pos, prop.ReturnType, e, name)
	}
	p.addError(NameError, "unknown property '"+name+"' on "+e.Type.String(), pos)
	return nil
}

// parseTransposeOrConjugate handles "'": transpose on Matrix, conjugate
// on Complex/CVector, TypeError otherwise (§4.2, testable property:
// "[1.0, 2.0, 3.0]'" on a DVector is a TypeError).
func (p *Parser) parseTransposeOrConjugate(e *ast.Expr) *ast.Expr {
	pos := p.cur.Pos
	p.advance() // '\''

	switch e.Type {
	case types.Matrix:
		return ast.Call(pos, types.Matrix, e, "", "transpose", nil)
	case types.Complex:
		return ast.Call(pos, types.Complex, e, "", "conjugate", nil)
	case types.CVector:
		return ast.Call(pos, types.CVector, e, "", "conjugate", nil)
	default:
		p.addError(TypeError, "cannot transpose "+e.Type.String(), pos)
		return e
	}
}

// parseSquaringSuffix handles the "²" postfix: shorthand for "^2",
// sharing the small-integer power expansion so the operand is
// evaluated once.
func (p *Parser) parseSquaringSuffix(e *ast.Expr) *ast.Expr {
	pos := p.cur.Pos
	p.advance() // '²'

	if !e.Type.IsNumericScalar() && !types.IsVectorAggregate(e.Type) {
		p.addError(TypeError, "'²' requires a numeric operand", pos)
		return e
	}
	two := ast.Constant(pos, types.Int, value.Int(2))
	if expanded := p.tryExpandSmallIntPower(e, two, pos); expanded != nil {
		return expanded
	}
	return ast.Arithmetic(pos, e.Type, "^", e, two)
}

// parseIndexer handles "[" Indexer "]": element/row-column/range access
// on vectors, matrices, and series (§4.4).
func (p *Parser) parseIndexer(e *ast.Expr) *ast.Expr {
	pos := p.cur.Pos
	p.advance() // '['

	if e.Type == types.Matrix {
		return p.parseMatrixIndexer(e, pos)
	}
	if !indexable(e.Type) {
		p.addError(TypeError, e.Type.String()+" does not support indexing", pos)
	}

	first, second, isRange, ok := p.parseIndexOrRange(e.Type)
	if !ok {
		return nil
	}
	if !p.expect(token.RBrack, "']'") {
		return nil
	}

	if isRange {
		rng := ast.New(pos, types.Void, "Range", []*ast.Expr{first, second})
		return ast.Call(pos, e.Type, e, "", "slice", []*ast.Expr{rng})
	}
	return ast.Call(pos, elementType(e.Type), e, "", "at", []*ast.Expr{first})
}

// parseMatrixIndexer handles "M[r, c]" with either dimension optionally
// omitted to mean a full row/column, and range bounds in either
// dimension selecting a submatrix.
func (p *Parser) parseMatrixIndexer(e *ast.Expr, pos token.Position) *ast.Expr {
	var row, col *ast.Expr
	var rowRange, colRange bool
	var ok bool
	if !p.curIs(token.Comma) {
		var second *ast.Expr
		row, second, rowRange, ok = p.parseIndexOrRange(types.Matrix)
		if !ok {
			return nil
		}
		if rowRange {
			row = ast.New(pos, types.Void, "Range", []*ast.Expr{row, second})
		}
	}
	if !p.expect(token.Comma, "','") {
		return nil
	}
	if !p.curIs(token.RBrack) {
		var second *ast.Expr
		col, second, colRange, ok = p.parseIndexOrRange(types.Matrix)
		if !ok {
			return nil
		}
		if colRange {
			col = ast.New(pos, types.Void, "Range", []*ast.Expr{col, second})
		}
	}
	if !p.expect(token.RBrack, "']'") {
		return nil
	}

	switch {
	case row != nil && col != nil:
		if rowRange || colRange {
			// Mixed scalar/range dimensions still produce a submatrix: the
			// scalar dimension is passed to slice as a plain index.
			return ast.Call(pos, types.Matrix, e, "", "slice", []*ast.Expr{row, col})
		}
		return ast.Call(pos, types.Double, e, "", "at", []*ast.Expr{row, col})
	case row != nil:
		if rowRange {
			return ast.Call(pos, types.Matrix, e, "", "slice_rows", []*ast.Expr{row})
		}
		return ast.Call(pos, types.DVector, e, "", "row", []*ast.Expr{row})
	case col != nil:
		if colRange {
			return ast.Call(pos, types.Matrix, e, "", "slice_cols", []*ast.Expr{col})
		}
		return ast.Call(pos, types.DVector, e, "", "col", []*ast.Expr{col})
	default:
		p.addError(SyntaxError, "matrix indexer requires at least one dimension", pos)
		return nil
	}
}

// parseIndexOrRange parses one indexer dimension: "a", "^a" (from-end),
// or "a:b" with either bound optionally from-end. Series bounds may be
// dates (absolute positions), which forbid the from-end marker; integer
// bounds on a series are relative (§4.4 "Indexers").
func (p *Parser) parseIndexOrRange(receiver types.Type) (first, second *ast.Expr, isRange, ok bool) {
	first, ok = p.parseIndexBound(receiver)
	if !ok {
		return nil, nil, false, false
	}
	// ".." is the additive surface alias for the range separator.
	if !p.curIs(token.Colon) && !p.curIs(token.DotDot) {
		return first, nil, false, true
	}
	p.advance()
	second, ok = p.parseIndexBound(receiver)
	if !ok {
		return nil, nil, false, false
	}
	return first, second, true, true
}

// parseIndexBound parses a single bound with an optional leading "^"
// from-end marker, materialising Index construction as a call the way
// Range construction is (§4.4).
func (p *Parser) parseIndexBound(receiver types.Type) (*ast.Expr, bool) {
	fromEnd := false
	pos := p.cur.Pos
	if p.curIs(token.Caret) {
		p.advance()
		fromEnd = true
	}
	bound := p.parseAdditive()
	if bound == nil {
		return nil, false
	}
	if fromEnd {
		if bound.Type != types.Int {
			p.addError(TypeError, "from-end indexing requires an integer index", pos)
		}
		return ast.New(pos, types.Int, "Index", []*ast.Expr{bound}), true
	}
	if bound.Type == types.DateT && !isSeries(receiver) {
		p.addError(TypeError, "date indices apply only to series", pos)
	}
	if bound.Type != types.Int && bound.Type != types.DateT {
		p.addError(TypeError, "index must be an integer or a date", pos)
	}
	return bound, true
}

func isSeries(t types.Type) bool {
	return t == types.Series || t == types.SeriesInt || t == types.SeriesDouble
}

func indexable(t types.Type) bool {
	switch t {
	case types.DVector, types.CVector, types.NVector,
		types.LMatrix, types.RMatrix:
		return true
	default:
		return isSeries(t)
	}
}

// parseSafeIndexer handles "v{idx}": a bounds-clamping accessor, valid
// only on types implementing the safe-indexed protocol.
func (p *Parser) parseSafeIndexer(e *ast.Expr) *ast.Expr {
	pos := p.cur.Pos
	p.advance() // '{'

	if !types.IsSafeIndexed(e.Type) {
		p.addError(TypeError, e.Type.String()+" does not support safe indexing", pos)
	}
	idx := p.parseConditional()
	if idx == nil {
		return nil
	}
	if !p.expect(token.RBrace, "'}'") {
		return nil
	}
	return ast.Call(pos, elementType(e.Type), e, "", "safeAt", []*ast.Expr{idx})
}

func elementType(t types.Type) types.Type {
	switch t {
	case types.DVector, types.Series, types.SeriesDouble:
		return types.Double
	case types.CVector:
		return types.Complex
	case types.NVector, types.SeriesInt:
		return types.Int
	default:
		return types.Double
	}
}
