package parser

import (
	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/types"
	"github.com/austra-lang/austra/internal/value"
	"github.com/austra-lang/austra/pkg/token"
)

// tryAffineRewrite recognizes the vector/matrix affine patterns of
// §4.4's rewrite table in "a ± b" and emits the corresponding fused
// kernel call instead of the naive tree. Returns nil when left/right
// don't match any pattern, so the caller falls back to plain
// arithmetic.
func (p *Parser) tryAffineRewrite(left, right *ast.Expr, op token.Token) *ast.Expr {
	if !types.IsVectorAggregate(left.Type) && left.Type != types.Matrix {
		return nil
	}
	negate := op.Kind == token.Minus

	// d1*v1 + d2*v2 => combine2(d1, d2, v1, v2); '-' negates d2.
	if lm, lok := asScalarVectorProduct(left); lok {
		if rm, rok := asScalarVectorProduct(right); rok {
			d2 := ensureReal(rm.scalar)
			if negate {
				d2 = negateScalar(op.Pos, d2)
			}
			return ast.Call(op.Pos, left.Type, nil, "", "combine2",
				[]*ast.Expr{ensureReal(lm.scalar), d2, lm.vector, rm.vector})
		}
	}

	// m*v1 + d*v2 => m.multiply_add(v1, d, v2)
	if lmv, lok := asMatrixVectorProduct(left); lok {
		if rm, rok := asScalarVectorProduct(right); rok {
			d2 := ensureReal(rm.scalar)
			if negate {
				d2 = negateScalar(op.Pos, d2)
			}
			return ast.Call(op.Pos, lmv.vectorType, lmv.matrix, "", "multiply_add",
				[]*ast.Expr{lmv.vector, d2, rm.vector})
		}
		// M*v ± w => M.multiply_add_sub(v, w)
		if isAggregate(right) {
			method := "multiply_add_sub"
			w := right
			if negate {
				w = ast.Arithmetic(op.Pos, right.Type, "-", right, nil)
			}
			return ast.Call(op.Pos, lmv.vectorType, lmv.matrix, "", method,
				[]*ast.Expr{lmv.vector, w})
		}
	}

	// α*v + w (and the commuted w + α*v) => v.multiply_add(α, w)
	if lm, lok := asScalarVectorProduct(left); lok && isAggregate(right) {
		w := right
		if negate {
			w = ast.Arithmetic(op.Pos, right.Type, "-", right, nil)
		}
		return ast.Call(op.Pos, left.Type, lm.vector, "", "multiply_add", []*ast.Expr{ensureReal(lm.scalar), w})
	}
	if !negate {
		if rm, rok := asScalarVectorProduct(right); rok && isAggregate(left) {
			return ast.Call(op.Pos, right.Type, rm.vector, "", "multiply_add", []*ast.Expr{ensureReal(rm.scalar), left})
		}
	}

	return nil
}

// buildVectorMatrixProduct handles "*" shapes that aren't plain scalar
// arithmetic: scalar*vector, vector*vector (squared), Matrix*Matrix
// (square/multiply_transpose when one side is transposed), and
// Matrix*DVector (transpose_multiply when the matrix side is
// transposed). Reports handled=false to fall back to the generic
// numeric path when neither side is an aggregate.
func (p *Parser) buildVectorMatrixProduct(left, right *ast.Expr, pos token.Position) (*ast.Expr, bool) {
	leftTransposed := isTranspose(left)
	rightTransposed := isTranspose(right)

	switch {
	case left.Type.IsNumericScalar() && types.IsVectorAggregate(right.Type):
		return ast.Arithmetic(pos, right.Type, "*", left, right), true
	case right.Type.IsNumericScalar() && types.IsVectorAggregate(left.Type):
		return ast.Arithmetic(pos, left.Type, "*", right, left), true

	case types.IsVectorAggregate(left.Type) && left.Type == right.Type && sameOperand(left, right):
		// v*v => v.squared(), elementwise (matches the DVector.squared
		// binding's declared DVector->DVector signature)
		return ast.Call(pos, left.Type, left, "", "squared", nil), true

	case left.Type == types.Matrix && right.Type == types.Matrix:
		if rightTransposed {
			if sameOperand(left, right.Target) {
				return ast.Call(pos, types.Matrix, left, "", "square", nil), true
			}
			return ast.Call(pos, types.Matrix, left, "", "multiply_transpose", []*ast.Expr{right.Target}), true
		}
		return ast.Arithmetic(pos, types.Matrix, "*", left, right), true

	case leftTransposed && left.Type == types.Matrix && right.Type == types.DVector:
		return ast.Call(pos, types.DVector, left.Target, "", "transpose_multiply", []*ast.Expr{right}), true
	case left.Type == types.Matrix && right.Type == types.DVector:
		return ast.Arithmetic(pos, types.DVector, "*", left, right), true

	default:
		return nil, false
	}
}

func isTranspose(e *ast.Expr) bool {
	return e.Kind == ast.KindCall && e.Method == "transpose" && e.Target != nil
}

// sameOperand reports whether two factors denote the same value: a
// structural-equality walk, not a position check, since "v*v" parses v
// at two distinct source spans. Sound because the language is pure —
// two structurally equal subtrees always evaluate to the same value.
func sameOperand(a, b *ast.Expr) bool {
	return ast.Equal(a, b)
}

type scalarVector struct {
	scalar *ast.Expr
	vector *ast.Expr
}

// asScalarVectorProduct recognizes "d * v" or "v * d" with d numeric
// scalar and v a vector aggregate.
func asScalarVectorProduct(e *ast.Expr) (scalarVector, bool) {
	if e.Kind != ast.KindArithmetic || e.Op != "*" {
		return scalarVector{}, false
	}
	if e.Left.Type.IsNumericScalar() && types.IsVectorAggregate(e.Right.Type) {
		return scalarVector{scalar: e.Left, vector: e.Right}, true
	}
	if e.Right.Type.IsNumericScalar() && types.IsVectorAggregate(e.Left.Type) {
		return scalarVector{scalar: e.Right, vector: e.Left}, true
	}
	return scalarVector{}, false
}

type matrixVector struct {
	matrix     *ast.Expr
	vector     *ast.Expr
	vectorType types.Type
}

// asMatrixVectorProduct recognizes "M * v" with M a Matrix and v a
// DVector.
func asMatrixVectorProduct(e *ast.Expr) (matrixVector, bool) {
	if e.Kind != ast.KindArithmetic || e.Op != "*" {
		return matrixVector{}, false
	}
	if e.Left.Type == types.Matrix && e.Right.Type == types.DVector {
		return matrixVector{matrix: e.Left, vector: e.Right, vectorType: types.DVector}, true
	}
	return matrixVector{}, false
}

func isAggregate(e *ast.Expr) bool {
	return types.IsVectorAggregate(e.Type) || e.Type == types.Matrix
}

// ensureReal widens an int scalar to double before it feeds a fused
// kernel whose declared formal is double.
func ensureReal(e *ast.Expr) *ast.Expr {
	if e.Type == types.Int {
		if e.Kind == ast.KindConstant && e.Const.Kind == value.IntKind {
			return ast.Constant(e.Pos, types.Double, value.Real(e.Const.AsReal()))
		}
		return ast.Convert(e.Pos, types.Double, e)
	}
	return e
}

func negateScalar(pos token.Position, e *ast.Expr) *ast.Expr {
	if e.Kind == ast.KindConstant {
		if c, ok := foldUnaryMinus(e); ok {
			return c
		}
	}
	return ast.Arithmetic(pos, e.Type, "-", e, nil)
}

// tryExpandSmallIntPower expands x^2, x^3, x^4 into repeated
// multiplication over a single evaluation of the base, per §4.4 and
// testable property 5 ("does not re-evaluate x"). Returns nil outside
// that range or when the exponent isn't a non-negative integer
// constant.
func (p *Parser) tryExpandSmallIntPower(base, exponent *ast.Expr, pos token.Position) *ast.Expr {
	if exponent.Kind != ast.KindConstant || exponent.Const.Kind != value.IntKind {
		return nil
	}
	n := exponent.Const.Int
	if n < 2 || n > 4 {
		return nil
	}
	if !base.Type.IsNumericScalar() && !types.IsVectorAggregate(base.Type) {
		return nil
	}

	if types.IsVectorAggregate(base.Type) && n == 2 {
		return ast.Call(pos, base.Type, base, "", "squared", nil)
	}

	if base.Kind == ast.KindConstant || base.Kind == ast.KindParameter {
		return expandPower(pos, base, int(n))
	}

	// The base is re-evaluated more than once only if it isn't already a
	// side-effect-free leaf; bind it to a fresh arena parameter so the
	// expansion evaluates it exactly once.
	idx := p.arena.Bind("", base.Type)
	ref := ast.ParamRef(pos, base.Type, idx)
	binding := ast.Bind(pos, base.Type, "", idx, base)
	expanded := expandPower(pos, ref, int(n))
	return ast.Block(pos, expanded.Type, []*ast.Expr{binding, expanded})
}

func expandPower(pos token.Position, base *ast.Expr, n int) *ast.Expr {
	result := base
	for i := 1; i < n; i++ {
		result = ast.Arithmetic(pos, result.Type, "*", result, base)
	}
	return result
}
