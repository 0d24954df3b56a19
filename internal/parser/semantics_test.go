package parser

import (
	"testing"

	"github.com/austra-lang/austra/internal/ast"
	"github.com/austra-lang/austra/internal/types"
)

func TestDateArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want types.Type
	}{
		{"1@jan2020 + 7", types.DateT},
		{"1@jan2020 - 7", types.DateT},
		{"7 + 1@jan2020", types.DateT},
		{"23@feb2020 - 1@jan2020", types.Int},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e := parseFormula(t, tt.src)
			if e.Type != tt.want {
				t.Errorf("type = %s, want %s", e.Type, tt.want)
			}
		})
	}
}

func TestDateTimesIntIsTypeError(t *testing.T) {
	p := New("1@jan2020 * 2", mustBindings(t))
	p.ParseFormula()
	found := false
	for _, err := range p.Errors() {
		if err.Kind == TypeError {
			found = true
		}
	}
	if !found {
		t.Errorf("date*int should report a TypeError, got %v", p.Errors())
	}
}

func TestSquaringSuffixExpandsLikeCaretTwo(t *testing.T) {
	e := parseFormula(t, "let x = 3 in x²")
	if e.Type != types.Int {
		t.Errorf("x² type = %s, want int", e.Type)
	}
}

func TestVectorTimesItselfFusesToSquared(t *testing.T) {
	e := parseFormula(t, "let v = [1.0, 2.0] in v * v")
	inner := lastStmt(e)
	if inner.Kind != ast.KindCall || inner.Method != "squared" {
		t.Fatalf("v*v did not fuse to squared: %s", inner)
	}
}

func TestMatrixTimesOwnTransposeFusesToSquare(t *testing.T) {
	e := parseFormula(t, "matrix::identity(3) * matrix::identity(3)'")
	if e.Kind != ast.KindCall || e.Method != "square" {
		t.Fatalf("M*M' did not fuse to square: %s", e)
	}
}

func TestMatrixTimesOtherTransposeFusesToMultiplyTranspose(t *testing.T) {
	e := parseFormula(t, "matrix::identity(3) * matrix::zeros(3, 3)'")
	if e.Kind != ast.KindCall || e.Method != "multiply_transpose" {
		t.Fatalf("M*N' did not fuse to multiply_transpose: %s", e)
	}
}

func TestTransposedMatrixTimesVectorFuses(t *testing.T) {
	e := parseFormula(t, "matrix::identity(2)' * [1.0, 2.0]")
	if e.Kind != ast.KindCall || e.Method != "transpose_multiply" {
		t.Fatalf("M'*v did not fuse to transpose_multiply: %s", e)
	}
}

func TestVectorPowerVectorIsInnerProduct(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0] ^ [3.0, 4.0]")
	if e.Kind != ast.KindCall || e.Method != "dot" {
		t.Fatalf("v^w did not emit an inner product: %s", e)
	}
	if e.Type != types.Double {
		t.Errorf("inner product type = %s, want double", e.Type)
	}
}

func TestStringConcatCoercesOtherSide(t *testing.T) {
	e := parseFormula(t, `"total: " + 42`)
	if e.Kind != ast.KindCall || e.Method != "concat" {
		t.Fatalf("string + int did not emit concat: %s", e)
	}
	if e.Type != types.String {
		t.Errorf("concat type = %s, want string", e.Type)
	}
}

func TestChainedComparisonBindsMiddleOperandOnce(t *testing.T) {
	e := parseFormula(t, "let x = 2 in 1 < x + 1 < 4")
	if e.Kind != ast.KindBlock {
		t.Fatalf("expected the let block, got %s", e)
	}
	chain := e.Stmts[len(e.Stmts)-1]
	if chain.Kind != ast.KindBlock {
		t.Fatalf("non-leaf middle operand should be bound in a block, got %s", chain)
	}
	last := chain.Stmts[len(chain.Stmts)-1]
	if last.Kind != ast.KindArithmetic || last.Op != "and" {
		t.Errorf("chain body should be a conjunction, got %s", last)
	}
}

func TestLambdaArgumentParsesAndTypes(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0].map(x => x + 1.0)")
	if e.Kind != ast.KindCall || e.Method != "map" {
		t.Fatalf("expected a map call, got %s", e)
	}
	if e.Type != types.DVector {
		t.Errorf("map result type = %s, want DVector", e.Type)
	}
	if len(e.Args) != 1 || e.Args[0].Kind != ast.KindLambda {
		t.Fatalf("map argument should be a lambda, got %+v", e.Args)
	}
}

func TestPredicateLambdaReturnsBool(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0].filter(x => x > 0.5)")
	if e.Type != types.DVector {
		t.Errorf("filter result type = %s, want DVector", e.Type)
	}
}

func TestTwoArgLambdaParses(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0].reduce(0.0, (acc, x) => acc + x)")
	if e.Type != types.Double {
		t.Errorf("reduce result type = %s, want double", e.Type)
	}
	lam := e.Args[1]
	if lam.Kind != ast.KindLambda || len(lam.Params) != 2 {
		t.Fatalf("reduce's second argument should be a 2-arg lambda, got %s", lam)
	}
}

func TestLambdaBodyIntWidensToDouble(t *testing.T) {
	e := parseFormula(t, "[1.0].map(x => 1)")
	lam := e.Args[0]
	if lam.Body.Kind != ast.KindConvert {
		t.Errorf("int lambda body should widen to the double return type, got %s", lam.Body)
	}
}

func TestVariadicCallAcceptsTrailingArguments(t *testing.T) {
	e := parseFormula(t, "vec::join([1.0], [2.0], [3.0])")
	if e.Kind != ast.KindCall || e.Method != "join" {
		t.Fatalf("expected a join call, got %s", e)
	}
	if len(e.Args) != 3 {
		t.Errorf("join should keep all 3 actuals, got %d", len(e.Args))
	}
}

func TestSentinelArgumentsAreMaterialized(t *testing.T) {
	e := parseFormula(t, "vec::random(10)")
	if len(e.Args) != 2 {
		t.Fatalf("random should append its sentinel source argument, got %d args", len(e.Args))
	}
	if e.Args[1].Kind != ast.KindNew || e.Args[1].ClassName != "Random" {
		t.Errorf("sentinel argument = %s, want a fresh Random source", e.Args[1])
	}
}

func TestCtorEmitsNewNode(t *testing.T) {
	e := parseFormula(t, "Polynomial([1.0, 2.0])")
	if e.Kind != ast.KindNew {
		t.Fatalf("constructor call should emit a New node, got %s", e)
	}
	if e.Type != types.Polynomial {
		t.Errorf("ctor type = %s, want Polynomial", e.Type)
	}
}

func TestFromEndIndexer(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0, 3.0][^1]")
	if e.Kind != ast.KindCall || e.Method != "at" {
		t.Fatalf("expected an at call, got %s", e)
	}
	if e.Args[0].Kind != ast.KindNew || e.Args[0].ClassName != "Index" {
		t.Errorf("from-end bound should materialize an Index, got %s", e.Args[0])
	}
}

func TestRangeIndexerSlices(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0, 3.0][0:1]")
	if e.Kind != ast.KindCall || e.Method != "slice" {
		t.Fatalf("expected a slice call, got %s", e)
	}
	if e.Type != types.DVector {
		t.Errorf("slice type = %s, want DVector", e.Type)
	}
}

func TestMatrixRangeIndexerProducesSubmatrix(t *testing.T) {
	e := parseFormula(t, "matrix::identity(4)[0:1, 0:1]")
	if e.Kind != ast.KindCall || e.Method != "slice" {
		t.Fatalf("expected a matrix slice, got %s", e)
	}
	if e.Type != types.Matrix {
		t.Errorf("submatrix type = %s, want Matrix", e.Type)
	}
}

func TestSafeIndexerOnVector(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0]{5}")
	if e.Kind != ast.KindCall || e.Method != "safeAt" {
		t.Fatalf("expected a safeAt call, got %s", e)
	}
}

func TestSafeIndexerOnScalarIsTypeError(t *testing.T) {
	p := New("let x = 1 in x{0}", mustBindings(t))
	p.ParseFormula()
	found := false
	for _, err := range p.Errors() {
		if err.Kind == TypeError {
			found = true
		}
	}
	if !found {
		t.Errorf("safe-indexing an int should report a TypeError, got %v", p.Errors())
	}
}

func TestParameterizedDefAndCall(t *testing.T) {
	p := New("def sq(x) = x*x; sq(5)", mustBindings(t))
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("ParseProgram errors: %v", p.Errors())
	}
	call := stmts[1]
	if call.Kind != ast.KindCall || call.Method != "invoke" {
		t.Fatalf("sq(5) should invoke the stored lambda, got %s", call)
	}
	if call.Target == nil || call.Target.Kind != ast.KindLambda {
		t.Errorf("invoke target should be the macro's lambda, got %s", call.Target)
	}
}

func TestParameterizedDefArityMismatch(t *testing.T) {
	p := New("def sq(x) = x*x; sq(1, 2)", mustBindings(t))
	p.ParseProgram()
	found := false
	for _, err := range p.Errors() {
		if err.Kind == OverloadError {
			found = true
		}
	}
	if !found {
		t.Errorf("wrong macro arity should report an OverloadError, got %v", p.Errors())
	}
}

func TestUndefRemovesDefinition(t *testing.T) {
	p := New("def sq = 5; undef sq; sq!", mustBindings(t))
	p.ParseProgram()
	found := false
	for _, err := range p.Errors() {
		if err.Kind == NameError {
			found = true
		}
	}
	if !found {
		t.Errorf("referencing an undef'd definition should report a NameError, got %v", p.Errors())
	}
}

func TestUndefUnknownIsNameError(t *testing.T) {
	p := New("undef nope", mustBindings(t))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Errorf("undef on an unknown name should report an error")
	}
}

func TestSetNameCollidingWithDefIsUsageError(t *testing.T) {
	p := New("def sq = 5; set sq = 6", mustBindings(t))
	p.ParseProgram()
	found := false
	for _, err := range p.Errors() {
		if err.Kind == UsageError {
			found = true
		}
	}
	if !found {
		t.Errorf("set over a def name should report a UsageError, got %v", p.Errors())
	}
}

func TestSetVariableRejectedInsideDef(t *testing.T) {
	p := New("set x = 5; def f = x + 1", mustBindings(t))
	p.ParseProgram()
	found := false
	for _, err := range p.Errors() {
		if err.Kind == UsageError {
			found = true
		}
	}
	if !found {
		t.Errorf("a def body referencing a pending set variable should report a UsageError, got %v", p.Errors())
	}
}

func TestIdentifierCaseInsensitivity(t *testing.T) {
	e := parseFormula(t, "let X = 1 in x + X")
	if e.Type != types.Int {
		t.Errorf("let X in x+X type = %s, want int", e.Type)
	}
}

func TestReferencesTrackBangUses(t *testing.T) {
	p := New("def a = 1; def b = a! + 1", mustBindings(t))
	p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("ParseProgram errors: %v", p.Errors())
	}
	refs := p.References()
	if len(refs) != 1 || refs[0] != "a" {
		t.Errorf("References() = %v, want [a]", refs)
	}
	if children := p.Definitions()["b"].Children; len(children) != 1 || children[0] != "a" {
		t.Errorf("def b children = %v, want [a]", children)
	}
}

func TestAffineCombinationFusesToCombine2(t *testing.T) {
	e := parseFormula(t, "2.0 * [1.0, 2.0] + 3.0 * [4.0, 5.0]")
	if e.Kind != ast.KindCall || e.Method != "combine2" {
		t.Fatalf("d1*v1 + d2*v2 did not fuse to combine2: %s", e)
	}
}

func TestMatrixVectorAffineFuses(t *testing.T) {
	e := parseFormula(t, "matrix::identity(2) * [1.0, 2.0] + [3.0, 4.0]")
	if e.Kind != ast.KindCall || e.Method != "multiply_add_sub" {
		t.Fatalf("M*v + w did not fuse to multiply_add_sub: %s", e)
	}
}

func TestMatrixSolveOperator(t *testing.T) {
	e := parseFormula(t, "matrix::identity(2) \\ [1.0, 2.0]")
	if e.Kind != ast.KindArithmetic || e.Op != "\\" {
		t.Fatalf("expected a solve node, got %s", e)
	}
	if e.Type != types.DVector {
		t.Errorf("solve type = %s, want DVector", e.Type)
	}
}

func TestPointwiseRequiresMatchingTypes(t *testing.T) {
	e := parseFormula(t, "[1.0, 2.0] .* [3.0, 4.0]")
	if e.Kind != ast.KindArithmetic || e.Op != ".*" {
		t.Fatalf("expected a pointwise node, got %s", e)
	}
}

// lastStmt unwraps a let block down to its final expression.
func lastStmt(e *ast.Expr) *ast.Expr {
	for e.Kind == ast.KindBlock {
		e = e.Stmts[len(e.Stmts)-1]
	}
	return e
}
