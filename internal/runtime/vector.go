// Package runtime supplies minimal concrete numeric types backing the
// method names the parser's algebraic rewrites (internal/parser
// rewrites.go/calls.go) emit by name: combine2, multiply_add,
// multiply_add_sub, squared, transpose, multiply_transpose,
// transpose_multiply, square, and the Series/Acc accumulation surface.
// None of this is reflected into by the compiler itself — the emitted
// ast.Expr tree only carries these names as string tags for a host
// executor to dispatch on. This package exists so the reference
// DataSource and end-to-end tests have something runnable to dispatch
// to; its internals are not part of the compiler's contract.
package runtime

import (
	"math"

	"github.com/spf13/cast"
)

// DVector is a dense real vector.
type DVector []float64

// NewDVector copies vals into a fresh DVector.
func NewDVector(vals ...float64) DVector {
	v := make(DVector, len(vals))
	copy(v, vals)
	return v
}

// Length is the DVector.length property binding.
func (v DVector) Length() int { return len(v) }

// At is the element accessor behind the "v[i]" indexer.
func (v DVector) At(i int) float64 { return v[i] }

// FromEnd is the accessor behind the prefix "^" from-end marker.
func (v DVector) FromEnd(offset int) float64 { return v[len(v)-1-offset] }

// Add returns the elementwise sum of v and w.
func (v DVector) Add(w DVector) DVector {
	out := make(DVector, len(v))
	for i := range v {
		out[i] = v[i] + w[i]
	}
	return out
}

// Sub returns the elementwise difference v - w.
func (v DVector) Sub(w DVector) DVector {
	out := make(DVector, len(v))
	for i := range v {
		out[i] = v[i] - w[i]
	}
	return out
}

// Scale returns d*v.
func (v DVector) Scale(d float64) DVector {
	out := make(DVector, len(v))
	for i := range v {
		out[i] = d * v[i]
	}
	return out
}

// ScalarArg materializes a host-supplied scalar argument into float64.
// A DataSource.Get result or a "def"-bound value can arrive as any Go
// numeric type depending on how the host stored it; this is the single
// point that normalizes whatever comes back before it reaches Scale,
// MultiplyAdd, or Combine2.
func ScalarArg(v any) (float64, error) {
	return cast.ToFloat64E(v)
}

// Squared returns the elementwise product v .* v, grounded on the
// DVector.squared binding's declared DVector->DVector signature
// (internal/bindings/table.yaml).
func (v DVector) Squared() DVector {
	out := make(DVector, len(v))
	for i, x := range v {
		out[i] = x * x
	}
	return out
}

// MultiplyAdd fuses "alpha*v + w" into one pass, the `v.multiply_add(alpha, w)`
// rewrite target.
func (v DVector) MultiplyAdd(alpha float64, w DVector) DVector {
	out := make(DVector, len(v))
	for i := range v {
		out[i] = alpha*v[i] + w[i]
	}
	return out
}

// Combine2 fuses "d1*v1 + d2*v2" into one pass, the `combine2(d1, d2, v1, v2)`
// rewrite target.
func Combine2(d1, d2 float64, v1, v2 DVector) DVector {
	out := make(DVector, len(v1))
	for i := range v1 {
		out[i] = d1*v1[i] + d2*v2[i]
	}
	return out
}

// Random returns a DVector of n draws from a uniform [0,1) source.
func Random(n int, src func() float64) DVector {
	out := make(DVector, n)
	for i := range out {
		out[i] = src()
	}
	return out
}

// NormalRandom returns a DVector of n draws from a standard normal
// source (Box-Muller over the supplied uniform generator).
func NormalRandom(n int, uniform func() float64) DVector {
	out := make(DVector, n)
	for i := 0; i < n; i++ {
		u1, u2 := uniform(), uniform()
		if u1 <= 0 {
			u1 = 1e-12
		}
		out[i] = math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	}
	return out
}

// CVector is a dense complex vector.
type CVector []complex128

func (v CVector) Length() int { return len(v) }

// Conjugate returns the elementwise complex conjugate.
func (v CVector) Conjugate() CVector {
	out := make(CVector, len(v))
	for i, c := range v {
		out[i] = complex(real(c), -imag(c))
	}
	return out
}

// NVector is a dense integer vector.
type NVector []int64

func (v NVector) Length() int { return len(v) }
