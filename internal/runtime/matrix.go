package runtime

// Matrix is a dense row-major real matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix builds a rows x cols matrix from row-major data; data must
// have exactly rows*cols elements.
func NewMatrix(rows, cols int, data []float64) Matrix {
	out := make([]float64, rows*cols)
	copy(out, data)
	return Matrix{rows: rows, cols: cols, data: out}
}

func (m Matrix) Rows() int { return m.rows }
func (m Matrix) Cols() int { return m.cols }

func (m Matrix) At(r, c int) float64 { return m.data[r*m.cols+c] }

func (m Matrix) Row(r int) DVector {
	out := make(DVector, m.cols)
	copy(out, m.data[r*m.cols:(r+1)*m.cols])
	return out
}

func (m Matrix) Col(c int) DVector {
	out := make(DVector, m.rows)
	for r := 0; r < m.rows; r++ {
		out[r] = m.At(r, c)
	}
	return out
}

// Multiply returns the matrix-vector product M*v.
func (m Matrix) Multiply(v DVector) DVector {
	out := make(DVector, m.rows)
	for r := 0; r < m.rows; r++ {
		var sum float64
		for c := 0; c < m.cols; c++ {
			sum += m.At(r, c) * v[c]
		}
		out[r] = sum
	}
	return out
}

// MultiplyAdd fuses "M*v1 + d*v2", the `m.multiply_add(v1, d, v2)`
// rewrite target.
func (m Matrix) MultiplyAdd(v1 DVector, d float64, v2 DVector) DVector {
	return m.Multiply(v1).MultiplyAdd(d, v2)
}

// MultiplyAddSub fuses "M*v plus or minus w", the
// `M.multiply_add_sub(v, w)` rewrite target; w already carries the
// negation applied by the parser when the source operator was "-".
func (m Matrix) MultiplyAddSub(v, w DVector) DVector {
	return m.Multiply(v).Add(w)
}

// Transpose returns Mᵀ.
func (m Matrix) Transpose() Matrix {
	out := NewMatrix(m.cols, m.rows, make([]float64, m.rows*m.cols))
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.data[c*m.rows+r] = m.At(r, c)
		}
	}
	return out
}

func (m Matrix) MultiplyMatrix(n Matrix) Matrix {
	out := NewMatrix(m.rows, n.cols, make([]float64, m.rows*n.cols))
	for r := 0; r < m.rows; r++ {
		for c := 0; c < n.cols; c++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.At(r, k) * n.At(k, c)
			}
			out.data[r*n.cols+c] = sum
		}
	}
	return out
}

// MultiplyTranspose fuses "M * Nᵀ", the `m.multiply_transpose(n)`
// rewrite target.
func (m Matrix) MultiplyTranspose(n Matrix) Matrix {
	return m.MultiplyMatrix(n.Transpose())
}

// TransposeMultiply fuses "Mᵀ * v", the `M.transpose_multiply(v)`
// rewrite target.
func (m Matrix) TransposeMultiply(v DVector) DVector {
	return m.Transpose().Multiply(v)
}

// Square fuses "M * Mᵀ", the `M.square()` rewrite target.
func (m Matrix) Square() Matrix {
	return m.MultiplyMatrix(m.Transpose())
}
