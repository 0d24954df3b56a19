package runtime

// Series is a named time series over a value vector, the minimal
// backing for the Series.length/Series.last bindings.
type Series struct {
	Name   string
	Values DVector
}

// NewSeries is the `Series(values)` constructor binding.
func NewSeries(values DVector) Series {
	return Series{Values: values}
}

// SetName is the optional def-registration side marker the
// WithDefAdornment option consults (spec.md §9 Open Question).
func (s *Series) SetName(name string) { s.Name = name }

func (s Series) Length() int { return len(s.Values) }

func (s Series) Last() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// Acc is a running accumulator, the Acc ctor/add/value bindings.
type Acc struct {
	sum float64
}

// NewAcc is the `Acc()` constructor binding, seeded at zero per its
// {sentinel: zero} formal parameter.
func NewAcc() Acc { return Acc{} }

// Add folds in one more observation and returns the updated
// accumulator (Acc.add is an instance method returning Acc).
func (a Acc) Add(x float64) Acc {
	return Acc{sum: a.sum + x}
}

func (a Acc) Value() float64 { return a.sum }

// Polynomial is named/signature-only per the expansion: a minimal
// coefficient-vector representation sufficient to exist as a runtime
// type other components can reference, without a solver.
type Polynomial struct {
	Coefficients DVector
}

func (p Polynomial) Eval(x float64) float64 {
	var result float64
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		result = result*x + p.Coefficients[i]
	}
	return result
}
