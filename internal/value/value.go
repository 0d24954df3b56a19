// Package value implements AUSTRA's compile-time constant values: the
// small set of payloads the emitter can fold at parse time (§4.4,
// "Constants fold"), modeled as a tagged Kind plus typed fields instead
// of interface{} so folding never needs a type assertion.
package value

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// Kind identifies which field of a Value is populated.
type Kind int

const (
	Undefined Kind = iota
	IntKind
	RealKind
	ComplexKind
	BoolKind
	StringKind
	DateKind
)

// Date is a calendar date with no time component.
type Date struct {
	Year, Month, Day int
}

// Value is a constant-folded compile-time value. Only the field named
// by Kind is meaningful.
type Value struct {
	Kind    Kind
	Int     int64
	Real    float64
	Complex complex128
	Bool    bool
	Str     string
	DateVal Date
}

func Int(v int64) Value          { return Value{Kind: IntKind, Int: v} }
func Real(v float64) Value       { return Value{Kind: RealKind, Real: v} }
func Complex(v complex128) Value { return Value{Kind: ComplexKind, Complex: v} }
func Bool(v bool) Value          { return Value{Kind: BoolKind, Bool: v} }
func Str(v string) Value         { return Value{Kind: StringKind, Str: v} }
func DateOf(d Date) Value        { return Value{Kind: DateKind, DateVal: d} }

func (v Value) String() string {
	switch v.Kind {
	case IntKind:
		return fmt.Sprintf("%d", v.Int)
	case RealKind:
		return fmt.Sprintf("%g", v.Real)
	case ComplexKind:
		return fmt.Sprintf("%g", v.Complex)
	case BoolKind:
		return fmt.Sprintf("%t", v.Bool)
	case StringKind:
		return v.Str
	case DateKind:
		return fmt.Sprintf("%04d-%02d-%02d", v.DateVal.Year, v.DateVal.Month, v.DateVal.Day)
	default:
		return "<undefined>"
	}
}

// AsReal widens an Int or Real value to float64 via spf13/cast (the
// same ladder the rest of the codebase climbs one rung at a time); it
// panics on any other kind, since callers must check Kind (or use
// Foldable) first.
func (v Value) AsReal() float64 {
	switch v.Kind {
	case IntKind:
		return cast.ToFloat64(v.Int)
	case RealKind:
		return v.Real
	default:
		panic("value: AsReal on non-numeric Value")
	}
}

// Foldable reports whether both operands are constants §4.4 allows the
// emitter to pre-compute: int or double literals.
func Foldable(a, b Value) bool {
	return (a.Kind == IntKind || a.Kind == RealKind) && (b.Kind == IntKind || b.Kind == RealKind)
}

// FoldArith applies op (one of "+", "-", "*", "/", "%") to two constant
// numeric values, widening to double if either side is not an int,
// matching the int->double->complex order for constant operands.
func FoldArith(op string, a, b Value) (Value, error) {
	if !Foldable(a, b) {
		return Value{}, fmt.Errorf("value: operands not foldable")
	}

	if a.Kind == IntKind && b.Kind == IntKind {
		switch op {
		case "+":
			return Int(a.Int + b.Int), nil
		case "-":
			return Int(a.Int - b.Int), nil
		case "*":
			return Int(a.Int * b.Int), nil
		case "/":
			if b.Int == 0 {
				return Value{}, fmt.Errorf("value: integer division by zero")
			}
			// Division widens to double even for two ints, matching the
			// surface language's "/" (there is no separate integer-divide
			// operator in AUSTRA).
			return Real(float64(a.Int) / float64(b.Int)), nil
		case "%":
			if b.Int == 0 {
				return Value{}, fmt.Errorf("value: modulo by zero")
			}
			return Int(a.Int % b.Int), nil
		}
	}

	x, y := a.AsReal(), b.AsReal()
	switch op {
	case "+":
		return Real(x + y), nil
	case "-":
		return Real(x - y), nil
	case "*":
		return Real(x * y), nil
	case "/":
		return Real(x / y), nil
	case "%":
		return Real(math.Mod(x, y)), nil
	default:
		return Value{}, fmt.Errorf("value: unknown operator %q", op)
	}
}

// Widen converts an Int or Real value up to complex128, the final rung
// of the int -> double -> complex ladder.
func Widen(v Value) complex128 {
	switch v.Kind {
	case ComplexKind:
		return v.Complex
	case IntKind:
		return complex(float64(v.Int), 0)
	case RealKind:
		return complex(v.Real, 0)
	default:
		panic("value: Widen on non-numeric Value")
	}
}
