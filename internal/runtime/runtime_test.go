package runtime

import "testing"

func TestDVectorMultiplyAddMatchesNaive(t *testing.T) {
	v := NewDVector(1, 2, 3)
	w := NewDVector(10, 20, 30)
	got := v.MultiplyAdd(2, w)
	want := NewDVector(12, 24, 36)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MultiplyAdd = %v, want %v", got, want)
		}
	}
}

func TestCombine2MatchesNaive(t *testing.T) {
	v1 := NewDVector(1, 2)
	v2 := NewDVector(3, 4)
	got := Combine2(2, -1, v1, v2)
	want := NewDVector(-1, 0)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Combine2 = %v, want %v", got, want)
		}
	}
}

func TestDVectorSquaredIsElementwise(t *testing.T) {
	got := NewDVector(2, 3).Squared()
	want := NewDVector(4, 9)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Squared = %v, want %v", got, want)
		}
	}
}

func TestMatrixTransposeMultiplyRoundTrips(t *testing.T) {
	m := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	v := NewDVector(1, 1)
	got := m.TransposeMultiply(v)
	want := NewDVector(4, 6)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TransposeMultiply = %v, want %v", got, want)
		}
	}
}

func TestMatrixSquareIsSymmetric(t *testing.T) {
	m := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	sq := m.Square()
	if sq.At(0, 1) != sq.At(1, 0) {
		t.Errorf("Square() should be symmetric, got %v", sq)
	}
}

func TestAccAccumulates(t *testing.T) {
	a := NewAcc()
	a = a.Add(1)
	a = a.Add(2)
	a = a.Add(3)
	if a.Value() != 6 {
		t.Errorf("Acc.Value() = %v, want 6", a.Value())
	}
}

func TestSeriesLastOnEmptyIsZero(t *testing.T) {
	s := NewSeries(nil)
	if s.Last() != 0 {
		t.Errorf("Last() on empty series = %v, want 0", s.Last())
	}
}

func TestScalarArgAcceptsMixedNumericTypes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"int", 4, 4},
		{"float32", float32(1.5), 1.5},
		{"numeric string", "2.25", 2.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScalarArg(tt.in)
			if err != nil {
				t.Fatalf("ScalarArg(%v): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ScalarArg(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScalarArgRejectsNonNumeric(t *testing.T) {
	if _, err := ScalarArg("nope"); err == nil {
		t.Error("expected an error converting a non-numeric string")
	}
}
