package stats

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(t *testing.T, got, want, tol float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", label, got, want, tol)
	}
}

func TestDescribe(t *testing.T) {
	d := Describe([]float64{1, 2, 3, 4})

	if d.N != 4 {
		t.Errorf("N = %d, want 4", d.N)
	}
	almostEqual(t, d.Mean, 2.5, 1e-9, "Mean")
	almostEqual(t, d.Std, math.Sqrt(5.0/3.0), 1e-9, "Std")
	almostEqual(t, d.Min, 1, 1e-9, "Min")
	almostEqual(t, d.Max, 4, 1e-9, "Max")
	almostEqual(t, d.Q25, 1, 1e-9, "Q25")
	almostEqual(t, d.Median, 2, 1e-9, "Median")
	almostEqual(t, d.Q75, 3, 1e-9, "Q75")
}

func TestDescribe_Empty(t *testing.T) {
	d := Describe(nil)
	if d.N != 0 || d.Mean != 0 || d.Std != 0 {
		t.Errorf("empty sample should yield zero summary, got %+v", d)
	}
}

func TestDescribe_DoesNotMutateInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Describe(xs)
	if xs[0] != 3 || xs[1] != 1 || xs[2] != 2 {
		t.Errorf("input slice was reordered: %v", xs)
	}
}

func TestTTestInd(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}

	res, err := TTestInd(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, res.T, -1.0, 1e-9, "T")
	almostEqual(t, res.DF, 8, 1e-9, "DF")
	almostEqual(t, res.P, 0.3466, 1e-3, "P")
	if res.Significant {
		t.Error("p=0.35 should not be significant")
	}
	if res.N1 != 5 || res.N2 != 5 {
		t.Errorf("N1, N2 = %d, %d, want 5, 5", res.N1, res.N2)
	}
}

func TestTTestInd_Significant(t *testing.T) {
	a := []float64{1.0, 1.1, 0.9, 1.05, 0.95}
	b := []float64{2.0, 2.1, 1.9, 2.05, 1.95}

	res, err := TTestInd(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Significant {
		t.Errorf("well separated samples should be significant, p=%v", res.P)
	}
	if res.T >= 0 {
		t.Errorf("T = %v, want negative (first mean smaller)", res.T)
	}
}

func TestTTestInd_InsufficientData(t *testing.T) {
	_, err := TTestInd([]float64{1}, []float64{2, 3})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestTTestInd_ZeroVariance(t *testing.T) {
	_, err := TTestInd([]float64{2, 2, 2}, []float64{2, 2, 2})
	if err == nil {
		t.Error("expected error for zero variance samples")
	}
}

func TestTTestPaired(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{2, 4, 6}

	res, err := TTestPaired(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, res.T, -2*math.Sqrt(3), 1e-9, "T")
	almostEqual(t, res.DF, 2, 1e-9, "DF")
	almostEqual(t, res.P, 0.0742, 1e-3, "P")
}

func TestTTestPaired_LengthMismatch(t *testing.T) {
	if _, err := TTestPaired([]float64{1, 2}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for unequal sample lengths")
	}
}

func TestOneWayANOVA(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3},
		{2, 3, 4},
		{3, 4, 5},
	}

	res, err := OneWayANOVA(groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, res.F, 3.0, 1e-9, "F")
	almostEqual(t, res.DFBetween, 2, 1e-9, "DFBetween")
	almostEqual(t, res.DFWithin, 6, 1e-9, "DFWithin")
	if res.Groups != 3 {
		t.Errorf("Groups = %d, want 3", res.Groups)
	}
	if res.P <= 0 || res.P >= 1 {
		t.Errorf("P = %v, want in (0, 1)", res.P)
	}
}

func TestOneWayANOVA_SkipsEmptyGroups(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3},
		{},
		{3, 4, 5},
	}
	res, err := OneWayANOVA(groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Groups != 2 {
		t.Errorf("Groups = %d, want 2", res.Groups)
	}
}

func TestOneWayANOVA_InsufficientGroups(t *testing.T) {
	if _, err := OneWayANOVA([][]float64{{1, 2, 3}}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestCohensD(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}

	es, err := CohensD(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	almostEqual(t, es.CohensD, -1/math.Sqrt(2.5), 1e-9, "CohensD")
	if es.Interpretation != "medium" {
		t.Errorf("Interpretation = %q, want medium", es.Interpretation)
	}
}

func TestInterpretCohensD(t *testing.T) {
	tests := []struct {
		d    float64
		want string
	}{
		{0.0, "negligible"},
		{0.19, "negligible"},
		{-0.19, "negligible"},
		{0.2, "small"},
		{0.49, "small"},
		{0.5, "medium"},
		{-0.6, "medium"},
		{0.8, "large"},
		{-2.5, "large"},
	}
	for _, tt := range tests {
		if got := InterpretCohensD(tt.d); got != tt.want {
			t.Errorf("InterpretCohensD(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
