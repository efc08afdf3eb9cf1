package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when a test has too few observations.
var ErrInsufficientData = errors.New("insufficient data for test")

// TTestResult holds a t statistic with its two-sided p-value.
type TTestResult struct {
	T           float64 `json:"t_statistic"`
	P           float64 `json:"p_value"`
	DF          float64 `json:"df"`
	Significant bool    `json:"significant"`
	N1          int     `json:"n1"`
	N2          int     `json:"n2"`
}

// TTestInd performs a two-sample pooled-variance t-test (equal variances
// assumed, matching the classic independent-samples test).
func TTestInd(a, b []float64) (TTestResult, error) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return TTestResult{}, ErrInsufficientData
	}

	m1, m2 := stat.Mean(a, nil), stat.Mean(b, nil)
	v1, v2 := stat.Variance(a, nil), stat.Variance(b, nil)

	df := float64(n1 + n2 - 2)
	pooled := (float64(n1-1)*v1 + float64(n2-1)*v2) / df
	se := math.Sqrt(pooled * (1/float64(n1) + 1/float64(n2)))
	if se == 0 {
		return TTestResult{}, errors.New("zero variance in both samples")
	}

	t := (m1 - m2) / se
	p := twoSidedStudentP(t, df)
	return TTestResult{
		T:           t,
		P:           p,
		DF:          df,
		Significant: p < SignificanceLevel,
		N1:          n1,
		N2:          n2,
	}, nil
}

// TTestPaired performs a paired t-test on two equal-length samples.
func TTestPaired(a, b []float64) (TTestResult, error) {
	if len(a) != len(b) {
		return TTestResult{}, errors.New("paired samples must have equal length")
	}
	n := len(a)
	if n < 2 {
		return TTestResult{}, ErrInsufficientData
	}

	diffs := make([]float64, n)
	for i := range a {
		diffs[i] = a[i] - b[i]
	}

	mean := stat.Mean(diffs, nil)
	sd := math.Sqrt(stat.Variance(diffs, nil))
	if sd == 0 {
		return TTestResult{}, errors.New("zero variance in paired differences")
	}

	df := float64(n - 1)
	t := mean / (sd / math.Sqrt(float64(n)))
	p := twoSidedStudentP(t, df)
	return TTestResult{
		T:           t,
		P:           p,
		DF:          df,
		Significant: p < SignificanceLevel,
		N1:          n,
		N2:          n,
	}, nil
}

func twoSidedStudentP(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}
