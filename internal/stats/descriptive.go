// Package stats implements the descriptive and inferential statistics used
// to compare experimental conditions: t-tests, one-way ANOVA and Cohen's d
// effect sizes, with p-values from gonum's distributions.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SignificanceLevel is the alpha threshold applied to every test.
const SignificanceLevel = 0.05

// Descriptive summarizes one sample.
type Descriptive struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Describe computes sample summary statistics. An empty sample yields a
// zero-valued summary.
func Describe(xs []float64) Descriptive {
	d := Descriptive{N: len(xs)}
	if len(xs) == 0 {
		return d
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	d.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		d.Std = math.Sqrt(stat.Variance(sorted, nil))
	}
	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	d.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return d
}
