package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// EffectSize holds a Cohen's d value with its conventional interpretation.
type EffectSize struct {
	CohensD        float64 `json:"cohens_d"`
	Interpretation string  `json:"interpretation"`
}

// CohensD computes Cohen's d between two samples using the pooled standard
// deviation.
func CohensD(a, b []float64) (EffectSize, error) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return EffectSize{}, ErrInsufficientData
	}

	v1, v2 := stat.Variance(a, nil), stat.Variance(b, nil)
	pooled := math.Sqrt((float64(n1-1)*v1 + float64(n2-1)*v2) / float64(n1+n2-2))
	if pooled == 0 {
		return EffectSize{}, ErrInsufficientData
	}

	d := (stat.Mean(a, nil) - stat.Mean(b, nil)) / pooled
	return EffectSize{CohensD: d, Interpretation: InterpretCohensD(d)}, nil
}

// InterpretCohensD maps |d| onto the conventional bands.
func InterpretCohensD(d float64) string {
	switch abs := math.Abs(d); {
	case abs < 0.2:
		return "negligible"
	case abs < 0.5:
		return "small"
	case abs < 0.8:
		return "medium"
	default:
		return "large"
	}
}
