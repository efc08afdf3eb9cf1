package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// AnovaResult holds a one-way ANOVA F statistic and its p-value.
type AnovaResult struct {
	F           float64 `json:"f_statistic"`
	P           float64 `json:"p_value"`
	DFBetween   float64 `json:"df_between"`
	DFWithin    float64 `json:"df_within"`
	Significant bool    `json:"significant"`
	Groups      int     `json:"groups"`
}

// OneWayANOVA tests whether the group means differ. At least two non-empty
// groups with a total of more observations than groups are required.
func OneWayANOVA(groups [][]float64) (AnovaResult, error) {
	k := 0
	n := 0
	var grand float64
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		k++
		n += len(g)
		for _, x := range g {
			grand += x
		}
	}
	if k < 2 || n <= k {
		return AnovaResult{}, ErrInsufficientData
	}
	grand /= float64(n)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		m := stat.Mean(g, nil)
		ssBetween += float64(len(g)) * (m - grand) * (m - grand)
		for _, x := range g {
			ssWithin += (x - m) * (x - m)
		}
	}

	dfBetween := float64(k - 1)
	dfWithin := float64(n - k)
	if ssWithin == 0 {
		return AnovaResult{}, ErrInsufficientData
	}

	f := (ssBetween / dfBetween) / (ssWithin / dfWithin)
	p := distuv.F{D1: dfBetween, D2: dfWithin}.Survival(f)
	return AnovaResult{
		F:           f,
		P:           p,
		DFBetween:   dfBetween,
		DFWithin:    dfWithin,
		Significant: p < SignificanceLevel,
		Groups:      k,
	}, nil
}
