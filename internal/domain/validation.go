package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// TimingValidation collects cross-source timing consistency findings for a
// trial table. All findings are advisory: parsing is best-effort and bad
// trials stay in the table.
type TimingValidation struct {
	TotalTrials   int      `json:"total_trials"`
	TimingErrors  []string `json:"timing_errors"`
	MissingData   []string `json:"missing_data"`
	Outliers      []string `json:"outliers"`
	DurationMean  float64  `json:"duration_mean,omitempty"`
	DurationStd   float64  `json:"duration_std,omitempty"`
	DurationMin   float64  `json:"duration_min,omitempty"`
	DurationMax   float64  `json:"duration_max,omitempty"`
	HasDurations  bool     `json:"has_durations"`
}

// ValidateTiming checks for missing onsets/offsets, negative durations and
// duration outliers beyond three standard deviations.
func ValidateTiming(t *Table) *TimingValidation {
	v := &TimingValidation{TotalTrials: t.Len()}
	if t.Len() == 0 {
		return v
	}

	var missingOnset, missingOffset int
	for i := range t.Trials {
		if t.Trials[i].StimulusOnset == nil {
			missingOnset++
		}
		if t.Trials[i].StimulusOffset == nil {
			missingOffset++
		}
	}
	if missingOnset > 0 {
		v.MissingData = append(v.MissingData, fmt.Sprintf("%d trials with missing stimulus onset", missingOnset))
	}
	if missingOffset > 0 {
		v.MissingData = append(v.MissingData, fmt.Sprintf("%d trials with missing stimulus offset", missingOffset))
	}

	durations := t.Durations()
	if len(durations) == 0 {
		return v
	}
	v.HasDurations = true
	v.DurationMean = stat.Mean(durations, nil)
	v.DurationStd = math.Sqrt(stat.Variance(durations, nil))
	v.DurationMin, v.DurationMax = durations[0], durations[0]

	var negative, outliers int
	for _, d := range durations {
		if d < v.DurationMin {
			v.DurationMin = d
		}
		if d > v.DurationMax {
			v.DurationMax = d
		}
		if d < 0 {
			negative++
		}
		if math.Abs(d-v.DurationMean) > 3*v.DurationStd {
			outliers++
		}
	}
	if negative > 0 {
		v.TimingErrors = append(v.TimingErrors, fmt.Sprintf("%d trials with negative durations", negative))
	}
	if outliers > 0 {
		v.Outliers = append(v.Outliers, fmt.Sprintf("%d trials with duration outliers", outliers))
	}
	return v
}
