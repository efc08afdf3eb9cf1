// Package report builds summaries, result tables and the exported
// artifacts: text reports, CSV/XLSX tables, JSON documents and the HTML
// report.
package report

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/hernandezlab/toolrep/internal/domain"
	"github.com/hernandezlab/toolrep/internal/stats"
)

// CategoryStat summarizes one slice of the trial table.
type CategoryStat struct {
	NTrials      int     `json:"n_trials"`
	Percentage   float64 `json:"percentage"`
	Participants int     `json:"participants"`
}

// ParticipantStats aggregates per-participant trial counts and timing.
type ParticipantStats struct {
	MeanTrials float64 `json:"mean_trials_per_participant"`
	StdTrials  float64 `json:"std_trials_per_participant"`
	MinTrials  int     `json:"min_trials"`
	MaxTrials  int     `json:"max_trials"`
	MeanTiming float64 `json:"mean_timing_per_participant,omitempty"`
	StdTiming  float64 `json:"std_timing_per_participant,omitempty"`
}

// Summary is the descriptive overview of a trial table.
type Summary struct {
	DataOverview     stats.DataSummary       `json:"data_overview"`
	TimingStats      *stats.Descriptive      `json:"timing_statistics,omitempty"`
	ConditionStats   map[string]CategoryStat `json:"condition_statistics"`
	StimulusStats    map[string]CategoryStat `json:"stimulus_statistics"`
	ParticipantStats *ParticipantStats       `json:"participant_statistics,omitempty"`
}

// BuildSummary computes the descriptive overview for a trial table.
func BuildSummary(t *domain.Table) *Summary {
	s := &Summary{
		DataOverview: stats.DataSummary{
			TotalTrials:   t.Len(),
			Participants:  len(t.Participants()),
			Conditions:    t.Conditions(),
			StimulusTypes: t.StimulusTypes(),
		},
		ConditionStats: map[string]CategoryStat{},
		StimulusStats:  map[string]CategoryStat{},
	}
	if t.Len() == 0 {
		return s
	}

	if onsets := t.Onsets(); len(onsets) > 0 {
		d := stats.Describe(onsets)
		s.TimingStats = &d
	}

	for _, c := range t.Conditions() {
		s.ConditionStats[c] = categoryStat(t, t.ByCondition(c))
	}
	for _, st := range t.StimulusTypes() {
		s.StimulusStats[st] = categoryStat(t, t.ByStimulusType(st))
	}
	s.ParticipantStats = participantStats(t)
	return s
}

func categoryStat(all, part *domain.Table) CategoryStat {
	return CategoryStat{
		NTrials:      part.Len(),
		Percentage:   float64(part.Len()) / float64(all.Len()) * 100,
		Participants: len(part.Participants()),
	}
}

func participantStats(t *domain.Table) *ParticipantStats {
	groups := t.GroupByParticipant()
	if len(groups) == 0 {
		return nil
	}

	counts := make([]float64, 0, len(groups))
	var timingMeans, timingStds []float64
	minTrials, maxTrials := math.MaxInt, 0

	for _, g := range groups {
		n := g.Len()
		counts = append(counts, float64(n))
		if n < minTrials {
			minTrials = n
		}
		if n > maxTrials {
			maxTrials = n
		}
		if onsets := g.Onsets(); len(onsets) > 0 {
			timingMeans = append(timingMeans, stat.Mean(onsets, nil))
			if len(onsets) > 1 {
				timingStds = append(timingStds, math.Sqrt(stat.Variance(onsets, nil)))
			}
		}
	}

	ps := &ParticipantStats{
		MeanTrials: stat.Mean(counts, nil),
		MinTrials:  minTrials,
		MaxTrials:  maxTrials,
	}
	if len(counts) > 1 {
		ps.StdTrials = math.Sqrt(stat.Variance(counts, nil))
	}
	if len(timingMeans) > 0 {
		ps.MeanTiming = stat.Mean(timingMeans, nil)
	}
	if len(timingStds) > 0 {
		ps.StdTiming = stat.Mean(timingStds, nil)
	}
	return ps
}
