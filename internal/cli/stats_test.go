package cli

import (
	"testing"

	"github.com/hernandezlab/toolrep/internal/domain"
	"github.com/hernandezlab/toolrep/internal/stats"
)

func statsTable(t *testing.T) *domain.Table {
	t.Helper()
	var trials []domain.Trial
	for i, pid := range []string{"S01", "S02"} {
		base := float64(i) * 100
		toolOff := float64(1 + i)
		for j := 0; j < 4; j++ {
			off := float64(j) * 2
			for _, tr := range []struct {
				condition, stim string
				onset           float64
			}{
				{domain.ConditionPassiveViewing, "tool", base + 10 + off*toolOff},
				{domain.ConditionPassiveViewing, "Shape", base + 12 + off},
				{domain.ConditionActiveGrasp, "tool", base + 30 + off*toolOff},
				{domain.ConditionActiveGrasp, "SCRshape", base + 33 + off},
				{domain.ConditionClench, "SCRtool", base + 50 + off*toolOff},
			} {
				o := tr.onset
				trials = append(trials, domain.Trial{
					ParticipantID: pid,
					Condition:     tr.condition,
					StimulusType:  tr.stim,
					StimulusOnset: &o,
				})
			}
		}
	}
	return domain.NewTable(trials)
}

func TestRunAnalysis(t *testing.T) {
	analyzer := stats.NewAnalyzer(statsTable(t), nil)

	for _, name := range []string{
		"tools-vs-shapes",
		"task-conditions",
		"motor",
		"functional-structural",
	} {
		result, err := runAnalysis(analyzer, name, "", "")
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if result == nil {
			t.Errorf("%s: nil result", name)
		}
	}
}

func TestRunAnalysis_Unknown(t *testing.T) {
	analyzer := stats.NewAnalyzer(statsTable(t), nil)
	if _, err := runAnalysis(analyzer, "tools", "", ""); err == nil {
		t.Error("expected error for unrecognized analysis name")
	}
}
