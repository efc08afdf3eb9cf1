package domain

import (
	"strings"
	"testing"
)

func TestValidateTiming_Clean(t *testing.T) {
	tbl := NewTable([]Trial{
		{ParticipantID: "S01", StimulusOnset: fptr(10), StimulusOffset: fptr(12)},
		{ParticipantID: "S01", StimulusOnset: fptr(20), StimulusOffset: fptr(22.5)},
	})

	v := ValidateTiming(tbl)
	if len(v.TimingErrors) != 0 || len(v.MissingData) != 0 || len(v.Outliers) != 0 {
		t.Errorf("clean table should have no findings: %+v", v)
	}
	if !v.HasDurations {
		t.Error("expected duration statistics")
	}
	if v.DurationMin != 2 || v.DurationMax != 2.5 {
		t.Errorf("duration range = [%v, %v], want [2, 2.5]", v.DurationMin, v.DurationMax)
	}
}

func TestValidateTiming_MissingData(t *testing.T) {
	tbl := NewTable([]Trial{
		{ParticipantID: "S01", StimulusOffset: fptr(12)},
		{ParticipantID: "S01", StimulusOnset: fptr(20)},
		{ParticipantID: "S01"},
	})

	v := ValidateTiming(tbl)
	if len(v.MissingData) != 2 {
		t.Fatalf("MissingData = %v, want 2 findings", v.MissingData)
	}
	if !strings.Contains(v.MissingData[0], "2 trials with missing stimulus onset") {
		t.Errorf("unexpected finding: %q", v.MissingData[0])
	}
	if v.HasDurations {
		t.Error("no complete trials, expected no duration statistics")
	}
}

func TestValidateTiming_NegativeDuration(t *testing.T) {
	tbl := NewTable([]Trial{
		{ParticipantID: "S01", StimulusOnset: fptr(12), StimulusOffset: fptr(10)},
		{ParticipantID: "S01", StimulusOnset: fptr(20), StimulusOffset: fptr(22)},
	})

	v := ValidateTiming(tbl)
	if len(v.TimingErrors) != 1 {
		t.Fatalf("TimingErrors = %v, want 1 finding", v.TimingErrors)
	}
	if !strings.Contains(v.TimingErrors[0], "negative durations") {
		t.Errorf("unexpected finding: %q", v.TimingErrors[0])
	}
}

func TestValidateTiming_Outliers(t *testing.T) {
	// Many two-second trials plus one extreme value beyond three sigma.
	var trials []Trial
	for i := 0; i < 20; i++ {
		onset := float64(i * 10)
		d := 2.0 + float64(i%3)*0.01
		trials = append(trials, Trial{
			ParticipantID:  "S01",
			StimulusOnset:  &onset,
			StimulusOffset: fptr(onset + d),
		})
	}
	trials = append(trials, Trial{
		ParticipantID:  "S01",
		StimulusOnset:  fptr(500),
		StimulusOffset: fptr(560),
	})

	v := ValidateTiming(NewTable(trials))
	if len(v.Outliers) != 1 {
		t.Fatalf("Outliers = %v, want 1 finding", v.Outliers)
	}
	if !strings.Contains(v.Outliers[0], "1 trials with duration outliers") {
		t.Errorf("unexpected finding: %q", v.Outliers[0])
	}
}

func TestValidateTiming_Empty(t *testing.T) {
	v := ValidateTiming(NewTable(nil))
	if v.TotalTrials != 0 || v.HasDurations {
		t.Errorf("unexpected validation for empty table: %+v", v)
	}
}
