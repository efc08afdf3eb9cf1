package parser

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseTiming(t *testing.T) {
	path := writeFixture(t, "S01_PV_tool.txt", "0.0 32.0:16 64.0 96.0:16\n")

	tf, err := ParseTiming(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tf.ParticipantID != "S01" {
		t.Errorf("ParticipantID = %q, want S01", tf.ParticipantID)
	}
	if tf.ConditionCode != "PV" || tf.StimulusType != "tool" {
		t.Errorf("code/type = %q/%q, want PV/tool", tf.ConditionCode, tf.StimulusType)
	}
	if want := []float64{0, 32, 64, 96}; !reflect.DeepEqual(tf.Onsets, want) {
		t.Errorf("Onsets = %v, want %v", tf.Onsets, want)
	}
	if tf.Duration == nil || *tf.Duration != 96 {
		t.Errorf("Duration = %v, want 96", tf.Duration)
	}
}

func TestParseTiming_ScreenOptimizedName(t *testing.T) {
	path := writeFixture(t, "S01_IG_SCRtool.txt", "10.0 20.0\n")

	tf, err := ParseTiming(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tf.ConditionCode != "IG" || tf.StimulusType != "SCRtool" {
		t.Errorf("code/type = %q/%q, want IG/SCRtool", tf.ConditionCode, tf.StimulusType)
	}
}

func TestParseTiming_StarMeansAbsent(t *testing.T) {
	path := writeFixture(t, "S01_PV_Shape.txt", "*\n")

	tf, err := ParseTiming(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tf.Onsets) != 0 {
		t.Errorf("Onsets = %v, want empty", tf.Onsets)
	}
	if tf.Duration != nil {
		t.Errorf("Duration = %v, want nil", *tf.Duration)
	}
}

func TestParseTiming_SkipsBadTokens(t *testing.T) {
	path := writeFixture(t, "S02_PV_tool.txt", "1.5 garbage 3.5\n")

	tf, err := ParseTiming(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []float64{1.5, 3.5}; !reflect.DeepEqual(tf.Onsets, want) {
		t.Errorf("Onsets = %v, want %v", tf.Onsets, want)
	}
	if tf.Duration == nil || *tf.Duration != 2.0 {
		t.Errorf("Duration = %v, want 2.0", tf.Duration)
	}
}

func TestParseTiming_UnrecognizedName(t *testing.T) {
	path := writeFixture(t, "S01_clench.txt", "0.0 30.0\n")

	tf, err := ParseTiming(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Single-section names carry no condition/stimulus split.
	if tf.ConditionCode != "unknown" || tf.StimulusType != "unknown" {
		t.Errorf("code/type = %q/%q, want unknown/unknown", tf.ConditionCode, tf.StimulusType)
	}
	if len(tf.Onsets) != 2 {
		t.Errorf("Onsets = %v, want 2 values", tf.Onsets)
	}
}

func TestParseTiming_MissingFile(t *testing.T) {
	if _, err := ParseTiming(filepath.Join(t.TempDir(), "S01_PV_tool.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
