package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hernandezlab/toolrep/internal/domain"
)

// writeFixture writes content to name under a temp dir and returns the path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

const sampleLog = "" +
	"2.5031\tINFO\tbefore scan, ignored\n" +
	"3.0000\tDATA\tNew trial (rep=9, index=9): OrderedDict([('imagefile', 'ignored.png'), ('type', 'tool')])\n" +
	"10.1234\tDATA\tKeypress: t start of scan\n" +
	"12.5000\tDATA\tNew trial (rep=0, index=0): OrderedDict([('imagefile', 'hammer.png'), ('type', 'tool')])\n" +
	"13.0000\tEXP\timage1: autoDraw = True\n" +
	"15.2500\tDATA\tNew trial (rep=1, index=3): OrderedDict([('imagefile', 'circle.png'), ('type', 'Shape')])\n" +
	"16.0000\tEXP\timage2: autoDraw = True\n" +
	"17.5\tDATA\tKeypress: space\n" +
	"not-a-timestamp\tEXP\tmalformed line skipped\n" +
	"20.0000\tEXP\twindow1: mouseVisible = True\n"

func TestParseLog(t *testing.T) {
	path := writeFixture(t, "S03_passive_viewing.log", sampleLog)

	lf, err := ParseLog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lf.ParticipantID != "S03" {
		t.Errorf("ParticipantID = %q, want S03", lf.ParticipantID)
	}
	if lf.Condition != domain.ConditionPassiveViewing {
		t.Errorf("Condition = %q, want passive_viewing", lf.Condition)
	}
	if lf.ScanStart == nil || *lf.ScanStart != 10.1234 {
		t.Fatalf("ScanStart = %v, want 10.1234", lf.ScanStart)
	}
	if lf.ScanEnd == nil || *lf.ScanEnd != 20.0 {
		t.Fatalf("ScanEnd = %v, want 20.0", lf.ScanEnd)
	}

	// The pre-scan trial must be ignored.
	if len(lf.Trials) != 2 {
		t.Fatalf("got %d trials, want 2", len(lf.Trials))
	}
	first := lf.Trials[0]
	if first.Timestamp != 12.5 || first.Rep != 0 || first.Index != 0 {
		t.Errorf("first trial = %+v", first)
	}
	if first.ImageFile != "hammer.png" || first.StimulusType != "tool" {
		t.Errorf("first trial payload = %q / %q", first.ImageFile, first.StimulusType)
	}
	second := lf.Trials[1]
	if second.StimulusType != "Shape" || second.Rep != 1 || second.Index != 3 {
		t.Errorf("second trial = %+v", second)
	}

	if len(lf.Stimuli) != 2 {
		t.Fatalf("got %d stimulus events, want 2", len(lf.Stimuli))
	}
	if lf.Stimuli[0].Stimulus != "image1" || lf.Stimuli[0].Onset != 13.0 {
		t.Errorf("first stimulus = %+v", lf.Stimuli[0])
	}

	if len(lf.Keypresses) != 2 {
		t.Fatalf("got %d keypresses, want 2", len(lf.Keypresses))
	}
	if lf.Keypresses[1].Key != "space" {
		t.Errorf("second keypress = %+v", lf.Keypresses[1])
	}
}

func TestParseLog_MissingFile(t *testing.T) {
	if _, err := ParseLog(filepath.Join(t.TempDir(), "missing.log")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParticipantFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"S03_passive_viewing.log", "S03"},
		{"S12_clench.log", "S12"},
		{"S1_test.log", "S01"},
		{"7_imagined_grasp.log", "S07"},
		{"Annika_1_active_grasp.log", "S01"},
		{"notes.txt", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := ParticipantFromFilename(tt.filename); got != tt.want {
				t.Errorf("ParticipantFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestConditionFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"S03_passive_viewing.log", domain.ConditionPassiveViewing},
		{"S03_PV_run1.log", domain.ConditionPassiveViewing},
		{"S03_active_grasp.log", domain.ConditionActiveGrasp},
		{"S03_grasp_task.log", domain.ConditionActiveGrasp},
		{"S03_clench.log", domain.ConditionClench},
		{"S03_imagined.log", domain.ConditionImaginedGrasp},
		{"S03_rest.log", domain.ConditionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := ConditionFromFilename(tt.filename); got != tt.want {
				t.Errorf("ConditionFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
