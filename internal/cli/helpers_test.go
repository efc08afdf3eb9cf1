package cli

import (
	"testing"

	"github.com/hernandezlab/toolrep/internal/infrastructure/config"
)

func testApp() *AppContext {
	return &AppContext{
		Config: &config.Pipeline{
			Paths: config.Paths{DataRoot: "data", OutputDir: "data/processed"},
		},
	}
}

func TestDataRoot(t *testing.T) {
	app := testApp()
	if got := dataRoot(app, ""); got != "data" {
		t.Errorf("dataRoot default = %q, want data", got)
	}
	if got := dataRoot(app, "/study"); got != "/study" {
		t.Errorf("dataRoot with flag = %q, want /study", got)
	}
}

func TestOutputDir(t *testing.T) {
	app := testApp()
	if got := outputDir(app, ""); got != "data/processed" {
		t.Errorf("outputDir default = %q", got)
	}
	if got := outputDir(app, "out"); got != "out" {
		t.Errorf("outputDir with flag = %q, want out", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a long participant id", 10, "a long ..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "trial"); got != "1 trial" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(3, "trial"); got != "3 trials" {
		t.Errorf("pluralize(3) = %q", got)
	}
	if got := pluralize(0, "figure"); got != "0 figures" {
		t.Errorf("pluralize(0) = %q", got)
	}
}
