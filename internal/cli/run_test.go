package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/hernandezlab/toolrep/internal/ports"
)

func TestPrintPipelineSummary(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	m := ports.RunMetrics{
		Participants: 2,
		FilesParsed:  6,
		ParseErrors:  1,
		FilesWritten: 9,
	}
	paths := map[string]string{
		"comprehensive_report": "out/comprehensive_report.txt",
		"html_report":          "out/analysis_report.html",
	}
	printPipelineSummary(cmd, 1500, m, paths)

	got := out.String()
	for _, want := range []string{
		"Pipeline complete: 1.5K trials from 2 participants",
		"files parsed: 6 (1 errors)",
		"files written: 9",
		"comprehensive_report: out/comprehensive_report.txt",
		"html_report: out/analysis_report.html",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q in:\n%s", want, got)
		}
	}
}
