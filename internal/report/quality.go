package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hernandezlab/toolrep/internal/domain"
	"github.com/hernandezlab/toolrep/internal/util"
)

// RenderQuality renders the timing validation findings as a plain-text
// data quality report. An empty runID omits the run line.
func RenderQuality(v *domain.TimingValidation, runID string, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintln(&b, "DATA QUALITY REPORT")
	fmt.Fprintln(&b, strings.Repeat("=", 40))
	fmt.Fprintf(&b, "Generated: %s\n", util.FormatDateTime(generatedAt))
	if runID != "" {
		fmt.Fprintf(&b, "Run: %s\n", runID)
	}
	fmt.Fprintf(&b, "Total trials: %d\n\n", v.TotalTrials)

	writeFindings(&b, "Timing errors", v.TimingErrors)
	writeFindings(&b, "Missing data", v.MissingData)
	writeFindings(&b, "Outliers", v.Outliers)

	if v.HasDurations {
		fmt.Fprintln(&b, "Stimulus duration")
		fmt.Fprintf(&b, "  mean: %.3fs\n", v.DurationMean)
		fmt.Fprintf(&b, "  std:  %.3fs\n", v.DurationStd)
		fmt.Fprintf(&b, "  min:  %.3fs\n", v.DurationMin)
		fmt.Fprintf(&b, "  max:  %.3fs\n", v.DurationMax)
	} else {
		fmt.Fprintln(&b, "No stimulus durations available")
	}
	return b.String()
}

func writeFindings(b *strings.Builder, label string, findings []string) {
	if len(findings) == 0 {
		fmt.Fprintf(b, "%s: none\n\n", label)
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, f := range findings {
		fmt.Fprintf(b, "  - %s\n", f)
	}
	fmt.Fprintln(b)
}
