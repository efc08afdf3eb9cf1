package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hernandezlab/toolrep/internal/stats"
	"github.com/hernandezlab/toolrep/internal/util"
)

const sectionRule = "================================================================"

// RenderText renders the comprehensive analysis report as plain text,
// one section per research question plus a motor activation section.
// An empty runID omits the run line.
func RenderText(rep *stats.Report, runID string, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintln(&b, sectionRule)
	fmt.Fprintln(&b, "COMPREHENSIVE BEHAVIORAL ANALYSIS REPORT")
	fmt.Fprintln(&b, sectionRule)
	fmt.Fprintf(&b, "Generated: %s\n", util.FormatDateTime(generatedAt))
	if runID != "" {
		fmt.Fprintf(&b, "Run: %s\n", runID)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "DATA SUMMARY")
	fmt.Fprintln(&b, strings.Repeat("-", 40))
	fmt.Fprintf(&b, "Total trials: %d\n", rep.DataSummary.TotalTrials)
	fmt.Fprintf(&b, "Participants: %d\n", rep.DataSummary.Participants)
	fmt.Fprintf(&b, "Conditions: %s\n", strings.Join(rep.DataSummary.Conditions, ", "))
	fmt.Fprintf(&b, "Stimulus types: %s\n\n", strings.Join(rep.DataSummary.StimulusTypes, ", "))

	if rep.RQ1 != nil {
		writeQuestionHeader(&b, rep.RQ1.Question, rep.RQ1.Hypothesis)
		if o := rep.RQ1.Overall; o != nil {
			fmt.Fprintf(&b, "Overall: %d tool trials vs %d shape trials\n", o.NTools, o.NShapes)
			fmt.Fprintf(&b, "  Tool onset:  %s\n", describeLine(o.ToolStats))
			fmt.Fprintf(&b, "  Shape onset: %s\n", describeLine(o.ShapeStats))
			writeTTestLine(&b, o.TTest, o.Effect)
			if ws := o.WithinSubject; ws != nil {
				fmt.Fprintf(&b, "  Within-subject (n=%d): t=%.3f, p=%s\n",
					ws.NParticipants, ws.TTest.T, util.FormatPValue(ws.TTest.P))
			}
		}
		for _, c := range sortedKeys(rep.RQ1.PerCondition) {
			r := rep.RQ1.PerCondition[c]
			fmt.Fprintf(&b, "Condition %s: %d tools vs %d shapes\n", c, r.NTools, r.NShapes)
			writeTTestLine(&b, r.TTest, r.Effect)
		}
		writeComparison(&b, "Screen-optimized stimuli", rep.RQ1.ScreenOptimized)
		writeComparison(&b, "Standard stimuli", rep.RQ1.Standard)
		fmt.Fprintln(&b)
	}

	if rep.RQ2 != nil {
		writeQuestionHeader(&b, rep.RQ2.Question, rep.RQ2.Hypothesis)
		writeComparison(&b, "Passive vs active (all stimuli)", rep.RQ2.Overall)
		writeComparison(&b, "Passive vs active (tools only)", rep.RQ2.ToolsOnly)
		writeComparison(&b, "Passive vs active (shapes only)", rep.RQ2.ShapesOnly)
		fmt.Fprintln(&b)
	}

	if rep.RQ3 != nil {
		writeQuestionHeader(&b, rep.RQ3.Question, rep.RQ3.Hypothesis)
		if rep.RQ3.Overall != nil {
			writeComparison(&b, "Functional vs structural (overall)", rep.RQ3.Overall.Comparison)
			for _, c := range sortedKeys(rep.RQ3.Overall.ByCondition) {
				writeComparison(&b, "  within "+c, rep.RQ3.Overall.ByCondition[c])
			}
		}
		writeComparison(&b, "Standard stimuli", rep.RQ3.Standard)
		writeComparison(&b, "Screen-optimized stimuli", rep.RQ3.ScreenOptimized)
		fmt.Fprintln(&b)
	}

	if m := rep.MotorActivation; m != nil {
		fmt.Fprintln(&b, "MOTOR ACTIVATION")
		fmt.Fprintln(&b, strings.Repeat("-", 40))
		fmt.Fprintf(&b, "Motor conditions: %s\n", strings.Join(m.MotorConditions, ", "))
		fmt.Fprintf(&b, "Motor trials: %d (%d with tools)\n", m.NTrials, m.ToolMotorTrials)
		writeComparison(&b, "Motor vs non-motor", m.MotorVsNonMotor)
		if tc := m.WithinConditions; tc != nil && tc.ANOVA != nil {
			fmt.Fprintf(&b, "Across conditions: F=%.3f, p=%s (%s)\n",
				tc.ANOVA.F, util.FormatPValue(tc.ANOVA.P), significanceWord(tc.ANOVA.Significant))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, sectionRule)
	fmt.Fprintln(&b, "END OF REPORT")
	fmt.Fprintln(&b, sectionRule)
	return b.String()
}

func writeQuestionHeader(b *strings.Builder, question, hypothesis string) {
	fmt.Fprintln(b, strings.ToUpper(question))
	fmt.Fprintln(b, strings.Repeat("-", 40))
	fmt.Fprintf(b, "Hypothesis: %s\n", hypothesis)
}

func writeComparison(b *strings.Builder, label string, c *stats.GroupComparison) {
	if c == nil {
		return
	}
	fmt.Fprintf(b, "%s: %s (n=%d) vs %s (n=%d)\n",
		label, c.Group1Name, c.Group1N, c.Group2Name, c.Group2N)
	writeTTestLine(b, c.TTest, c.Effect)
}

func writeTTestLine(b *strings.Builder, tt *stats.TTestResult, es *stats.EffectSize) {
	if tt == nil {
		fmt.Fprintln(b, "  t-test: not enough observations")
		return
	}
	fmt.Fprintf(b, "  t(%d)=%.3f, p=%s (%s)", int(tt.DF), tt.T,
		util.FormatPValue(tt.P), significanceWord(tt.Significant))
	if es != nil {
		fmt.Fprintf(b, ", d=%.3f (%s)", es.CohensD, es.Interpretation)
	}
	fmt.Fprintln(b)
}

func describeLine(d stats.Descriptive) string {
	return fmt.Sprintf("mean=%.3fs, std=%.3fs, range=[%.3f, %.3f], n=%d",
		d.Mean, d.Std, d.Min, d.Max, d.N)
}

func significanceWord(sig bool) string {
	if sig {
		return "significant"
	}
	return "not significant"
}
