package report

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/hernandezlab/toolrep/internal/stats"
	"github.com/hernandezlab/toolrep/internal/util"
)

const reportStyle = `body{font-family:sans-serif;max-width:960px;margin:2em auto;color:#1a1a1a}
h1{border-bottom:2px solid #444}h2{margin-top:1.5em}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:4px 8px;text-align:left;font-size:0.9em}
th{background:#f0f0f0}
.sig{color:#0a7a0a;font-weight:bold}
.card{display:inline-block;border:1px solid #ddd;border-radius:6px;padding:0.8em 1.2em;margin:0.3em}
.card .num{font-size:1.6em;font-weight:bold}`

// ReportPage builds the standalone HTML analysis report component. An empty
// runID omits the run line.
func ReportPage(summary *Summary, rep *stats.Report, rows []ResultsRow, runID string, generatedAt time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		b.WriteString("<title>Behavioral Analysis Report</title>\n")
		fmt.Fprintf(&b, "<style>%s</style>\n</head>\n<body>\n", reportStyle)
		b.WriteString("<h1>Behavioral Analysis Report</h1>\n")
		fmt.Fprintf(&b, "<p>Generated %s</p>\n", html.EscapeString(util.FormatDateTime(generatedAt)))
		if runID != "" {
			fmt.Fprintf(&b, "<p>Run %s</p>\n", html.EscapeString(runID))
		}

		writeOverviewCards(&b, summary)
		writeCategoryTable(&b, "Trials by Condition", summary.ConditionStats)
		writeCategoryTable(&b, "Trials by Stimulus Type", summary.StimulusStats)
		writeTimingSection(&b, summary.TimingStats)
		writeQuestionSections(&b, rep)
		writeResultsTable(&b, rows)

		b.WriteString("</body>\n</html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeOverviewCards(b *strings.Builder, s *Summary) {
	b.WriteString("<h2>Data Overview</h2>\n<div>\n")
	writeCard(b, s.DataOverview.TotalTrials, "Trials")
	writeCard(b, s.DataOverview.Participants, "Participants")
	writeCard(b, len(s.DataOverview.Conditions), "Conditions")
	writeCard(b, len(s.DataOverview.StimulusTypes), "Stimulus types")
	b.WriteString("</div>\n")
}

func writeCard(b *strings.Builder, n int, label string) {
	fmt.Fprintf(b, "<div class=\"card\"><div class=\"num\">%d</div>%s</div>\n",
		n, html.EscapeString(label))
}

func writeCategoryTable(b *strings.Builder, title string, cats map[string]CategoryStat) {
	if len(cats) == 0 {
		return
	}
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(title))
	b.WriteString("<table>\n<tr><th>Category</th><th>Trials</th><th>Share</th><th>Participants</th></tr>\n")
	for _, name := range sortedKeys(cats) {
		c := cats[name]
		fmt.Fprintf(b, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%d</td></tr>\n",
			html.EscapeString(name), c.NTrials, util.FormatPercent(c.Percentage), c.Participants)
	}
	b.WriteString("</table>\n")
}

func writeTimingSection(b *strings.Builder, d *stats.Descriptive) {
	if d == nil {
		return
	}
	b.WriteString("<h2>Stimulus Onset Timing</h2>\n")
	fmt.Fprintf(b, "<p>mean %s, std %s, median %s, range [%s, %s], n=%d</p>\n",
		util.FormatSeconds(d.Mean), util.FormatSeconds(d.Std), util.FormatSeconds(d.Median),
		util.FormatSeconds(d.Min), util.FormatSeconds(d.Max), d.N)
}

func writeQuestionSections(b *strings.Builder, rep *stats.Report) {
	if rep.RQ1 != nil {
		writeQuestionHTML(b, rep.RQ1.Question, rep.RQ1.Hypothesis, rq1Highlights(rep.RQ1))
	}
	if rep.RQ2 != nil {
		writeQuestionHTML(b, rep.RQ2.Question, rep.RQ2.Hypothesis, comparisonHighlights(
			pair{"All stimuli", rep.RQ2.Overall},
			pair{"Tools only", rep.RQ2.ToolsOnly},
			pair{"Shapes only", rep.RQ2.ShapesOnly}))
	}
	if rep.RQ3 != nil {
		var hl []string
		if rep.RQ3.Overall != nil {
			hl = comparisonHighlights(pair{"Overall", rep.RQ3.Overall.Comparison})
		}
		hl = append(hl, comparisonHighlights(
			pair{"Standard stimuli", rep.RQ3.Standard},
			pair{"Screen-optimized stimuli", rep.RQ3.ScreenOptimized})...)
		writeQuestionHTML(b, rep.RQ3.Question, rep.RQ3.Hypothesis, hl)
	}
}

type pair struct {
	label string
	cmp   *stats.GroupComparison
}

func rq1Highlights(rq1 *stats.RQ1Result) []string {
	var hl []string
	if o := rq1.Overall; o != nil {
		hl = append(hl, fmt.Sprintf("%d tool trials vs %d shape trials across %d participants",
			o.NTools, o.NShapes, o.Participants))
		if o.TTest != nil {
			hl = append(hl, ttestHighlight(o.TTest, o.Effect))
		}
	}
	hl = append(hl, comparisonHighlights(
		pair{"Screen-optimized stimuli", rq1.ScreenOptimized},
		pair{"Standard stimuli", rq1.Standard})...)
	return hl
}

func comparisonHighlights(pairs ...pair) []string {
	var hl []string
	for _, p := range pairs {
		if p.cmp == nil || p.cmp.TTest == nil {
			continue
		}
		hl = append(hl, fmt.Sprintf("%s: %s", p.label, ttestHighlight(p.cmp.TTest, p.cmp.Effect)))
	}
	return hl
}

func ttestHighlight(tt *stats.TTestResult, es *stats.EffectSize) string {
	s := fmt.Sprintf("t(%d)=%.3f, p=%s", int(tt.DF), tt.T, util.FormatPValue(tt.P))
	if es != nil {
		s += fmt.Sprintf(", d=%.3f (%s)", es.CohensD, es.Interpretation)
	}
	return s
}

func writeQuestionHTML(b *strings.Builder, question, hypothesis string, highlights []string) {
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(question))
	fmt.Fprintf(b, "<p><em>%s</em></p>\n", html.EscapeString(hypothesis))
	if len(highlights) == 0 {
		b.WriteString("<p>No testable comparisons in this data set.</p>\n")
		return
	}
	b.WriteString("<ul>\n")
	for _, h := range highlights {
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(h))
	}
	b.WriteString("</ul>\n")
}

func writeResultsTable(b *strings.Builder, rows []ResultsRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString("<h2>Statistical Results</h2>\n<table>\n<tr>")
	for _, h := range ResultsHeader {
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n")
	for _, r := range rows {
		b.WriteString("<tr>")
		for i, v := range r.Fields() {
			cls := ""
			if i == 6 && v == "Yes" {
				cls = " class=\"sig\""
			}
			fmt.Fprintf(b, "<td%s>%s</td>", cls, html.EscapeString(v))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}
