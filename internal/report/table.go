package report

import (
	"fmt"
	"sort"

	"github.com/hernandezlab/toolrep/internal/stats"
)

// ResultsRow is one line of the flattened statistical results table. Values
// are preformatted strings so the CSV, XLSX and text renderings agree.
type ResultsRow struct {
	AnalysisType         string `json:"analysis_type"`
	NTrials              string `json:"n_trials"`
	NParticipants        string `json:"n_participants"`
	Test                 string `json:"statistical_test"`
	Statistic            string `json:"test_statistic"`
	PValue               string `json:"p_value"`
	Significant          string `json:"significant"`
	EffectSize           string `json:"effect_size"`
	EffectInterpretation string `json:"effect_interpretation"`
}

// ResultsHeader is the column order shared by every table export.
var ResultsHeader = []string{
	"Analysis_Type", "N_Trials", "N_Participants", "Statistical_Test",
	"Test_Statistic", "P_Value", "Significant", "Effect_Size", "Effect_Interpretation",
}

// Fields returns the row values in ResultsHeader order.
func (r ResultsRow) Fields() []string {
	return []string{
		r.AnalysisType, r.NTrials, r.NParticipants, r.Test,
		r.Statistic, r.PValue, r.Significant, r.EffectSize, r.EffectInterpretation,
	}
}

// BuildResultsTable flattens a comprehensive analysis report into table rows.
func BuildResultsTable(rep *stats.Report) []ResultsRow {
	if rep == nil {
		return nil
	}
	var rows []ResultsRow

	if rep.RQ1 != nil {
		rows = append(rows, toolsVsShapesRow("rq1_overall_tools_vs_shapes", rep.RQ1.Overall)...)
		for _, c := range sortedKeys(rep.RQ1.PerCondition) {
			rows = append(rows, toolsVsShapesRow("rq1_tools_vs_shapes_"+c, rep.RQ1.PerCondition[c])...)
		}
		rows = append(rows, comparisonRow("rq1_screen_optimized", rep.RQ1.ScreenOptimized)...)
		rows = append(rows, comparisonRow("rq1_standard", rep.RQ1.Standard)...)
	}
	if rep.RQ2 != nil {
		rows = append(rows, comparisonRow("rq2_overall_passive_vs_active", rep.RQ2.Overall)...)
		rows = append(rows, comparisonRow("rq2_tools_passive_vs_active", rep.RQ2.ToolsOnly)...)
		rows = append(rows, comparisonRow("rq2_shapes_passive_vs_active", rep.RQ2.ShapesOnly)...)
	}
	if rep.RQ3 != nil {
		if rep.RQ3.Overall != nil {
			rows = append(rows, comparisonRow("rq3_functional_vs_structural", rep.RQ3.Overall.Comparison)...)
		}
		rows = append(rows, comparisonRow("rq3_standard", rep.RQ3.Standard)...)
		rows = append(rows, comparisonRow("rq3_screen_optimized", rep.RQ3.ScreenOptimized)...)
	}
	if rep.MotorActivation != nil {
		rows = append(rows, comparisonRow("motor_vs_non_motor", rep.MotorActivation.MotorVsNonMotor)...)
		if tc := rep.MotorActivation.WithinConditions; tc != nil && tc.ANOVA != nil {
			rows = append(rows, anovaRow("task_conditions", tc))
		}
	}
	return rows
}

func toolsVsShapesRow(name string, r *stats.ToolsVsShapesResult) []ResultsRow {
	if r == nil {
		return nil
	}
	row := ResultsRow{
		AnalysisType:         name,
		NTrials:              fmt.Sprintf("%d", r.NTrials),
		NParticipants:        fmt.Sprintf("%d", r.Participants),
		Test:                 "N/A",
		Statistic:            "N/A",
		PValue:               "N/A",
		Significant:          "N/A",
		EffectSize:           "N/A",
		EffectInterpretation: "N/A",
	}
	if r.TTest != nil {
		fillTTest(&row, r.TTest)
	}
	if r.Effect != nil {
		row.EffectSize = fmt.Sprintf("%.3f", r.Effect.CohensD)
		row.EffectInterpretation = r.Effect.Interpretation
	}
	return []ResultsRow{row}
}

func comparisonRow(name string, c *stats.GroupComparison) []ResultsRow {
	if c == nil {
		return nil
	}
	row := ResultsRow{
		AnalysisType:         name,
		NTrials:              fmt.Sprintf("%d", c.Group1N+c.Group2N),
		NParticipants:        "N/A",
		Test:                 "N/A",
		Statistic:            "N/A",
		PValue:               "N/A",
		Significant:          "N/A",
		EffectSize:           "N/A",
		EffectInterpretation: "N/A",
	}
	if c.TTest != nil {
		fillTTest(&row, c.TTest)
	}
	if c.Effect != nil {
		row.EffectSize = fmt.Sprintf("%.3f", c.Effect.CohensD)
		row.EffectInterpretation = c.Effect.Interpretation
	}
	return []ResultsRow{row}
}

func anovaRow(name string, tc *stats.TaskConditionsResult) ResultsRow {
	row := ResultsRow{
		AnalysisType:         name,
		NTrials:              fmt.Sprintf("%d", tc.NTrials),
		NParticipants:        fmt.Sprintf("%d", tc.Participants),
		Test:                 "ANOVA",
		Statistic:            fmt.Sprintf("%.3f", tc.ANOVA.F),
		PValue:               fmt.Sprintf("%.3f", tc.ANOVA.P),
		Significant:          yesNo(tc.ANOVA.Significant),
		EffectSize:           "N/A",
		EffectInterpretation: "N/A",
	}
	return row
}

func fillTTest(row *ResultsRow, tt *stats.TTestResult) {
	row.Test = "t-test"
	row.Statistic = fmt.Sprintf("%.3f", tt.T)
	row.PValue = fmt.Sprintf("%.3f", tt.P)
	row.Significant = yesNo(tt.Significant)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
