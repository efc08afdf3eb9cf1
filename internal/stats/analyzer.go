package stats

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/hernandezlab/toolrep/internal/domain"
)

// Analyzer runs condition comparisons over a trial table.
type Analyzer struct {
	table  *domain.Table
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer for a trial table.
func NewAnalyzer(table *domain.Table, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{table: table, logger: logger}
}

// GroupStats is the short per-group summary attached to comparisons.
type GroupStats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
}

// GroupComparison is a two-group onset comparison: t-test, effect size and
// per-group summaries. TTest and Effect are nil when a group had too few
// observations.
type GroupComparison struct {
	Group1Name  string       `json:"group1_name"`
	Group2Name  string       `json:"group2_name"`
	Group1N     int          `json:"group1_n"`
	Group2N     int          `json:"group2_n"`
	TTest       *TTestResult `json:"t_test,omitempty"`
	Effect      *EffectSize  `json:"effect_size,omitempty"`
	Group1Stats *GroupStats  `json:"group1_stats,omitempty"`
	Group2Stats *GroupStats  `json:"group2_stats,omitempty"`
}

// PairedResult is a within-subject paired t-test over participant means.
type PairedResult struct {
	TTest         TTestResult `json:"paired_t_test"`
	NParticipants int         `json:"n_participants"`
}

// ToolsVsShapesResult compares tool against shape trials.
type ToolsVsShapesResult struct {
	Condition     string       `json:"condition,omitempty"`
	NTrials       int          `json:"n_trials"`
	NTools        int          `json:"n_tools"`
	NShapes       int          `json:"n_shapes"`
	Participants  int          `json:"participants"`
	ToolStats     Descriptive  `json:"tool_stats"`
	ShapeStats    Descriptive  `json:"shape_stats"`
	TTest         *TTestResult `json:"t_test,omitempty"`
	Effect        *EffectSize  `json:"effect_size,omitempty"`
	WithinSubject *PairedResult `json:"within_subject,omitempty"`
}

// TaskConditionsResult compares onsets across task conditions.
type TaskConditionsResult struct {
	StimulusType string                 `json:"stimulus_type,omitempty"`
	Conditions   []string               `json:"conditions"`
	NTrials      int                    `json:"n_trials"`
	Participants int                    `json:"participants"`
	PerCondition map[string]Descriptive `json:"descriptive_stats"`
	ANOVA        *AnovaResult           `json:"anova,omitempty"`
	Pairwise     map[string]TTestResult `json:"pairwise_comparisons,omitempty"`
}

// MotorActivationResult analyses motor-task conditions.
type MotorActivationResult struct {
	MotorConditions  []string              `json:"motor_conditions"`
	NTrials          int                   `json:"n_trials"`
	Participants     int                   `json:"participants"`
	MotorVsNonMotor  *GroupComparison      `json:"motor_vs_non_motor,omitempty"`
	WithinConditions *TaskConditionsResult `json:"within_motor_conditions,omitempty"`
	ToolMotorTrials  int                   `json:"tool_motor_trials"`
}

// FunctionalStructuralResult compares functional tools against neutral shapes.
type FunctionalStructuralResult struct {
	FunctionalN  int                         `json:"functional_n"`
	StructuralN  int                         `json:"structural_n"`
	Participants int                         `json:"participants"`
	Comparison   *GroupComparison            `json:"comparison,omitempty"`
	ByCondition  map[string]*GroupComparison `json:"by_condition,omitempty"`
}

// RQ1Result: are tools special?
type RQ1Result struct {
	Question        string                          `json:"research_question"`
	Hypothesis      string                          `json:"hypothesis"`
	Overall         *ToolsVsShapesResult            `json:"overall_tools_vs_shapes,omitempty"`
	PerCondition    map[string]*ToolsVsShapesResult `json:"tools_vs_shapes_by_condition,omitempty"`
	ScreenOptimized *GroupComparison                `json:"screen_optimized_tools_vs_shapes,omitempty"`
	Standard        *GroupComparison                `json:"standard_tools_vs_shapes,omitempty"`
}

// RQ2Result: action potentiation.
type RQ2Result struct {
	Question   string           `json:"research_question"`
	Hypothesis string           `json:"hypothesis"`
	Overall    *GroupComparison `json:"overall_passive_vs_active,omitempty"`
	ToolsOnly  *GroupComparison `json:"tools_passive_vs_active,omitempty"`
	ShapesOnly *GroupComparison `json:"shapes_passive_vs_active,omitempty"`
}

// RQ3Result: functional vs structural representations.
type RQ3Result struct {
	Question        string                      `json:"research_question"`
	Hypothesis      string                      `json:"hypothesis"`
	Overall         *FunctionalStructuralResult `json:"overall_functional_vs_structural,omitempty"`
	Standard        *GroupComparison            `json:"standard_functional_vs_structural,omitempty"`
	ScreenOptimized *GroupComparison            `json:"scr_functional_vs_structural,omitempty"`
}

// DataSummary describes the analyzed table.
type DataSummary struct {
	TotalTrials   int      `json:"total_trials"`
	Participants  int      `json:"participants"`
	Conditions    []string `json:"conditions"`
	StimulusTypes []string `json:"stimulus_types"`
}

// Report bundles every analysis for reporting and JSON export.
type Report struct {
	DataSummary          DataSummary                 `json:"data_summary"`
	RQ1                  *RQ1Result                  `json:"rq1,omitempty"`
	RQ2                  *RQ2Result                  `json:"rq2,omitempty"`
	RQ3                  *RQ3Result                  `json:"rq3,omitempty"`
	MotorActivation      *MotorActivationResult      `json:"motor_activation,omitempty"`
	FunctionalStructural *FunctionalStructuralResult `json:"functional_vs_structural,omitempty"`
}

// ToolsVsShapes compares tool and shape trials, optionally restricted to one
// task condition. Returns an error when the filtered table has no tool or
// shape trials.
func (a *Analyzer) ToolsVsShapes(condition string) (*ToolsVsShapesResult, error) {
	data := a.table
	if condition != "" {
		data = data.ByCondition(condition)
	}
	tools, shapes := data.Tools(), data.Shapes()
	if tools.Len()+shapes.Len() == 0 {
		return nil, errors.New("no tool/shape data found")
	}

	res := &ToolsVsShapesResult{
		Condition:    condition,
		NTrials:      tools.Len() + shapes.Len(),
		NTools:       tools.Len(),
		NShapes:      shapes.Len(),
		Participants: len(data.Participants()),
		ToolStats:    Describe(tools.Onsets()),
		ShapeStats:   Describe(shapes.Onsets()),
	}

	toolOnsets, shapeOnsets := tools.Onsets(), shapes.Onsets()
	if tt, err := TTestInd(toolOnsets, shapeOnsets); err == nil {
		res.TTest = &tt
	}
	if es, err := CohensD(toolOnsets, shapeOnsets); err == nil {
		res.Effect = &es
	}

	if res.Participants > 1 {
		res.WithinSubject = a.withinSubject(data)
	}

	a.logger.Debug("tools vs shapes analysis complete",
		zap.String("condition", condition),
		zap.Int("tools", res.NTools),
		zap.Int("shapes", res.NShapes))
	return res, nil
}

// withinSubject runs a paired t-test on per-participant mean onsets,
// tool trials against shape trials.
func (a *Analyzer) withinSubject(data *domain.Table) *PairedResult {
	var toolMeans, shapeMeans []float64
	for _, pt := range data.GroupByParticipant() {
		to, so := pt.Tools().Onsets(), pt.Shapes().Onsets()
		if len(to) == 0 || len(so) == 0 {
			continue
		}
		toolMeans = append(toolMeans, stat.Mean(to, nil))
		shapeMeans = append(shapeMeans, stat.Mean(so, nil))
	}
	tt, err := TTestPaired(toolMeans, shapeMeans)
	if err != nil {
		return nil
	}
	return &PairedResult{TTest: tt, NParticipants: len(toolMeans)}
}

// TaskConditions compares onsets across task conditions, optionally within a
// single stimulus type. Requires at least two conditions.
func (a *Analyzer) TaskConditions(stimulusType string) (*TaskConditionsResult, error) {
	data := a.table
	if stimulusType != "" {
		data = data.ByStimulusType(stimulusType)
	}
	conditions := data.Conditions()
	if len(conditions) < 2 {
		return nil, errors.New("need at least 2 conditions for comparison")
	}

	res := &TaskConditionsResult{
		StimulusType: stimulusType,
		Conditions:   conditions,
		NTrials:      data.Len(),
		Participants: len(data.Participants()),
		PerCondition: map[string]Descriptive{},
	}

	groups := make([][]float64, 0, len(conditions))
	for _, c := range conditions {
		onsets := data.ByCondition(c).Onsets()
		res.PerCondition[c] = Describe(onsets)
		if len(onsets) > 0 {
			groups = append(groups, onsets)
		}
	}

	if anova, err := OneWayANOVA(groups); err == nil {
		res.ANOVA = &anova
	}

	res.Pairwise = map[string]TTestResult{}
	for i, c1 := range conditions {
		for _, c2 := range conditions[i+1:] {
			tt, err := TTestInd(data.ByCondition(c1).Onsets(), data.ByCondition(c2).Onsets())
			if err != nil {
				continue
			}
			res.Pairwise[fmt.Sprintf("%s_vs_%s", c1, c2)] = tt
		}
	}

	a.logger.Debug("task conditions analysis complete",
		zap.Int("conditions", len(conditions)))
	return res, nil
}

// MotorActivation analyses motor-task conditions against the rest of the
// table. Returns an error when there are no motor trials.
func (a *Analyzer) MotorActivation() (*MotorActivationResult, error) {
	motor := a.table.Motor()
	if motor.Len() == 0 {
		return nil, errors.New("no motor condition data found")
	}

	res := &MotorActivationResult{
		MotorConditions: motor.Conditions(),
		NTrials:         motor.Len(),
		Participants:    len(motor.Participants()),
		ToolMotorTrials: motor.Tools().Len(),
	}

	if nonMotor := a.table.NonMotor(); nonMotor.Len() > 0 {
		res.MotorVsNonMotor = a.compareGroups(motor, nonMotor, "Motor Conditions", "Non-Motor Conditions")
	}
	if tc, err := a.TaskConditions(""); err == nil {
		res.WithinConditions = tc
	}
	return res, nil
}

// FunctionalVsStructural compares functional tools against neutral shapes,
// overall and per task condition.
func (a *Analyzer) FunctionalVsStructural() (*FunctionalStructuralResult, error) {
	functional, structural := a.table.Tools(), a.table.Shapes()
	if functional.Len() == 0 || structural.Len() == 0 {
		return nil, errors.New("insufficient data for functional vs structural analysis")
	}

	res := &FunctionalStructuralResult{
		FunctionalN:  functional.Len(),
		StructuralN:  structural.Len(),
		Participants: len(a.table.Participants()),
		Comparison:   a.compareGroups(functional, structural, "Functional Tools", "Structural Shapes"),
		ByCondition:  map[string]*GroupComparison{},
	}

	for _, c := range a.table.Conditions() {
		cf, cs := functional.ByCondition(c), structural.ByCondition(c)
		if cf.Len() == 0 || cs.Len() == 0 {
			continue
		}
		res.ByCondition[c] = a.compareGroups(cf, cs,
			fmt.Sprintf("Functional (%s)", c), fmt.Sprintf("Structural (%s)", c))
	}
	return res, nil
}

// AnalyzeRQ1 answers research question 1: are tools special?
func (a *Analyzer) AnalyzeRQ1() *RQ1Result {
	res := &RQ1Result{
		Question:     "RQ1: Are Tools Special?",
		Hypothesis:   "Tools should show different neural activation patterns compared to shapes",
		PerCondition: map[string]*ToolsVsShapesResult{},
	}

	if overall, err := a.ToolsVsShapes(""); err == nil {
		res.Overall = overall
	} else {
		a.logger.Warn("RQ1 overall comparison skipped", zap.Error(err))
	}
	for _, c := range a.table.Conditions() {
		if r, err := a.ToolsVsShapes(c); err == nil {
			res.PerCondition[c] = r
		}
	}

	scrTools := a.table.ByStimulusType("SCRtool")
	scrShapes := a.table.ByStimulusType("SCRshape")
	if scrTools.Len() > 0 && scrShapes.Len() > 0 {
		res.ScreenOptimized = a.compareGroups(scrTools, scrShapes, "SCR Tools", "SCR Shapes")
	}

	stdTools := a.table.ByStimulusType("tool")
	stdShapes := a.standardShapes()
	if stdTools.Len() > 0 && stdShapes.Len() > 0 {
		res.Standard = a.compareGroups(stdTools, stdShapes, "Standard Tools", "Standard Shapes")
	}
	return res
}

// AnalyzeRQ2 answers research question 2: does action potentiate responses?
func (a *Analyzer) AnalyzeRQ2() *RQ2Result {
	res := &RQ2Result{
		Question:   "RQ2: Action Potentiation",
		Hypothesis: "Active grasping should enhance neural responses compared to passive viewing",
	}

	passive := a.table.ByCondition(domain.ConditionPassiveViewing)
	active := a.table.ByCondition(domain.ConditionActiveGrasp)
	if passive.Len() > 0 && active.Len() > 0 {
		res.Overall = a.compareGroups(passive, active, "Passive Viewing", "Active Grasp")
	}

	if tp, ta := passive.Tools(), active.Tools(); tp.Len() > 0 && ta.Len() > 0 {
		res.ToolsOnly = a.compareGroups(tp, ta, "Tools Passive", "Tools Active")
	}
	if sp, sa := passive.Shapes(), active.Shapes(); sp.Len() > 0 && sa.Len() > 0 {
		res.ShapesOnly = a.compareGroups(sp, sa, "Shapes Passive", "Shapes Active")
	}
	return res
}

// AnalyzeRQ3 answers research question 3: functional vs structural coding.
func (a *Analyzer) AnalyzeRQ3() *RQ3Result {
	res := &RQ3Result{
		Question:   "RQ3: Functional vs Structural",
		Hypothesis: "Functional tools should show different activation patterns than neutral shapes",
	}

	if fs, err := a.FunctionalVsStructural(); err == nil {
		res.Overall = fs
	} else {
		a.logger.Warn("RQ3 overall comparison skipped", zap.Error(err))
	}

	stdTools := a.table.ByStimulusType("tool")
	stdShapes := a.standardShapes()
	if stdTools.Len() > 0 && stdShapes.Len() > 0 {
		res.Standard = a.compareGroups(stdTools, stdShapes, "Standard Functional", "Standard Structural")
	}

	scrTools := a.table.ByStimulusType("SCRtool")
	scrShapes := a.table.ByStimulusType("SCRshape")
	if scrTools.Len() > 0 && scrShapes.Len() > 0 {
		res.ScreenOptimized = a.compareGroups(scrTools, scrShapes, "SCR Functional", "SCR Structural")
	}
	return res
}

// ComprehensiveReport runs every analysis and bundles the results.
func (a *Analyzer) ComprehensiveReport() *Report {
	a.logger.Info("running comprehensive statistical analysis",
		zap.Int("trials", a.table.Len()),
		zap.Int("participants", len(a.table.Participants())))

	report := &Report{
		DataSummary: DataSummary{
			TotalTrials:   a.table.Len(),
			Participants:  len(a.table.Participants()),
			Conditions:    a.table.Conditions(),
			StimulusTypes: a.table.StimulusTypes(),
		},
		RQ1: a.AnalyzeRQ1(),
		RQ2: a.AnalyzeRQ2(),
		RQ3: a.AnalyzeRQ3(),
	}

	if motor, err := a.MotorActivation(); err == nil {
		report.MotorActivation = motor
	} else {
		a.logger.Warn("motor activation analysis skipped", zap.Error(err))
	}
	if fs, err := a.FunctionalVsStructural(); err == nil {
		report.FunctionalStructural = fs
	}
	return report
}

// standardShapes matches both capitalizations of the non-SCR shape type.
func (a *Analyzer) standardShapes() *domain.Table {
	return a.table.Filter(func(tr *domain.Trial) bool {
		return tr.StimulusType == "Shape" || tr.StimulusType == "shape"
	})
}

func (a *Analyzer) compareGroups(g1, g2 *domain.Table, name1, name2 string) *GroupComparison {
	cmp := &GroupComparison{
		Group1Name: name1,
		Group2Name: name2,
		Group1N:    g1.Len(),
		Group2N:    g2.Len(),
	}

	o1, o2 := g1.Onsets(), g2.Onsets()
	if tt, err := TTestInd(o1, o2); err == nil {
		cmp.TTest = &tt
	}
	if es, err := CohensD(o1, o2); err == nil {
		cmp.Effect = &es
	}
	if len(o1) > 0 {
		d := Describe(o1)
		cmp.Group1Stats = &GroupStats{N: d.N, Mean: d.Mean, Std: d.Std, Median: d.Median}
	}
	if len(o2) > 0 {
		d := Describe(o2)
		cmp.Group2Stats = &GroupStats{N: d.N, Mean: d.Mean, Std: d.Std, Median: d.Median}
	}
	return cmp
}
