package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hernandezlab/toolrep/internal/parser"
	"github.com/hernandezlab/toolrep/internal/ports"
	"github.com/hernandezlab/toolrep/internal/report"
	"github.com/hernandezlab/toolrep/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run statistical analyses",
	Long: `Run statistical analyses over the parsed trial table and print the
results as text or JSON.

Analyses:
  all                    Every planned analysis (default)
  tools-vs-shapes        Tools vs shapes comparison
  task-conditions        Onsets across task conditions
  motor                  Motor vs non-motor conditions
  functional-structural  Functional tools vs structural shapes

Examples:
  toolrep stats
  toolrep stats --analysis tools-vs-shapes --condition passive_viewing
  toolrep stats --analysis task-conditions --stimulus tool
  toolrep stats --format json`,
	RunE: runStatsCmd,
}

// Flags
var (
	statsDataRoot    string
	statsAnalysis    string
	statsCondition   string
	statsStimulus    string
	statsFormat      string
	statsParticipant string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsDataRoot, "data-root", "", "Data set root directory (default from TOOLREP_DATA_ROOT)")
	statsCmd.Flags().StringVarP(&statsAnalysis, "analysis", "a", "all", "Analysis: all, tools-vs-shapes, task-conditions, motor, functional-structural")
	statsCmd.Flags().StringVarP(&statsCondition, "condition", "c", "", "Restrict tools analysis to one task condition")
	statsCmd.Flags().StringVarP(&statsStimulus, "stimulus", "s", "", "Restrict conditions analysis to one stimulus type")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "Output format: text, json")
	statsCmd.Flags().StringVarP(&statsParticipant, "participant", "p", "", "Analyze a single participant (e.g. S03)")
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	app, err := NewAppContext(flagVerbose)
	if err != nil {
		return err
	}
	defer app.Close()

	data := parser.NewDataRoot(dataRoot(app, statsDataRoot))
	builder := parser.NewBuilder(data, app.Logger)
	table := builder.BuildTable(statsParticipant)

	m := ports.RunMetrics{
		FilesParsed:  int64(builder.FilesParsed),
		ParseErrors:  int64(builder.ParseErrors),
		TrialsLoaded: int64(table.Len()),
		Participants: len(table.Participants()),
	}
	if table.Len() == 0 {
		m.ExitReason = "no_data"
		app.ExportRun("stats", m)
		return fmt.Errorf("no trials found under %s", data.RawPath())
	}

	analyzer := stats.NewAnalyzer(table, app.Logger)
	var result any
	if statsAnalysis == "all" {
		rep := analyzer.ComprehensiveReport()
		m.AnalysesRun = countAnalyses(rep)
		if statsFormat != "json" {
			cmd.Print(report.RenderText(rep, app.RunID, time.Now()))
			app.ExportRun("stats", m)
			return nil
		}
		result = rep
	} else {
		result, err = runAnalysis(analyzer, statsAnalysis, statsCondition, statsStimulus)
		m.AnalysesRun = 1
	}
	if err != nil {
		m.ExitReason = "analysis_failed"
		app.ExportRun("stats", m)
		return err
	}
	app.ExportRun("stats", m)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

// runAnalysis dispatches a single named analysis.
func runAnalysis(analyzer *stats.Analyzer, name, condition, stimulus string) (any, error) {
	switch name {
	case "tools-vs-shapes":
		return analyzer.ToolsVsShapes(condition)
	case "task-conditions":
		return analyzer.TaskConditions(stimulus)
	case "motor":
		return analyzer.MotorActivation()
	case "functional-structural":
		return analyzer.FunctionalVsStructural()
	default:
		return nil, fmt.Errorf("unknown analysis %q", name)
	}
}
