package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hernandezlab/toolrep/internal/parser"
	"github.com/hernandezlab/toolrep/internal/ports"
	"github.com/hernandezlab/toolrep/internal/report"
	"github.com/hernandezlab/toolrep/internal/stats"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write publication-ready tables and reports",
	Long: `Run the statistical analyses and write the publication result set:
summary statistics (JSON), the results table (CSV and Excel), the
comprehensive text report, the full analysis results (JSON) and an HTML
report.

Examples:
  toolrep report
  toolrep report -o publication/
  toolrep report --no-html`,
	RunE: runReport,
}

// Flags
var (
	reportDataRoot string
	reportOutput   string
	reportNoHTML   bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportDataRoot, "data-root", "", "Data set root directory (default from TOOLREP_DATA_ROOT)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output directory (default from TOOLREP_OUTPUT_DIR)")
	reportCmd.Flags().BoolVar(&reportNoHTML, "no-html", false, "Skip the HTML report")
}

func runReport(cmd *cobra.Command, args []string) error {
	app, err := NewAppContext(flagVerbose)
	if err != nil {
		return err
	}
	defer app.Close()

	data := parser.NewDataRoot(dataRoot(app, reportDataRoot))
	builder := parser.NewBuilder(data, app.Logger)
	table := builder.BuildTable("")

	m := ports.RunMetrics{
		FilesParsed:  int64(builder.FilesParsed),
		ParseErrors:  int64(builder.ParseErrors),
		TrialsLoaded: int64(table.Len()),
		Participants: len(table.Participants()),
	}
	if table.Len() == 0 {
		m.ExitReason = "no_data"
		app.ExportRun("report", m)
		return fmt.Errorf("no trials found under %s", data.RawPath())
	}

	rep := stats.NewAnalyzer(table, app.Logger).ComprehensiveReport()
	m.AnalysesRun = countAnalyses(rep)

	writer := report.NewWriter(outputDir(app, reportOutput), app.Logger).WithRunID(app.RunID)
	paths, err := writer.WritePublication(table, rep)
	if err != nil {
		m.ExitReason = "write_failed"
		app.ExportRun("report", m)
		return err
	}
	if !reportNoHTML {
		htmlPath, err := writer.WriteHTML(table, rep)
		if err != nil {
			m.ExitReason = "write_failed"
			app.ExportRun("report", m)
			return err
		}
		paths["html_report"] = htmlPath
	}
	m.FilesWritten = int64(len(paths))
	app.ExportRun("report", m)

	cmd.Printf("Wrote %s to %s\n", pluralize(len(paths), "report file"), writer.OutDir())
	for _, name := range []string{"summary_statistics", "results_table_csv", "results_table_xlsx", "comprehensive_report", "analysis_results", "html_report"} {
		if p, ok := paths[name]; ok {
			cmd.Printf("  %s\n", p)
		}
	}
	return nil
}
