package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hernandezlab/toolrep/internal/atlas"
	"github.com/hernandezlab/toolrep/internal/parser"
	"github.com/hernandezlab/toolrep/internal/plot"
	"github.com/hernandezlab/toolrep/internal/ports"
	"github.com/hernandezlab/toolrep/internal/report"
	"github.com/hernandezlab/toolrep/internal/stats"
	"github.com/hernandezlab/toolrep/internal/util"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the complete analysis pipeline",
	Long: `Run every stage of the behavioral analysis pipeline.

Stages:
  1. Parse logs and condition files into a trial table
  2. Catalogue brain activation images
  3. Run the planned statistical analyses
  4. Render figures
  5. Write publication tables and reports

Examples:
  toolrep run
  toolrep run --data-root /study/data
  toolrep run --skip-atlas`,
	RunE: runPipeline,
}

// Flags
var (
	runDataRoot  string
	runOutput    string
	runSkipAtlas bool
	runSkipPlots bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runDataRoot, "data-root", "", "Data set root directory (default from TOOLREP_DATA_ROOT)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output directory (default from TOOLREP_OUTPUT_DIR)")
	runCmd.Flags().BoolVar(&runSkipAtlas, "skip-atlas", false, "Skip the brain image catalogue stage")
	runCmd.Flags().BoolVar(&runSkipPlots, "skip-plots", false, "Skip figure rendering")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	app, err := NewAppContext(flagVerbose)
	if err != nil {
		return err
	}
	defer app.Close()

	data := parser.NewDataRoot(dataRoot(app, runDataRoot))
	outDir := outputDir(app, runOutput)
	var m ports.RunMetrics

	// Stage 1: trial table
	app.Logger.Info("stage 1/5: processing behavioral data", zap.String("root", data.Root))
	builder := parser.NewBuilder(data, app.Logger)
	table := builder.BuildTable("")
	m.FilesParsed = int64(builder.FilesParsed)
	m.ParseErrors = int64(builder.ParseErrors)
	m.TrialsLoaded = int64(table.Len())
	m.Participants = len(table.Participants())
	if table.Len() == 0 {
		m.ExitReason = "no_data"
		app.ExportRun("run", m)
		return fmt.Errorf("no trials found under %s", data.RawPath())
	}

	writer := report.NewWriter(outDir, app.Logger).WithRunID(app.RunID)
	written, err := writer.WriteTrialData(table)
	if err != nil {
		m.ExitReason = "write_failed"
		app.ExportRun("run", m)
		return err
	}
	m.FilesWritten += int64(len(written))

	// Stage 2: brain image catalogue
	if runSkipAtlas {
		app.Logger.Info("stage 2/5: brain image catalogue skipped")
	} else {
		app.Logger.Info("stage 2/5: cataloguing brain activation images")
		n, err := runAtlasStage(app, data, outDir)
		if err != nil {
			app.Logger.Warn("brain image catalogue failed", zap.Error(err))
		}
		m.FilesWritten += int64(n)
	}

	// Stage 3: statistics
	app.Logger.Info("stage 3/5: running statistical analyses")
	analyzer := stats.NewAnalyzer(table, app.Logger)
	rep := analyzer.ComprehensiveReport()
	m.AnalysesRun = countAnalyses(rep)

	// Stage 4: figures
	if runSkipPlots {
		app.Logger.Info("stage 4/5: figures skipped")
	} else {
		app.Logger.Info("stage 4/5: rendering figures")
		renderer := plot.NewRenderer(outDir, app.Logger).
			WithSize(app.Config.Figures.Width, app.Config.Figures.Height)
		figures, err := renderer.RenderAll(table)
		if err != nil {
			app.Logger.Warn("figure rendering failed", zap.Error(err))
		}
		m.FilesWritten += int64(len(figures))
	}

	// Stage 5: publication outputs
	app.Logger.Info("stage 5/5: writing publication outputs", zap.String("dir", outDir))
	paths, err := writer.WritePublication(table, rep)
	if err != nil {
		m.ExitReason = "write_failed"
		app.ExportRun("run", m)
		return err
	}
	m.FilesWritten += int64(len(paths))
	if htmlPath, err := writer.WriteHTML(table, rep); err != nil {
		app.Logger.Warn("HTML report failed", zap.Error(err))
	} else {
		m.FilesWritten++
		paths["html_report"] = htmlPath
	}

	app.ExportRun("run", m)
	printPipelineSummary(cmd, table.Len(), m, paths)
	return nil
}

func runAtlasStage(app *AppContext, data *parser.DataRoot, outDir string) (int, error) {
	activations, err := loadAtlas(app)
	if err != nil {
		return 0, err
	}
	cat := atlas.NewCatalogue(data.RawPath(), activations, app.Logger)

	var written int
	images, err := cat.ExportImages(outDir)
	written += len(images)
	if err != nil {
		return written, err
	}
	tables, err := cat.ExportStatTables(outDir)
	written += len(tables)
	return written, err
}

func countAnalyses(rep *stats.Report) int64 {
	var n int64
	if rep.RQ1 != nil {
		n++
	}
	if rep.RQ2 != nil {
		n++
	}
	if rep.RQ3 != nil {
		n++
	}
	if rep.MotorActivation != nil {
		n++
	}
	if rep.FunctionalStructural != nil {
		n++
	}
	return n
}

func printPipelineSummary(cmd *cobra.Command, trials int, m ports.RunMetrics, paths map[string]string) {
	cmd.Printf("Pipeline complete: %s trials from %d participants\n",
		util.FormatCount(trials), m.Participants)
	cmd.Printf("  files parsed: %d (%d errors)\n", m.FilesParsed, m.ParseErrors)
	cmd.Printf("  files written: %d\n", m.FilesWritten)
	for _, name := range []string{"results_table_csv", "comprehensive_report", "analysis_results", "html_report"} {
		if p, ok := paths[name]; ok {
			cmd.Printf("  %s: %s\n", name, p)
		}
	}
}
