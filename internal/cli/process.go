package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hernandezlab/toolrep/internal/domain"
	"github.com/hernandezlab/toolrep/internal/parser"
	"github.com/hernandezlab/toolrep/internal/ports"
	"github.com/hernandezlab/toolrep/internal/report"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parse behavioral data into a trial table",
	Long: `Parse PsychoPy logs and AFNI condition-timing files into a per-trial
table and write it as CSV and Excel, together with a data quality report.

Examples:
  toolrep process                    # All participants
  toolrep process --participant S03  # One participant
  toolrep process --data-root /study/data -o out/`,
	RunE: runProcess,
}

// Flags
var (
	processDataRoot    string
	processOutput      string
	processParticipant string
)

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processDataRoot, "data-root", "", "Data set root directory (default from TOOLREP_DATA_ROOT)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output directory (default from TOOLREP_OUTPUT_DIR)")
	processCmd.Flags().StringVarP(&processParticipant, "participant", "p", "", "Process a single participant (e.g. S03)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	app, err := NewAppContext(flagVerbose)
	if err != nil {
		return err
	}
	defer app.Close()

	data := parser.NewDataRoot(dataRoot(app, processDataRoot))
	builder := parser.NewBuilder(data, app.Logger)
	table := builder.BuildTable(processParticipant)

	m := ports.RunMetrics{
		FilesParsed:  int64(builder.FilesParsed),
		ParseErrors:  int64(builder.ParseErrors),
		TrialsLoaded: int64(table.Len()),
		Participants: len(table.Participants()),
	}
	if table.Len() == 0 {
		m.ExitReason = "no_data"
		app.ExportRun("process", m)
		return fmt.Errorf("no trials found under %s", data.RawPath())
	}

	writer := report.NewWriter(outputDir(app, processOutput), app.Logger).WithRunID(app.RunID)
	written, err := writer.WriteTrialData(table)
	if err != nil {
		m.ExitReason = "write_failed"
		app.ExportRun("process", m)
		return err
	}
	m.FilesWritten = int64(len(written))
	app.ExportRun("process", m)

	validation := domain.ValidateTiming(table)
	app.Logger.Info("processing complete",
		zap.Int("trials", table.Len()),
		zap.Int("participants", len(table.Participants())),
		zap.Int("timing_errors", len(validation.TimingErrors)))

	cmd.Printf("Processed %s from %s\n",
		pluralize(table.Len(), "trial"), pluralize(len(table.Participants()), "participant"))
	printRunBreakdown(cmd, table)
	for _, path := range written {
		cmd.Printf("  wrote %s\n", path)
	}
	return nil
}

// printRunBreakdown prints per-run trial counts for multi-run designs.
func printRunBreakdown(cmd *cobra.Command, table *domain.Table) {
	for _, run := range table.RunNumbers() {
		rt := table.Filter(func(tr *domain.Trial) bool { return tr.RunNumber == run })
		if label := rt.Trials[0].RunLabel; label != "" {
			cmd.Printf("  run %d (%s): %s\n", run, truncate(label, 32), pluralize(rt.Len(), "trial"))
		} else {
			cmd.Printf("  run %d: %s\n", run, pluralize(rt.Len(), "trial"))
		}
	}
}
