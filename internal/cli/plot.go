package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hernandezlab/toolrep/internal/parser"
	"github.com/hernandezlab/toolrep/internal/plot"
	"github.com/hernandezlab/toolrep/internal/ports"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render behavioral analysis figures",
	Long: `Render the behavioral analysis figures as PNG files: onset box plots
by stimulus category and by task condition, the onset distribution, and
trial counts per condition.

Examples:
  toolrep plot
  toolrep plot -o figures/`,
	RunE: runPlot,
}

// Flags
var (
	plotDataRoot string
	plotOutput   string
)

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVar(&plotDataRoot, "data-root", "", "Data set root directory (default from TOOLREP_DATA_ROOT)")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "Output directory (default from TOOLREP_OUTPUT_DIR)")
}

func runPlot(cmd *cobra.Command, args []string) error {
	app, err := NewAppContext(flagVerbose)
	if err != nil {
		return err
	}
	defer app.Close()

	data := parser.NewDataRoot(dataRoot(app, plotDataRoot))
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
		app.ExportRun("plot", m)
		return fmt.Errorf("no trials found under %s", data.RawPath())
	}

	renderer := plot.NewRenderer(outputDir(app, plotOutput), app.Logger).
		WithSize(app.Config.Figures.Width, app.Config.Figures.Height)
	paths, err := renderer.RenderAll(table)
	if err != nil {
		m.ExitReason = "write_failed"
		app.ExportRun("plot", m)
		return err
	}
	m.FilesWritten = int64(len(paths))
	app.ExportRun("plot", m)

	cmd.Printf("Rendered %s\n", pluralize(len(paths), "figure"))
	for _, p := range paths {
		cmd.Printf("  %s\n", p)
	}
	return nil
}
