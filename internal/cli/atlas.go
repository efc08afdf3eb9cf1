package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hernandezlab/toolrep/internal/atlas"
	"github.com/hernandezlab/toolrep/internal/parser"
	"github.com/hernandezlab/toolrep/internal/ports"
)

var atlasCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Catalogue brain activation images and coordinates",
	Long: `Catalogue the brain activation images belonging to each task condition.

Prints the condition-to-region mapping with MNI coordinates, copies the
available activation images under publication names, and writes per-condition
coordinate tables as CSV plus a combined JSON table.

The built-in mapping can be replaced with --atlas-file or a YAML file at
$XDG_CONFIG_HOME/toolrep/atlas.yaml.

Examples:
  toolrep atlas
  toolrep atlas --export -o publication/
  toolrep atlas --atlas-file custom_atlas.yaml`,
	RunE: runAtlas,
}

// Flags
var (
	atlasDataRoot string
	atlasOutput   string
	atlasFile     string
	atlasExport   bool
)

func init() {
	rootCmd.AddCommand(atlasCmd)

	atlasCmd.Flags().StringVar(&atlasDataRoot, "data-root", "", "Data set root directory (default from TOOLREP_DATA_ROOT)")
	atlasCmd.Flags().StringVarP(&atlasOutput, "output", "o", "", "Output directory (default from TOOLREP_OUTPUT_DIR)")
	atlasCmd.Flags().StringVar(&atlasFile, "atlas-file", "", "YAML file overriding the built-in activation mapping")
	atlasCmd.Flags().BoolVar(&atlasExport, "export", false, "Copy images and write coordinate tables")
}

func runAtlas(cmd *cobra.Command, args []string) error {
	app, err := NewAppContext(flagVerbose)
	if err != nil {
		return err
	}
	defer app.Close()

	if atlasFile != "" {
		app.Config.Paths.AtlasFile = atlasFile
	}
	activations, err := loadAtlas(app)
	if err != nil {
		return err
	}

	data := parser.NewDataRoot(dataRoot(app, atlasDataRoot))
	cat := atlas.NewCatalogue(data.RawPath(), activations, app.Logger)

	cmd.Print(atlas.Summary(activations))
	found, missing := cat.Available()
	cmd.Printf("\nImages found: %d of %d\n", len(found), len(activations))
	for _, name := range missing {
		cmd.Printf("  missing: %s\n", name)
	}

	if !atlasExport {
		return nil
	}

	outDir := outputDir(app, atlasOutput)
	var m ports.RunMetrics

	images, err := cat.ExportImages(outDir)
	if err != nil {
		m.ExitReason = "write_failed"
		app.ExportRun("atlas", m)
		return err
	}
	m.FilesWritten += int64(len(images))

	tables, err := cat.ExportStatTables(outDir)
	if err != nil {
		m.ExitReason = "write_failed"
		app.ExportRun("atlas", m)
		return err
	}
	m.FilesWritten += int64(len(tables))
	app.ExportRun("atlas", m)

	app.Logger.Info("atlas export complete",
		zap.Int("images", len(images)),
		zap.Int("tables", len(tables)))
	cmd.Printf("Exported %s and %s to %s\n",
		pluralize(len(images), "image"), pluralize(len(tables), "table"), outDir)
	return nil
}
