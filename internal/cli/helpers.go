package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hernandezlab/toolrep/internal/atlas"
	"github.com/hernandezlab/toolrep/internal/util"
)

// dataRoot resolves the data root: flag first, then configuration.
func dataRoot(app *AppContext, flag string) string {
	if flag != "" {
		return flag
	}
	return app.Config.Paths.DataRoot
}

// outputDir resolves the output directory: flag first, then configuration.
func outputDir(app *AppContext, flag string) string {
	if flag != "" {
		return flag
	}
	return app.Config.Paths.OutputDir
}

// loadAtlas returns the activation mapping, preferring an explicit override
// file, then a per-user config file, then the built-in table.
func loadAtlas(app *AppContext) ([]atlas.Activation, error) {
	if path := app.Config.Paths.AtlasFile; path != "" {
		return atlas.LoadYAML(path)
	}
	if dir, err := util.GetXDGConfigDir(); err == nil {
		path := filepath.Join(dir, "atlas.yaml")
		if _, err := os.Stat(path); err == nil {
			return atlas.LoadYAML(path)
		}
	}
	return atlas.Default(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func pluralize(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
