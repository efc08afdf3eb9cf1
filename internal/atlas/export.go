package atlas

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// Catalogue resolves activation entries against the screenshots present in a
// raw data directory and exports images and statistical tables.
type Catalogue struct {
	rawDir      string
	activations []Activation
	logger      *zap.Logger
}

// NewCatalogue creates a catalogue over a raw data directory.
func NewCatalogue(rawDir string, activations []Activation, logger *zap.Logger) *Catalogue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalogue{rawDir: rawDir, activations: activations, logger: logger}
}

// Available returns the activations whose source screenshot exists on disk,
// and the conditions whose screenshot is missing. Missing images are
// informational, not an error: the statistical tables still apply.
func (c *Catalogue) Available() (found []Activation, missing []string) {
	for _, a := range c.activations {
		path := filepath.Join(c.rawDir, a.SourceImage)
		if _, err := os.Stat(path); err != nil {
			c.logger.Info("brain image not found, skipping", zap.String("path", path))
			missing = append(missing, a.Condition)
			continue
		}
		found = append(found, a)
	}
	return found, missing
}

// ExportImages copies the available screenshots into outDir under
// normalized "<condition>_brain_activation.png" names. Returns a map from
// condition to exported path.
func (c *Catalogue) ExportImages(outDir string) (map[string]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image output dir: %w", err)
	}

	exported := map[string]string{}
	found, _ := c.Available()
	for _, a := range found {
		src := filepath.Join(c.rawDir, a.SourceImage)
		dst := filepath.Join(outDir, a.Condition+"_brain_activation.png")
		if err := copyFile(src, dst); err != nil {
			c.logger.Warn("failed to export brain image",
				zap.String("condition", a.Condition), zap.Error(err))
			continue
		}
		exported[a.Condition] = dst
		c.logger.Debug("exported brain image", zap.String("path", dst))
	}
	return exported, nil
}

// RegionRow is one row of a per-condition statistical table.
type RegionRow struct {
	Region    string  `json:"region"`
	MNIX      int     `json:"mni_x"`
	MNIY      int     `json:"mni_y"`
	MNIZ      int     `json:"mni_z"`
	Threshold float64 `json:"threshold"`
	P         float64 `json:"p_value"`
	Q         float64 `json:"q_value"`
}

// StatTables builds the per-condition region tables.
func (c *Catalogue) StatTables() map[string][]RegionRow {
	tables := map[string][]RegionRow{}
	for _, a := range c.activations {
		rows := make([]RegionRow, 0, len(a.Regions))
		for _, r := range a.Regions {
			rows = append(rows, RegionRow{
				Region:    r.Name,
				MNIX:      r.MNI.X,
				MNIY:      r.MNI.Y,
				MNIZ:      r.MNI.Z,
				Threshold: r.Threshold,
				P:         r.P,
				Q:         r.Q,
			})
		}
		tables[a.Condition] = rows
	}
	return tables
}

// ExportStatTables writes the region tables as one CSV per condition plus a
// combined JSON document. Returns the written file paths.
func (c *Catalogue) ExportStatTables(outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create table output dir: %w", err)
	}

	tables := c.StatTables()
	var written []string

	for _, a := range sortedByCondition(c.activations) {
		path := filepath.Join(outDir, a.Condition+"_regions.csv")
		if err := writeRegionCSV(path, tables[a.Condition]); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	jsonPath := filepath.Join(outDir, "activation_tables.json")
	raw, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return written, fmt.Errorf("failed to encode activation tables: %w", err)
	}
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		return written, fmt.Errorf("failed to write activation tables: %w", err)
	}
	written = append(written, jsonPath)
	return written, nil
}

func writeRegionCSV(path string, rows []RegionRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create region table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"region", "mni_x", "mni_y", "mni_z", "threshold", "p_value", "q_value"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Region,
			strconv.Itoa(r.MNIX),
			strconv.Itoa(r.MNIY),
			strconv.Itoa(r.MNIZ),
			strconv.FormatFloat(r.Threshold, 'g', -1, 64),
			strconv.FormatFloat(r.P, 'g', -1, 64),
			strconv.FormatFloat(r.Q, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
