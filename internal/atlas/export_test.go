package atlas

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func testActivations() []Activation {
	return []Activation{
		{
			Condition:   "clench",
			Title:       "Clench",
			SourceImage: "clench.png",
			Regions: []Region{
				{Name: "M1", MNI: Coord{-40, 22, 62}, Threshold: 3.7, P: 0.001, Q: 0.01},
			},
		},
		{
			Condition:   "passive_viewing",
			Title:       "Passive",
			SourceImage: "missing.png",
			Regions: []Region{
				{Name: "LOC", MNI: Coord{22, 100, -2}, Threshold: 3.58, P: 0.0004, Q: 0.011},
			},
		},
	}
}

// newTestCatalogue writes a fake screenshot for the clench entry only.
func newTestCatalogue(t *testing.T) *Catalogue {
	t.Helper()
	rawDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(rawDir, "clench.png"), []byte("not a real png"), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewCatalogue(rawDir, testActivations(), nil)
}

func TestAvailable(t *testing.T) {
	cat := newTestCatalogue(t)

	found, missing := cat.Available()
	if len(found) != 1 || found[0].Condition != "clench" {
		t.Errorf("found = %+v, want clench only", found)
	}
	if len(missing) != 1 || missing[0] != "passive_viewing" {
		t.Errorf("missing = %v, want [passive_viewing]", missing)
	}
}

func TestExportImages(t *testing.T) {
	cat := newTestCatalogue(t)
	outDir := t.TempDir()

	exported, err := cat.ExportImages(outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exported) != 1 {
		t.Fatalf("exported = %v, want 1 entry", exported)
	}

	dst := exported["clench"]
	if filepath.Base(dst) != "clench_brain_activation.png" {
		t.Errorf("exported name = %s", filepath.Base(dst))
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("exported image unreadable: %v", err)
	}
	if string(data) != "not a real png" {
		t.Error("exported image content differs from source")
	}
}

func TestExportStatTables(t *testing.T) {
	cat := newTestCatalogue(t)
	outDir := t.TempDir()

	written, err := cat.ExportStatTables(outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One CSV per condition plus the combined JSON.
	if len(written) != 3 {
		t.Fatalf("written = %v, want 3 files", written)
	}

	f, err := os.Open(filepath.Join(outDir, "clench_regions.csv"))
	if err != nil {
		t.Fatalf("missing clench table: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("bad csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d csv rows, want header plus one region", len(records))
	}
	if records[1][0] != "M1" || records[1][1] != "-40" {
		t.Errorf("region row = %v", records[1])
	}

	raw, err := os.ReadFile(filepath.Join(outDir, "activation_tables.json"))
	if err != nil {
		t.Fatalf("missing combined json: %v", err)
	}
	var tables map[string][]RegionRow
	if err := json.Unmarshal(raw, &tables); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(tables) != 2 {
		t.Errorf("json has %d conditions, want 2", len(tables))
	}
	if tables["passive_viewing"][0].Region != "LOC" {
		t.Errorf("passive viewing rows = %+v", tables["passive_viewing"])
	}
}

func TestStatTables(t *testing.T) {
	tables := newTestCatalogue(t).StatTables()
	row := tables["clench"][0]
	if row.MNIX != -40 || row.MNIY != 22 || row.MNIZ != 62 {
		t.Errorf("MNI = (%d, %d, %d)", row.MNIX, row.MNIY, row.MNIZ)
	}
	if row.Threshold != 3.7 || row.P != 0.001 || row.Q != 0.01 {
		t.Errorf("stats = %+v", row)
	}
}
