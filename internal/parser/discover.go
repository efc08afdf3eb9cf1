package parser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DataRoot describes the fixed on-disk layout: raw inputs under data/raw and
// generated artifacts under data/processed.
type DataRoot struct {
	Root string
}

// NewDataRoot wraps a data directory.
func NewDataRoot(root string) *DataRoot {
	return &DataRoot{Root: root}
}

// RawPath is the raw input directory.
func (d *DataRoot) RawPath() string { return filepath.Join(d.Root, "raw") }

// ProcessedPath is the artifact output directory.
func (d *DataRoot) ProcessedPath() string { return filepath.Join(d.Root, "processed") }

// Participants lists the S## participant directories under raw, sorted.
func (d *DataRoot) Participants() []string {
	entries, err := os.ReadDir(d.RawPath())
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "S") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// LogFiles lists the PsychoPy logs in a participant directory.
func (d *DataRoot) LogFiles(participantID string) []string {
	matches, _ := filepath.Glob(filepath.Join(d.RawPath(), participantID, "*.log"))
	sort.Strings(matches)
	return matches
}

// ConditionFiles lists the AFNI timing files for a participant. Raw data
// ships with both "Condition Files" and "condition_files" directory names.
func (d *DataRoot) ConditionFiles(participantID string) []string {
	var out []string
	for _, dir := range []string{"Condition Files", "condition_files"} {
		matches, _ := filepath.Glob(filepath.Join(d.RawPath(), participantID, dir, "*.txt"))
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out
}

// s01Run describes one run of the complete S01 experimental design.
type s01Run struct {
	dir       string
	condition string
	number    int
	label     string
	timing    []string
}

// s01Runs is the complete three-run design recorded for the representative
// subject. Timing file names are fixed by the AFNI preprocessing.
var s01Runs = []s01Run{
	{
		dir:       "run01_passive_viewing",
		condition: "passive_viewing",
		number:    1,
		label:     "Passive Viewing Task",
		timing:    []string{"S01_PV_tool.txt", "S01_PV_Shape.txt", "S01_PV_SCRtool.txt", "S01_PV_SCRshape.txt"},
	},
	{
		dir:       "run02_imagined_grasp",
		condition: "imagined_grasp",
		number:    2,
		label:     "Imagined Grasp Task",
		timing:    []string{"S01_IG_tool.txt", "S01_IG_shape.txt", "S01_IG_SCRtool.txt", "S01_IG_SCRshape.txt"},
	},
	{
		dir:       "run03_clench",
		condition: "clench",
		number:    3,
		label:     "Clench Localizer Task",
		timing:    []string{"S01_clench.txt"},
	},
}

// s01RunLog finds the log file for one S01 run; empty when missing.
func (d *DataRoot) s01RunLog(run s01Run) string {
	matches, _ := filepath.Glob(filepath.Join(d.RawPath(), "S01", "experimental_runs", run.dir, "*.log"))
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}

// s01TimingFiles resolves the fixed timing file set for one S01 run,
// skipping files that do not exist.
func (d *DataRoot) s01TimingFiles(run s01Run) []string {
	var out []string
	dir := filepath.Join(d.RawPath(), "S01", "condition_files")
	for _, name := range run.timing {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
