package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// TimingFile holds one AFNI condition-timing file (e.g. S01_PV_tool.txt):
// whitespace-separated stimulus onsets in seconds, optionally suffixed with
// a ":duration" marker. A file containing only "*" means the condition did
// not occur in the run.
type TimingFile struct {
	Path          string
	ParticipantID string
	ConditionCode string // PV, IG, ...
	StimulusType  string // tool, Shape, SCRtool, SCRshape, ...
	Onsets        []float64
	Duration      *float64 // max onset minus min onset
}

var reTimingName = regexp.MustCompile(`^S\d+_(\w+)_(\w+)\.txt$`)

// ParseTiming parses one condition-timing file. Unparseable tokens are
// skipped rather than failing the file.
func ParseTiming(path string) (*TimingFile, error) {
	tf := &TimingFile{Path: path, ConditionCode: "unknown", StimulusType: "unknown"}

	name := filepath.Base(path)
	tf.ParticipantID = ParticipantFromFilename(name)
	if m := reTimingName.FindStringSubmatch(name); m != nil {
		tf.ConditionCode, tf.StimulusType = m[1], m[2]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return tf, fmt.Errorf("failed to read timing file: %w", err)
	}

	content := strings.TrimSpace(string(raw))
	if content == "" || strings.HasPrefix(content, "*") {
		return tf, nil
	}

	for _, token := range strings.Fields(content) {
		// Strip the ":16"-style duration suffix.
		value := strings.SplitN(token, ":", 2)[0]
		onset, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		tf.Onsets = append(tf.Onsets, onset)
	}

	if len(tf.Onsets) > 0 {
		min, max := tf.Onsets[0], tf.Onsets[0]
		for _, o := range tf.Onsets {
			if o < min {
				min = o
			}
			if o > max {
				max = o
			}
		}
		d := max - min
		tf.Duration = &d
	}
	return tf, nil
}
