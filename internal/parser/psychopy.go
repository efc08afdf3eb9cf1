// Package parser reads PsychoPy experiment logs and AFNI condition-timing
// files and reconciles them into per-trial records.
package parser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hernandezlab/toolrep/internal/domain"
)

// LogFile holds everything extracted from one PsychoPy .log file.
type LogFile struct {
	Path          string
	ParticipantID string
	Condition     string
	ScanStart     *float64
	ScanEnd       *float64
	Trials        []LogTrial
	Stimuli       []StimulusEvent
	Keypresses    []Keypress
}

// LogTrial is one "New trial" line.
type LogTrial struct {
	Timestamp    float64
	Rep          int // -1 when absent
	Index        int // -1 when absent
	ImageFile    string
	StimulusType string
}

// StimulusEvent is one "autoDraw = True" line after scan start.
type StimulusEvent struct {
	Stimulus string
	Onset    float64
}

// Keypress is one keyboard response line.
type Keypress struct {
	Key       string
	Timestamp float64
}

var (
	reParticipant = regexp.MustCompile(`S(\d+)`)
	reLeadingNum  = regexp.MustCompile(`^(\d+)_`)
	reNameNum     = regexp.MustCompile(`(\w+)_(\d+)_`)
	reRep         = regexp.MustCompile(`rep=(\d+)`)
	reIndex       = regexp.MustCompile(`index=(\d+)`)
	reImageFile   = regexp.MustCompile(`imagefile', '([^']+)'`)
	reStimType    = regexp.MustCompile(`type', '([^']+)'`)
	reAutoDraw    = regexp.MustCompile(`(\w+): autoDraw = True`)
	reKeypress    = regexp.MustCompile(`Keypress: (\w+)`)
)

// ParseLog parses a PsychoPy log file: tab-separated lines of
// timestamp, level and message. Trial and stimulus events are only tracked
// after the scanner trigger ("start of scan") has been seen. Malformed lines
// are skipped.
func ParseLog(path string) (*LogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()

	lf := &LogFile{
		Path:          path,
		ParticipantID: ParticipantFromFilename(filepath.Base(path)),
		Condition:     ConditionFromFilename(filepath.Base(path)),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	scanStarted := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		ts, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			continue
		}
		content := ""
		if len(parts) > 2 {
			content = strings.Join(parts[2:], "\t")
		}

		if strings.Contains(content, "start of scan") {
			t := ts
			lf.ScanStart = &t
			scanStarted = true
		}
		if scanStarted && strings.Contains(content, "window1: mouseVisible = True") {
			t := ts
			lf.ScanEnd = &t
		}
		if !scanStarted {
			continue
		}

		if strings.Contains(content, "New trial") {
			lf.Trials = append(lf.Trials, parseTrialLine(content, ts))
		}
		if strings.Contains(content, "autoDraw = True") {
			if m := reAutoDraw.FindStringSubmatch(content); m != nil {
				lf.Stimuli = append(lf.Stimuli, StimulusEvent{Stimulus: m[1], Onset: ts})
			}
		}
		if m := reKeypress.FindStringSubmatch(content); m != nil {
			lf.Keypresses = append(lf.Keypresses, Keypress{Key: m[1], Timestamp: ts})
		}
	}
	if err := scanner.Err(); err != nil {
		return lf, fmt.Errorf("failed to read log: %w", err)
	}
	return lf, nil
}

func parseTrialLine(content string, ts float64) LogTrial {
	t := LogTrial{Timestamp: ts, Rep: -1, Index: -1}
	if m := reRep.FindStringSubmatch(content); m != nil {
		t.Rep, _ = strconv.Atoi(m[1])
	}
	if m := reIndex.FindStringSubmatch(content); m != nil {
		t.Index, _ = strconv.Atoi(m[1])
	}
	// The trial payload is a repr'd OrderedDict, so the fields arrive as
	// quoted key/value pairs.
	if m := reImageFile.FindStringSubmatch(content); m != nil {
		t.ImageFile = m[1]
	}
	if m := reStimType.FindStringSubmatch(content); m != nil {
		t.StimulusType = m[1]
	}
	return t
}

// ParticipantFromFilename derives a normalized participant ID (S01, S02...)
// from a file name. Returns "Unknown" when no pattern matches.
func ParticipantFromFilename(filename string) string {
	if m := reParticipant.FindStringSubmatch(filename); m != nil {
		return "S" + zfill(m[1], 2)
	}
	if m := reLeadingNum.FindStringSubmatch(filename); m != nil {
		return "S" + zfill(m[1], 2)
	}
	// Names like "Annika_1_..." use the trailing number as the subject.
	if m := reNameNum.FindStringSubmatch(filename); m != nil {
		return "S" + zfill(m[2], 2)
	}
	return "Unknown"
}

// ConditionFromFilename derives the task condition from a log file name.
func ConditionFromFilename(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "passive") || strings.Contains(lower, "pv"):
		return domain.ConditionPassiveViewing
	case strings.Contains(lower, "active") || strings.Contains(lower, "grasp"):
		return domain.ConditionActiveGrasp
	case strings.Contains(lower, "clench"):
		return domain.ConditionClench
	case strings.Contains(lower, "imagined") || strings.Contains(lower, "ig"):
		return domain.ConditionImaginedGrasp
	default:
		return domain.ConditionUnknown
	}
}

func zfill(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
