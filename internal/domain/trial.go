package domain

import "fmt"

// Trial is a single reconciled trial record combining a PsychoPy log entry
// with the matching AFNI condition-timing file.
type Trial struct {
	ParticipantID     string    `json:"participant_id"`
	Condition         string    `json:"condition"`
	StimulusType      string    `json:"stimulus_type"`
	TrialNumber       int       `json:"trial_number"`
	RunNumber         int       `json:"run_number,omitempty"`
	RunLabel          string    `json:"run_label,omitempty"`
	TrialTimestamp    float64   `json:"trial_timestamp"`
	ImageFile         string    `json:"image_file,omitempty"`
	StimulusName      string    `json:"stimulus_name,omitempty"`
	StimulusOnset     *float64  `json:"stimulus_onset,omitempty"`
	StimulusOffset    *float64  `json:"stimulus_offset,omitempty"`
	ScanStart         *float64  `json:"scan_start,omitempty"`
	ScanEnd           *float64  `json:"scan_end,omitempty"`
	TimingPoints      []float64 `json:"timing_points,omitempty"`
	ConditionDuration *float64  `json:"condition_duration,omitempty"`
}

// StimulusDuration is offset minus onset, or nil when either is missing.
func (t *Trial) StimulusDuration() *float64 {
	if t.StimulusOnset == nil || t.StimulusOffset == nil {
		return nil
	}
	d := *t.StimulusOffset - *t.StimulusOnset
	return &d
}

// RelativeOnset is the stimulus onset relative to scan start, or nil when
// either is missing.
func (t *Trial) RelativeOnset() *float64 {
	if t.StimulusOnset == nil || t.ScanStart == nil {
		return nil
	}
	r := *t.StimulusOnset - *t.ScanStart
	return &r
}

// ConditionStimulus is the combined condition/stimulus grouping key.
func (t *Trial) ConditionStimulus() string {
	return fmt.Sprintf("%s_%s", t.Condition, t.StimulusType)
}
