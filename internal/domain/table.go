package domain

import "sort"

// Table is an ordered collection of trial records. It plays the role of the
// per-trial dataframe: filtering, grouping and column extraction.
type Table struct {
	Trials []Trial
}

// NewTable builds a table sorted by participant then trial number.
func NewTable(trials []Trial) *Table {
	t := &Table{Trials: trials}
	t.Sort()
	return t
}

// Sort orders trials by participant ID, then trial number.
func (t *Table) Sort() {
	sort.SliceStable(t.Trials, func(i, j int) bool {
		a, b := t.Trials[i], t.Trials[j]
		if a.ParticipantID != b.ParticipantID {
			return a.ParticipantID < b.ParticipantID
		}
		return a.TrialNumber < b.TrialNumber
	})
}

// Len returns the number of trials.
func (t *Table) Len() int { return len(t.Trials) }

// Filter returns a new table containing the trials for which keep is true.
func (t *Table) Filter(keep func(*Trial) bool) *Table {
	out := make([]Trial, 0, len(t.Trials))
	for i := range t.Trials {
		if keep(&t.Trials[i]) {
			out = append(out, t.Trials[i])
		}
	}
	return &Table{Trials: out}
}

// ByCondition returns the trials for one task condition.
func (t *Table) ByCondition(condition string) *Table {
	return t.Filter(func(tr *Trial) bool { return tr.Condition == condition })
}

// ByStimulusType returns the trials for one stimulus type.
func (t *Table) ByStimulusType(stimulusType string) *Table {
	return t.Filter(func(tr *Trial) bool { return tr.StimulusType == stimulusType })
}

// Tools returns the tool trials (standard and screen-optimized).
func (t *Table) Tools() *Table {
	return t.Filter(func(tr *Trial) bool { return IsTool(tr.StimulusType) })
}

// Shapes returns the shape trials (standard and screen-optimized).
func (t *Table) Shapes() *Table {
	return t.Filter(func(tr *Trial) bool { return IsShape(tr.StimulusType) })
}

// Motor returns trials from motor task conditions.
func (t *Table) Motor() *Table {
	return t.Filter(func(tr *Trial) bool { return IsMotorCondition(tr.Condition) })
}

// NonMotor returns trials from non-motor task conditions.
func (t *Table) NonMotor() *Table {
	return t.Filter(func(tr *Trial) bool { return !IsMotorCondition(tr.Condition) })
}

// Onsets extracts the non-missing stimulus onset values.
func (t *Table) Onsets() []float64 {
	out := make([]float64, 0, len(t.Trials))
	for i := range t.Trials {
		if t.Trials[i].StimulusOnset != nil {
			out = append(out, *t.Trials[i].StimulusOnset)
		}
	}
	return out
}

// Durations extracts the non-missing stimulus durations.
func (t *Table) Durations() []float64 {
	out := make([]float64, 0, len(t.Trials))
	for i := range t.Trials {
		if d := t.Trials[i].StimulusDuration(); d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// Participants returns the distinct participant IDs, sorted.
func (t *Table) Participants() []string {
	return t.distinct(func(tr *Trial) string { return tr.ParticipantID })
}

// Conditions returns the distinct task conditions, sorted.
func (t *Table) Conditions() []string {
	return t.distinct(func(tr *Trial) string { return tr.Condition })
}

// StimulusTypes returns the distinct stimulus types, sorted.
func (t *Table) StimulusTypes() []string {
	return t.distinct(func(tr *Trial) string { return tr.StimulusType })
}

// RunNumbers returns the distinct run numbers, sorted.
func (t *Table) RunNumbers() []int {
	seen := map[int]bool{}
	for i := range t.Trials {
		if t.Trials[i].RunNumber != 0 {
			seen[t.Trials[i].RunNumber] = true
		}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// GroupByParticipant splits the table per participant ID.
func (t *Table) GroupByParticipant() map[string]*Table {
	groups := map[string]*Table{}
	for i := range t.Trials {
		id := t.Trials[i].ParticipantID
		if groups[id] == nil {
			groups[id] = &Table{}
		}
		groups[id].Trials = append(groups[id].Trials, t.Trials[i])
	}
	return groups
}

func (t *Table) distinct(key func(*Trial) string) []string {
	seen := map[string]bool{}
	for i := range t.Trials {
		if k := key(&t.Trials[i]); k != "" {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
