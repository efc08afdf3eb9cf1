package domain

import (
	"reflect"
	"testing"
)

func sampleTable() *Table {
	return NewTable([]Trial{
		{ParticipantID: "S02", Condition: ConditionClench, StimulusType: "SCRtool", TrialNumber: 1, StimulusOnset: fptr(50)},
		{ParticipantID: "S01", Condition: ConditionPassiveViewing, StimulusType: "tool", TrialNumber: 2, StimulusOnset: fptr(12), StimulusOffset: fptr(14), RunNumber: 1},
		{ParticipantID: "S01", Condition: ConditionPassiveViewing, StimulusType: "Shape", TrialNumber: 1, StimulusOnset: fptr(10), StimulusOffset: fptr(11.5), RunNumber: 1},
		{ParticipantID: "S01", Condition: ConditionImaginedGrasp, StimulusType: "SCRshape", TrialNumber: 3, RunNumber: 2},
	})
}

func TestNewTable_Sorts(t *testing.T) {
	tbl := sampleTable()
	if tbl.Trials[0].ParticipantID != "S01" || tbl.Trials[0].TrialNumber != 1 {
		t.Errorf("first trial = %s #%d, want S01 #1",
			tbl.Trials[0].ParticipantID, tbl.Trials[0].TrialNumber)
	}
	if tbl.Trials[3].ParticipantID != "S02" {
		t.Errorf("last trial participant = %s, want S02", tbl.Trials[3].ParticipantID)
	}
}

func TestTableFilters(t *testing.T) {
	tbl := sampleTable()

	if got := tbl.ByCondition(ConditionPassiveViewing).Len(); got != 2 {
		t.Errorf("ByCondition(passive_viewing).Len = %d, want 2", got)
	}
	if got := tbl.ByStimulusType("tool").Len(); got != 1 {
		t.Errorf("ByStimulusType(tool).Len = %d, want 1", got)
	}
	if got := tbl.Tools().Len(); got != 2 {
		t.Errorf("Tools().Len = %d, want 2", got)
	}
	if got := tbl.Shapes().Len(); got != 2 {
		t.Errorf("Shapes().Len = %d, want 2", got)
	}
	if got := tbl.Motor().Len(); got != 2 {
		t.Errorf("Motor().Len = %d, want 2", got)
	}
	if got := tbl.NonMotor().Len(); got != 2 {
		t.Errorf("NonMotor().Len = %d, want 2", got)
	}
}

func TestTableColumns(t *testing.T) {
	tbl := sampleTable()

	if got := tbl.Onsets(); len(got) != 3 {
		t.Errorf("Onsets = %v, want 3 values", got)
	}
	if got := tbl.Durations(); len(got) != 2 {
		t.Errorf("Durations = %v, want 2 values", got)
	}
	if got := tbl.Participants(); !reflect.DeepEqual(got, []string{"S01", "S02"}) {
		t.Errorf("Participants = %v", got)
	}
	want := []string{ConditionClench, ConditionImaginedGrasp, ConditionPassiveViewing}
	if got := tbl.Conditions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Conditions = %v, want %v", got, want)
	}
	if got := tbl.RunNumbers(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("RunNumbers = %v, want [1 2]", got)
	}
}

func TestGroupByParticipant(t *testing.T) {
	groups := sampleTable().GroupByParticipant()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups["S01"].Len() != 3 {
		t.Errorf("S01 group has %d trials, want 3", groups["S01"].Len())
	}
	if groups["S02"].Len() != 1 {
		t.Errorf("S02 group has %d trials, want 1", groups["S02"].Len())
	}
}
