package domain

// Experimental task conditions.
const (
	ConditionPassiveViewing = "passive_viewing"
	ConditionActiveGrasp    = "active_grasp"
	ConditionImaginedGrasp  = "imagined_grasp"
	ConditionClench         = "clench"
	ConditionUnknown        = "unknown"
)

// conditionCodes maps task conditions to the codes used in AFNI timing file
// names. Active grasp shares the IG timing files.
var conditionCodes = map[string]string{
	ConditionPassiveViewing: "PV",
	ConditionActiveGrasp:    "IG",
	ConditionImaginedGrasp:  "IG",
	ConditionClench:         "clench",
}

// ConditionCode returns the timing-file code for a task condition, or the
// empty string for an unrecognized condition.
func ConditionCode(condition string) string {
	return conditionCodes[condition]
}

// IsTool reports whether a stimulus type is a graspable tool, including the
// screen-optimized variant.
func IsTool(stimulusType string) bool {
	switch stimulusType {
	case "tool", "SCRtool":
		return true
	}
	return false
}

// IsShape reports whether a stimulus type is a neutral shape. Raw logs carry
// both capitalizations.
func IsShape(stimulusType string) bool {
	switch stimulusType {
	case "Shape", "shape", "SCRshape":
		return true
	}
	return false
}

// IsScreenOptimized reports whether a stimulus type is one of the
// screen-optimized (SCR) variants.
func IsScreenOptimized(stimulusType string) bool {
	return stimulusType == "SCRtool" || stimulusType == "SCRshape"
}

// IsMotorCondition reports whether a condition involves a motor task.
func IsMotorCondition(condition string) bool {
	switch condition {
	case ConditionActiveGrasp, ConditionImaginedGrasp, ConditionClench:
		return true
	}
	return false
}

// StimulusCategory collapses a stimulus type into "tool", "shape" or "other".
func StimulusCategory(stimulusType string) string {
	switch {
	case IsTool(stimulusType):
		return "tool"
	case IsShape(stimulusType):
		return "shape"
	default:
		return "other"
	}
}
