package enums

import "fmt"

// SurveyStatus tracks whether a scheduled survey has been carried out.
type SurveyStatus string

const (
	SurveyStatusRequested SurveyStatus = "requested"
	SurveyStatusCompleted SurveyStatus = "completed"
)

var validSurveyStatuses = []SurveyStatus{
	SurveyStatusRequested,
	SurveyStatusCompleted,
}

// String implements fmt.Stringer.
func (s SurveyStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SurveyStatus.
func (s SurveyStatus) IsValid() bool {
	for _, candidate := range validSurveyStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSurveyStatus converts raw input into a SurveyStatus.
func ParseSurveyStatus(value string) (SurveyStatus, error) {
	for _, candidate := range validSurveyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid survey status %q", value)
}

// SurveyType distinguishes house inspections from warehouse inspections.
type SurveyType string

const (
	SurveyTypeHouse     SurveyType = "house"
	SurveyTypeWarehouse SurveyType = "warehouse"
)

var validSurveyTypes = []SurveyType{
	SurveyTypeHouse,
	SurveyTypeWarehouse,
}

// String implements fmt.Stringer.
func (s SurveyType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SurveyType.
func (s SurveyType) IsValid() bool {
	for _, candidate := range validSurveyTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSurveyType converts raw input into a SurveyType.
func ParseSurveyType(value string) (SurveyType, error) {
	for _, candidate := range validSurveyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid survey type %q", value)
}

// SurveyTarget names the identity collection a survey is scheduled against.
type SurveyTarget string

const (
	SurveyTargetUser   SurveyTarget = "user"
	SurveyTargetSeller SurveyTarget = "seller"
)

var validSurveyTargets = []SurveyTarget{
	SurveyTargetUser,
	SurveyTargetSeller,
}

// String implements fmt.Stringer.
func (s SurveyTarget) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SurveyTarget.
func (s SurveyTarget) IsValid() bool {
	for _, candidate := range validSurveyTargets {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSurveyTarget converts raw input into a SurveyTarget.
func ParseSurveyTarget(value string) (SurveyTarget, error) {
	for _, candidate := range validSurveyTargets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid survey target %q", value)
}
