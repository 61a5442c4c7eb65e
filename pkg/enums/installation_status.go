package enums

import "fmt"

// InstallationStatus tracks the lifecycle of a solar installation.
type InstallationStatus string

const (
	InstallationStatusScheduled InstallationStatus = "scheduled"
	InstallationStatusOngoing   InstallationStatus = "ongoing"
	InstallationStatusCompleted InstallationStatus = "completed"
)

var validInstallationStatuses = []InstallationStatus{
	InstallationStatusScheduled,
	InstallationStatusOngoing,
	InstallationStatusCompleted,
}

// String implements fmt.Stringer.
func (s InstallationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InstallationStatus.
func (s InstallationStatus) IsValid() bool {
	for _, candidate := range validInstallationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInstallationStatus converts raw input into an InstallationStatus.
func ParseInstallationStatus(value string) (InstallationStatus, error) {
	for _, candidate := range validInstallationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid installation status %q", value)
}
