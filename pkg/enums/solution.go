package enums

import "fmt"

// SolutionType classifies a solar system offering by grid connectivity.
type SolutionType string

const (
	SolutionTypeOnGrid  SolutionType = "on_grid"
	SolutionTypeOffGrid SolutionType = "off_grid"
	SolutionTypeHybrid  SolutionType = "hybrid"
)

var validSolutionTypes = []SolutionType{
	SolutionTypeOnGrid,
	SolutionTypeOffGrid,
	SolutionTypeHybrid,
}

// String implements fmt.Stringer.
func (s SolutionType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SolutionType.
func (s SolutionType) IsValid() bool {
	for _, candidate := range validSolutionTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSolutionType converts raw input into a SolutionType.
func ParseSolutionType(value string) (SolutionType, error) {
	for _, candidate := range validSolutionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid solution type %q", value)
}

// MountingStructure names the supported panel mounting styles.
type MountingStructure string

const (
	MountingStructureRaised      MountingStructure = "raised"
	MountingStructureRoofMounted MountingStructure = "roof_mounted"
)

var validMountingStructures = []MountingStructure{
	MountingStructureRaised,
	MountingStructureRoofMounted,
}

// String implements fmt.Stringer.
func (m MountingStructure) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MountingStructure.
func (m MountingStructure) IsValid() bool {
	for _, candidate := range validMountingStructures {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMountingStructure converts raw input into a MountingStructure.
func ParseMountingStructure(value string) (MountingStructure, error) {
	for _, candidate := range validMountingStructures {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mounting structure %q", value)
}
