package enums

import "fmt"

// EscalationDecision records which party an admin ruled against. Ruling
// against a party deletes that party's account.
type EscalationDecision string

const (
	EscalationDecisionNone   EscalationDecision = "none"
	EscalationDecisionUser   EscalationDecision = "user"
	EscalationDecisionSeller EscalationDecision = "seller"
)

var validEscalationDecisions = []EscalationDecision{
	EscalationDecisionNone,
	EscalationDecisionUser,
	EscalationDecisionSeller,
}

// String implements fmt.Stringer.
func (d EscalationDecision) String() string {
	return string(d)
}

// IsValid reports whether the value is a known EscalationDecision.
func (d EscalationDecision) IsValid() bool {
	for _, candidate := range validEscalationDecisions {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseEscalationDecision converts raw input into an EscalationDecision.
func ParseEscalationDecision(value string) (EscalationDecision, error) {
	for _, candidate := range validEscalationDecisions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid escalation decision %q", value)
}
