package validate

import "fmt"

// Severity classifies a finding. Errors fail the run; warnings are
// reported only.
type Severity string

const (
	Warning Severity = "WARNING"
	Error   Severity = "ERROR"
)

// Component names the check that produced a finding.
type Component string

const (
	ComponentOffsets     Component = "offsets"
	ComponentIdentity    Component = "identity"
	ComponentReferences  Component = "references"
	ComponentConformance Component = "conformance"
	// ComponentInternal marks a check that panicked on a record. The record
	// cannot be trusted, so the finding is an error.
	ComponentInternal Component = "internal"
)

// Finding is one reported inconsistency. Split, Document and ID carry
// enough context for the finding to be actionable on its own, independent
// of emission order.
type Finding struct {
	Severity  Severity  `json:"severity"`
	Component Component `json:"component"`
	Split     string    `json:"split,omitempty"`
	Document  string    `json:"document,omitempty"`
	ID        string    `json:"id,omitempty"`
	Message   string    `json:"message"`
	Expected  string    `json:"expected,omitempty"`
	Actual    string    `json:"actual,omitempty"`
}

func (f Finding) String() string {
	s := fmt.Sprintf("[%s] %s", f.Severity, f.Component)
	if f.Split != "" {
		s += " split=" + f.Split
	}
	if f.Document != "" {
		s += " document=" + f.Document
	}
	if f.ID != "" {
		s += " id=" + f.ID
	}
	s += ": " + f.Message
	if f.Expected != "" || f.Actual != "" {
		s += fmt.Sprintf(" (expected %q, got %q)", f.Expected, f.Actual)
	}
	return s
}
