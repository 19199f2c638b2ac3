// Package severity provides severity levels for issues reported while
// validating Conjure definitions and generating code from them.
//
// Levels, from least to most severe:
//   - SeverityInfo: notes about choices the generator made
//   - SeverityWarning: constructs that generate but may surprise the caller
//   - SeverityError: definition problems that make the IR invalid
//   - SeverityCritical: constructs that cannot be generated at all
package severity

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError indicates a definition problem that makes the IR invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates something that generates but deserves attention.
	SeverityWarning

	// SeverityInfo indicates an informational note.
	SeverityInfo

	// SeverityCritical indicates a construct that was skipped during generation.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Blocking reports whether an issue of this severity makes the output unusable.
func (s Severity) Blocking() bool {
	return s == SeverityError || s == SeverityCritical
}
