package domain

// Severity classifies a diagnostic event.
type Severity string

const (
	// SeverityInfo is an informational diagnostic.
	SeverityInfo Severity = "Info"
	// SeverityWarning is a diagnostic that does not mark the package as
	// erroneous.
	SeverityWarning Severity = "Warning"
	// SeverityError marks the evaluating package as containing errors.
	SeverityError Severity = "Error"
)

// Position is a source location inside a build file. Line and Column are
// 1-based; a zero Position means the location is unknown.
type Position struct {
	File   string
	Line   int
	Column int
}

// Event is a single diagnostic record. Low-level failures are attached to
// the evaluating package through events rather than aborting the build.
type Event struct {
	Severity Severity
	Pos      Position
	Message  string
}

// ErrorEvent builds an error-severity event.
func ErrorEvent(pos Position, message string) Event {
	return Event{Severity: SeverityError, Pos: pos, Message: message}
}

// WarningEvent builds a warning-severity event.
func WarningEvent(pos Position, message string) Event {
	return Event{Severity: SeverityWarning, Pos: pos, Message: message}
}
