package diag

import (
	"argon/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Error lets a diagnostic travel through error returns.
func (d Diagnostic) Error() string {
	return d.Code.ID() + ": " + d.Message
}
