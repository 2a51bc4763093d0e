package intel

import "fmt"

// Trace accumulates the human-readable narration of one pipeline run. It is
// returned unmodified to the caller for observability.
type Trace struct {
	lines []string
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Addf appends a formatted line.
func (t *Trace) Addf(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns the accumulated lines in order.
func (t *Trace) Lines() []string {
	return t.lines
}
