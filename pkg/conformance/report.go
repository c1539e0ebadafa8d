package conformance

import (
	"fmt"
	"strings"
)

// Issue is one schema violation. Pointer is an RFC 6901 JSON pointer into the
// payload; Rule names the schema keyword that failed (maxLength, enum, ...).
type Issue struct {
	Pointer string `json:"pointer" yaml:"pointer"`
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Reason  string `json:"reason" yaml:"reason"`
}

func (i Issue) String() string {
	where := i.Pointer
	if where == "" {
		where = "/"
	}
	if i.Rule == "" {
		return fmt.Sprintf("%s: %s", where, i.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", where, i.Reason, i.Rule)
}

// Report is the outcome of a check.
type Report struct {
	Schema string  `json:"schema" yaml:"schema"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// OK reports whether the payload conformed.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// Err returns nil for a clean report, otherwise an error listing every issue.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Report: r}
}

// Error wraps a failing report.
type Error struct {
	Report Report
}

func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Report.Issues))
	for _, issue := range e.Report.Issues {
		lines = append(lines, issue.String())
	}
	return fmt.Sprintf("conformance: %s: %d issue(s): %s", e.Report.Schema, len(lines), strings.Join(lines, "; "))
}
