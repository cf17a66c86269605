// ABOUTME: Diagnostic types shared by the glossary and weekly content validators.
// ABOUTME: Severity levels, error detection, and deterministic ordering of findings.
package lint

import "sort"

// Severity classifies a diagnostic finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is a single validation finding against a content file.
type Diagnostic struct {
	Severity Severity
	Source   string // file the finding refers to, e.g. "terms/malware.yaml"
	Subject  string // term or report ID the finding refers to, if any
	Message  string
	Fix      string // suggested remediation, optional
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with the given severity.
func Count(diags []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Sort orders diagnostics by source, then subject, then message so output is
// stable across runs regardless of map iteration order in the validators.
func Sort(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Source != diags[j].Source {
			return diags[i].Source < diags[j].Source
		}
		if diags[i].Subject != diags[j].Subject {
			return diags[i].Subject < diags[j].Subject
		}
		return diags[i].Message < diags[j].Message
	})
}
