// ABOUTME: Validation rules for weekly report files: ID format and uniqueness,
// ABOUTME: filename agreement, date validity, and ISO-week consistency checks.
package weekly

import (
	"fmt"
	"strings"

	"github.com/astroicers/secweekly/lint"
)

// Validate checks loaded reports and returns findings sorted for stable
// output. A date whose ISO week disagrees with the ID's week is only a
// warning: year-boundary issues legitimately publish under either week.
func Validate(reports []Report) []lint.Diagnostic {
	var diags []lint.Diagnostic

	seen := make(map[string]string, len(reports)) // id -> first source file
	for _, r := range reports {
		diags = append(diags, validateReport(&r)...)

		if r.ID == "" {
			continue
		}
		if first, dup := seen[r.ID]; dup {
			diags = append(diags, lint.Diagnostic{
				Severity: lint.SeverityError,
				Source:   r.SourceFile,
				Subject:  r.ID,
				Message:  fmt.Sprintf("duplicate report ID (first defined in %s)", first),
			})
		} else {
			seen[r.ID] = r.SourceFile
		}
	}

	lint.Sort(diags)
	return diags
}

func validateReport(r *Report) []lint.Diagnostic {
	var diags []lint.Diagnostic

	add := func(sev lint.Severity, msg, fix string) {
		diags = append(diags, lint.Diagnostic{
			Severity: sev,
			Source:   r.SourceFile,
			Subject:  r.ID,
			Message:  msg,
			Fix:      fix,
		})
	}

	id, idErr := ParseReportID(r.ID)
	if r.ID == "" {
		add(lint.SeverityError, "missing required field id", "")
	} else if idErr != nil {
		add(lint.SeverityError, idErr.Error(), "use SEC-WEEKLY-<year>-<week> with a two-digit week")
	}

	if r.SourceFile != "" && r.ID != "" {
		want := r.ID + ".md"
		if got := sourceBase(r.SourceFile); got != want {
			add(lint.SeverityError,
				fmt.Sprintf("file name %s does not match report ID (want %s)", got, want), "")
		}
	}

	if strings.TrimSpace(r.Title) == "" {
		add(lint.SeverityError, "missing required field title", "")
	}

	if r.Date == "" {
		add(lint.SeverityError, "missing required field date", "")
	} else if t, err := r.Time(); err != nil {
		add(lint.SeverityError, fmt.Sprintf("date %q is not a valid %s date", r.Date, DateLayout), "")
	} else if idErr == nil {
		if got := IDForDate(t); got != id {
			add(lint.SeverityWarning,
				fmt.Sprintf("date %s falls in ISO week %s, not %s", r.Date, got, id), "")
		}
	}

	return diags
}

func sourceBase(source string) string {
	if i := strings.LastIndex(source, "/"); i >= 0 {
		return source[i+1:]
	}
	return source
}
