// ABOUTME: Validation rules for glossary term files: required fields, ID format
// ABOUTME: and uniqueness, category consistency, related-term references, and URLs.
package glossary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/astroicers/secweekly/lint"
)

var (
	termIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	urlPattern    = regexp.MustCompile(`^https?://[^\s"'<>]+$`)
)

// Validate checks all terms against the glossary schema rules and returns the
// findings sorted for stable output. Hard schema violations are errors;
// editorial conventions (category/filename agreement, dangling related-term
// references) are warnings.
func Validate(terms []Term, categories []Category) []lint.Diagnostic {
	var diags []lint.Diagnostic

	validCats := make(map[string]bool, len(categories))
	for _, c := range categories {
		validCats[c.ID] = true
	}

	ids := make(map[string]string, len(terms)) // id -> first source file
	for _, t := range terms {
		diags = append(diags, validateTerm(&t, validCats)...)

		if t.ID == "" {
			continue
		}
		if first, dup := ids[t.ID]; dup {
			diags = append(diags, lint.Diagnostic{
				Severity: lint.SeverityError,
				Source:   t.SourceFile,
				Subject:  t.ID,
				Message:  fmt.Sprintf("duplicate term ID (first defined in %s)", first),
			})
		} else {
			ids[t.ID] = t.SourceFile
		}
	}

	// Related-term references are checked after the full ID set is known.
	for _, t := range terms {
		for _, ref := range t.RelatedTerms {
			if _, ok := ids[ref]; !ok {
				diags = append(diags, lint.Diagnostic{
					Severity: lint.SeverityWarning,
					Source:   t.SourceFile,
					Subject:  t.ID,
					Message:  fmt.Sprintf("related_terms references unknown term %q", ref),
				})
			}
		}
	}

	lint.Sort(diags)
	return diags
}

// validateTerm checks a single term's fields.
func validateTerm(t *Term, validCats map[string]bool) []lint.Diagnostic {
	var diags []lint.Diagnostic

	add := func(sev lint.Severity, msg, fix string) {
		diags = append(diags, lint.Diagnostic{
			Severity: sev,
			Source:   t.SourceFile,
			Subject:  t.ID,
			Message:  msg,
			Fix:      fix,
		})
	}

	if t.ID == "" {
		add(lint.SeverityError, "missing required field id", "")
	} else if !termIDPattern.MatchString(t.ID) {
		add(lint.SeverityError, fmt.Sprintf("term ID %q is not snake_case", t.ID),
			"use lowercase letters, digits, and underscores, starting with a letter")
	}

	if strings.TrimSpace(t.TermEN) == "" {
		add(lint.SeverityError, "missing required field term_en", "")
	}
	if strings.TrimSpace(t.TermZH) == "" {
		add(lint.SeverityError, "missing required field term_zh", "")
	}
	if strings.TrimSpace(t.Definitions.Brief) == "" {
		add(lint.SeverityError, "missing required field definitions.brief", "")
	}

	switch {
	case t.Category == "":
		add(lint.SeverityError, "missing required field category", "")
	case len(validCats) > 0 && !validCats[t.Category]:
		add(lint.SeverityError, fmt.Sprintf("unknown category %q", t.Category),
			"add the category to meta/categories.yaml or pick an existing one")
	case t.SourceFile != "" && t.Category+".yaml" != sourceBase(t.SourceFile):
		add(lint.SeverityWarning,
			fmt.Sprintf("category %q does not match source file %s", t.Category, t.SourceFile), "")
	}

	for name, url := range t.References {
		if url == "" || !urlPattern.MatchString(url) {
			add(lint.SeverityError, fmt.Sprintf("references.%s is not a valid URL: %q", name, url), "")
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
