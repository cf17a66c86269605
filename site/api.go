// ABOUTME: Static JSON API encoding for terms, categories, and reports.
// ABOUTME: CJK text is written unescaped so API consumers see readable strings.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/astroicers/secweekly/glossary"
	"github.com/astroicers/secweekly/weekly"
)

// ReportEntry is the JSON API shape of a report summary.
type ReportEntry struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Page    string   `json:"page"`
}

// TermsJSON encodes the full term list API document.
func TermsJSON(terms []glossary.Term) ([]byte, error) {
	return encodeJSON(map[string]any{
		"terms": terms,
		"count": len(terms),
	})
}

// TermJSON encodes a single term API document.
func TermJSON(term glossary.Term) ([]byte, error) {
	return encodeJSON(term)
}

// CategoriesJSON encodes the category list API document.
func CategoriesJSON(categories []glossary.Category) ([]byte, error) {
	return encodeJSON(map[string]any{
		"categories": categories,
		"count":      len(categories),
	})
}

// ReportsJSON encodes the report list API document, newest first.
func ReportsJSON(reports []weekly.Report) ([]byte, error) {
	entries := make([]ReportEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, ReportEntry{
			ID:      r.ID,
			Title:   r.Title,
			Date:    r.Date,
			Summary: r.Summary,
			Tags:    r.Tags,
			Page:    r.Page(),
		})
	}
	return encodeJSON(map[string]any{
		"reports": entries,
		"count":   len(entries),
	})
}

// encodeJSON marshals v with two-space indentation and HTML escaping off,
// so Chinese text survives as-is in the static files.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
