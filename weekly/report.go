// ABOUTME: Weekly report records and the SEC-WEEKLY-<year>-<week> identifier.
// ABOUTME: Provides strict ID parsing and formatting plus newest-first ordering.
package weekly

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// DateLayout is the calendar date format used in report front matter and
// rendered verbatim on report cards.
const DateLayout = "2006-01-02"

// Report is one weekly digest issue. Date is kept as the raw front matter
// string because pages display it verbatim; use Time for the parsed value.
type Report struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`

	// Body is the markdown content following the front matter block.
	Body string `yaml:"-"`

	// SourceFile is the relative path the report was loaded from,
	// e.g. "reports/SEC-WEEKLY-2025-32.md". Set by the loader.
	SourceFile string `yaml:"-"`
}

// Time returns the parsed calendar date of the report.
func (r Report) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse report date %q: %w", r.Date, err)
	}
	return t, nil
}

// Page returns the report's page path relative to the site root.
func (r Report) Page() string {
	return "reports/" + r.ID + ".html"
}

// ReportID is the parsed form of a SEC-WEEKLY-<year>-<week> identifier.
type ReportID struct {
	Year int
	Week int
}

var reportIDPattern = regexp.MustCompile(`^SEC-WEEKLY-(\d{4})-(\d{2})$`)

// ParseReportID parses and validates a report identifier. The week is the ISO
// week number, zero-padded to two digits, between 01 and 53.
func ParseReportID(s string) (ReportID, error) {
	m := reportIDPattern.FindStringSubmatch(s)
	if m == nil {
		return ReportID{}, fmt.Errorf("report ID %q does not match SEC-WEEKLY-<year>-<week>", s)
	}

	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return ReportID{}, fmt.Errorf("report ID %q has week %d out of range 1..53", s, week)
	}

	return ReportID{Year: year, Week: week}, nil
}

// String formats the identifier back into its canonical form.
func (id ReportID) String() string {
	return fmt.Sprintf("SEC-WEEKLY-%04d-%02d", id.Year, id.Week)
}

// IDForDate returns the report identifier covering the ISO week of t.
func IDForDate(t time.Time) ReportID {
	year, week := t.ISOWeek()
	return ReportID{Year: year, Week: week}
}

// SortNewestFirst orders reports by date descending, breaking ties by ID
// descending so a malformed date cannot make the order unstable.
func SortNewestFirst(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Date != reports[j].Date {
			return reports[i].Date > reports[j].Date
		}
		return reports[i].ID > reports[j].ID
	})
}
