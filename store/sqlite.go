// ABOUTME: SQLite-backed search index over glossary terms and weekly reports.
// ABOUTME: Always rebuildable from the content tree; a queryable cache, not the source of truth.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/astroicers/secweekly/glossary"
	"github.com/astroicers/secweekly/weekly"
)

// TermRow is a row from the terms table for query results.
type TermRow struct {
	ID       string
	TermEN   string
	TermZH   string
	Brief    string
	Category string
	Aliases  string
}

// ReportRow is a row from the reports table for query results.
type ReportRow struct {
	ID      string
	Title   string
	Date    string
	Summary string
	Page    string
}

// Hit is one search result. Kind is "term" or "report".
type Hit struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	Page  string `json:"page"`
}

// Index is a SQLite-backed index mirroring the published content for fast
// lookup and search. It is rebuilt from the YAML/markdown tree on every site
// build.
type Index struct {
	db *sql.DB
}

// Open opens or creates the index database at the given path and ensures the
// schema exists.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS terms (
			id TEXT PRIMARY KEY,
			term_en TEXT NOT NULL,
			term_zh TEXT NOT NULL,
			brief TEXT NOT NULL,
			category TEXT NOT NULL,
			aliases TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date TEXT NOT NULL,
			summary TEXT NOT NULL,
			body TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// UpsertTerm inserts or updates one term row.
func (idx *Index) UpsertTerm(t glossary.Term) error {
	aliases := strings.Join(append(append([]string{}, t.Aliases.ZH...), t.Aliases.EN...), " ")
	_, err := idx.db.Exec(
		`INSERT INTO terms (id, term_en, term_zh, brief, category, aliases)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			term_en = excluded.term_en,
			term_zh = excluded.term_zh,
			brief = excluded.brief,
			category = excluded.category,
			aliases = excluded.aliases`,
		t.ID, t.TermEN, t.TermZH, t.Definitions.Brief, t.Category, aliases)
	if err != nil {
		return fmt.Errorf("upsert term %s: %w", t.ID, err)
	}
	return nil
}

// UpsertReport inserts or updates one report row.
func (idx *Index) UpsertReport(r weekly.Report) error {
	_, err := idx.db.Exec(
		`INSERT INTO reports (id, title, date, summary, body)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			summary = excluded.summary,
			body = excluded.body`,
		r.ID, r.Title, r.Date, r.Summary, r.Body)
	if err != nil {
		return fmt.Errorf("upsert report %s: %w", r.ID, err)
	}
	return nil
}

// GetTerm returns one term row by ID. Returns found=false when absent.
func (idx *Index) GetTerm(id string) (TermRow, bool, error) {
	var t TermRow
	err := idx.db.QueryRow(
		"SELECT id, term_en, term_zh, brief, category, aliases FROM terms WHERE id = ?", id).
		Scan(&t.ID, &t.TermEN, &t.TermZH, &t.Brief, &t.Category, &t.Aliases)
	if err == sql.ErrNoRows {
		return TermRow{}, false, nil
	}
	if err != nil {
		return TermRow{}, false, fmt.Errorf("query term %s: %w", id, err)
	}
	return t, true, nil
}

// ListReports returns all report rows, newest date first.
func (idx *Index) ListReports() ([]ReportRow, error) {
	rows, err := idx.db.Query(
		"SELECT id, title, date, summary FROM reports ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []ReportRow
	for rows.Next() {
		var r ReportRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Date, &r.Summary); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		r.Page = "reports/" + r.ID + ".html"
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Search matches the query as a case-insensitive substring across terms
// (names, brief, aliases) and reports (title, summary, body). Term hits come
// first, then reports newest first. limit <= 0 means no limit.
func (idx *Index) Search(query string, limit int) ([]Hit, error) {
	pattern := "%" + escapeLike(query) + "%"

	var hits []Hit

	rows, err := idx.db.Query(
		`SELECT id, term_en, term_zh, brief FROM terms
		 WHERE id LIKE ? ESCAPE '\'
		    OR term_en LIKE ? ESCAPE '\'
		    OR term_zh LIKE ? ESCAPE '\'
		    OR brief LIKE ? ESCAPE '\'
		    OR aliases LIKE ? ESCAPE '\'
		 ORDER BY term_en COLLATE NOCASE`,
		pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search terms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, en, zh, brief string
		if err := rows.Scan(&id, &en, &zh, &brief); err != nil {
			return nil, fmt.Errorf("scan term hit: %w", err)
		}
		hits = append(hits, Hit{
			Kind:  "term",
			ID:    id,
			Title: en + "（" + zh + "）",
			Text:  brief,
			Page:  "glossary/" + id + "/index.html",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reportRows, err := idx.db.Query(
		`SELECT id, title, date, summary FROM reports
		 WHERE id LIKE ? ESCAPE '\'
		    OR title LIKE ? ESCAPE '\'
		    OR summary LIKE ? ESCAPE '\'
		    OR body LIKE ? ESCAPE '\'
		 ORDER BY date DESC, id DESC`,
		pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search reports: %w", err)
	}
	defer func() { _ = reportRows.Close() }()

	for reportRows.Next() {
		var id, title, date, summary string
		if err := reportRows.Scan(&id, &title, &date, &summary); err != nil {
			return nil, fmt.Errorf("scan report hit: %w", err)
		}
		hits = append(hits, Hit{
			Kind:  "report",
			ID:    id,
			Title: title,
			Text:  summary,
			Page:  "reports/" + id + ".html",
		})
	}
	if err := reportRows.Err(); err != nil {
		return nil, err
	}

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// GetLastBuildID returns the build ID recorded by the most recent rebuild.
// Returns found=false when the index has never been built.
func (idx *Index) GetLastBuildID() (string, bool, error) {
	var val string
	err := idx.db.QueryRow("SELECT value FROM meta WHERE key = 'last_build_id'").Scan(&val)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query last_build_id: %w", err)
	}
	return val, true, nil
}

// SetLastBuildID stores the build ID in the meta table.
func (idx *Index) SetLastBuildID(buildID string) error {
	_, err := idx.db.Exec(
		`INSERT INTO meta (key, value) VALUES ('last_build_id', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		buildID)
	if err != nil {
		return fmt.Errorf("set last_build_id: %w", err)
	}
	return nil
}

// Rebuild clears all rows and repopulates the index from loaded content,
// recording the build ID that produced it.
func (idx *Index) Rebuild(buildID string, terms []glossary.Term, reports []weekly.Report) error {
	if _, err := idx.db.Exec("DELETE FROM terms"); err != nil {
		return fmt.Errorf("clear terms: %w", err)
	}
	if _, err := idx.db.Exec("DELETE FROM reports"); err != nil {
		return fmt.Errorf("clear reports: %w", err)
	}

	for _, t := range terms {
		if err := idx.UpsertTerm(t); err != nil {
			return err
		}
	}
	for _, r := range reports {
		if err := idx.UpsertReport(r); err != nil {
			return err
		}
	}

	return idx.SetLastBuildID(buildID)
}

// escapeLike escapes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
