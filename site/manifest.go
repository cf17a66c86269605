// ABOUTME: Build manifest recording the build ID, timestamps, and emitted files.
// ABOUTME: Build IDs are ULIDs so successive builds sort chronologically.
package site

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Manifest describes one completed site build. It is written to
// manifest.json in the output directory and recorded in the search index.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	BuiltAt     time.Time `json:"built_at"`
	TermCount   int       `json:"term_count"`
	ReportCount int       `json:"report_count"`
	Files       []string  `json:"files"`
}

// NewBuildID generates a new build ID using crypto/rand entropy.
func NewBuildID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
