// ABOUTME: Loads weekly reports from reports/*.md files with YAML front matter.
// ABOUTME: Splits the front matter block from the markdown body and parses both.
package weekly

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// LoadDir loads every reports/*.md file under root, newest first. Files that
// are not valid front matter documents fail the load; field-level problems
// are left to Validate so a lint run can report them all at once.
func LoadDir(root string) ([]Report, error) {
	dir := filepath.Join(root, "reports")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var reports []Report
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		report, err := ParseReport(data)
		if err != nil {
			return nil, fmt.Errorf("reports/%s: %w", name, err)
		}
		report.SourceFile = "reports/" + name
		reports = append(reports, report)
	}

	SortNewestFirst(reports)
	return reports, nil
}

// ParseReport parses a single report document: a YAML front matter block
// delimited by "---" lines, followed by the markdown body.
func ParseReport(data []byte) (Report, error) {
	front, body, err := splitFrontMatter(string(data))
	if err != nil {
		return Report{}, err
	}

	var report Report
	if err := yaml.Unmarshal([]byte(front), &report); err != nil {
		return Report{}, fmt.Errorf("parse front matter: %w", err)
	}
	report.Body = body
	return report, nil
}

// splitFrontMatter separates the leading front matter block from the body.
func splitFrontMatter(doc string) (front, body string, err error) {
	doc = strings.TrimPrefix(doc, "\ufeff")
	lines := strings.SplitAfter(doc, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontMatterDelim {
		return "", "", fmt.Errorf("missing front matter: document must start with %q", frontMatterDelim)
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontMatterDelim {
			front = strings.Join(lines[1:i], "")
			body = strings.TrimPrefix(strings.Join(lines[i+1:], ""), "\n")
			return front, body, nil
		}
	}

	return "", "", fmt.Errorf("unterminated front matter: closing %q not found", frontMatterDelim)
}
