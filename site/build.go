// ABOUTME: The static site builder: renders the landing page, report pages,
// ABOUTME: glossary pages, JSON API files, RSS feed, assets, and the manifest.
package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/astroicers/secweekly/glossary"
	"github.com/astroicers/secweekly/weekly"
)

// Builder renders a complete static site from loaded content.
type Builder struct {
	Config   Config
	Glossary *glossary.Glossary
	Reports  []weekly.Report

	// Now is the clock used for feed and manifest timestamps. Defaults to
	// time.Now; tests override it for stable output.
	Now func() time.Time

	renderer *Renderer
}

// NewBuilder creates a Builder with templates parsed from the embedded
// content filesystem.
func NewBuilder(cfg Config, g *glossary.Glossary, reports []weekly.Report) (*Builder, error) {
	renderer, err := NewRenderer(ContentFS)
	if err != nil {
		return nil, err
	}
	return &Builder{
		Config:   cfg,
		Glossary: g,
		Reports:  reports,
		Now:      time.Now,
		renderer: renderer,
	}, nil
}

// page is the data every template receives: site config plus the relative
// prefix back to the site root for the page's directory depth.
type page struct {
	Site Config
	Root string
}

type indexData struct {
	page
	Reports []weekly.Report
}

type reportData struct {
	page
	Report weekly.Report
}

// Reference is a named external link on a term page.
type Reference struct {
	Name string
	URL  string
}

type termData struct {
	page
	Term       glossary.Term
	Category   glossary.Category
	Related    []glossary.Term
	References []Reference
}

// GlossarySection is one category block on the glossary index.
type GlossarySection struct {
	Category glossary.Category
	Terms    []glossary.Term
}

type glossaryData struct {
	page
	Total    int
	Sections []GlossarySection
}

// CategoryCard is one entry on the categories index.
type CategoryCard struct {
	Category glossary.Category
	Count    int
}

type categoriesData struct {
	page
	Cards []CategoryCard
}

// Build renders the whole site into outDir and returns the build manifest.
// Output is deterministic for a given input apart from the build ID and
// timestamps.
func (b *Builder) Build(outDir string) (*Manifest, error) {
	manifest := &Manifest{
		BuildID:     NewBuildID(),
		BuiltAt:     b.Now().UTC(),
		TermCount:   b.Glossary.Len(),
		ReportCount: len(b.Reports),
	}

	write := func(rel string, data []byte) error {
		path := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create dir for %s: %w", rel, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		manifest.Files = append(manifest.Files, rel)
		return nil
	}

	if err := b.buildPages(write); err != nil {
		return nil, err
	}
	if err := b.buildFeed(write); err != nil {
		return nil, err
	}
	if err := b.buildAPI(write); err != nil {
		return nil, err
	}
	if err := b.copyStatic(write); err != nil {
		return nil, err
	}

	sort.Strings(manifest.Files)
	data, err := encodeJSON(manifest)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(outDir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return manifest, nil
}

// buildPages renders all HTML pages.
func (b *Builder) buildPages(write func(string, []byte) error) error {
	renderTo := func(rel, tmpl string, data any) error {
		html, err := b.renderer.Render(tmpl, data)
		if err != nil {
			return err
		}
		return write(rel, html)
	}

	// Landing page: one card per report, or the fallback notice.
	err := renderTo("index.html", "index.html", indexData{
		page:    page{Site: b.Config, Root: ""},
		Reports: b.Reports,
	})
	if err != nil {
		return err
	}

	for _, r := range b.Reports {
		err := renderTo(r.Page(), "report.html", reportData{
			page:   page{Site: b.Config, Root: "../"},
			Report: r,
		})
		if err != nil {
			return err
		}
	}

	for _, t := range b.Glossary.Terms() {
		err := renderTo("glossary/"+t.ID+"/index.html", "term.html", termData{
			page:       page{Site: b.Config, Root: "../../"},
			Term:       t,
			Category:   b.Glossary.CategoryByID(t.Category),
			Related:    b.relatedTerms(t),
			References: sortedReferences(t.References),
		})
		if err != nil {
			return err
		}
	}

	err = renderTo("glossary/index.html", "glossary.html", glossaryData{
		page:     page{Site: b.Config, Root: "../"},
		Total:    b.Glossary.Len(),
		Sections: b.glossarySections(),
	})
	if err != nil {
		return err
	}

	return renderTo("categories/index.html", "categories.html", categoriesData{
		page:  page{Site: b.Config, Root: "../"},
		Cards: b.categoryCards(),
	})
}

// buildFeed renders the RSS feed.
func (b *Builder) buildFeed(write func(string, []byte) error) error {
	rss, err := BuildFeed(b.Config, b.Reports, b.Now())
	if err != nil {
		return err
	}
	return write(FeedPath, []byte(rss))
}

// buildAPI writes the static JSON API files.
func (b *Builder) buildAPI(write func(string, []byte) error) error {
	terms := b.Glossary.Terms()

	data, err := TermsJSON(terms)
	if err != nil {
		return err
	}
	if err := write("api/v1/terms.json", data); err != nil {
		return err
	}

	for _, t := range terms {
		data, err := TermJSON(t)
		if err != nil {
			return err
		}
		if err := write("api/v1/terms/"+t.ID+".json", data); err != nil {
			return err
		}
	}

	data, err = CategoriesJSON(b.Glossary.Categories())
	if err != nil {
		return err
	}
	if err := write("api/v1/categories.json", data); err != nil {
		return err
	}

	data, err = ReportsJSON(b.Reports)
	if err != nil {
		return err
	}
	return write("api/v1/reports.json", data)
}

// copyStatic copies embedded static assets into the output tree.
func (b *Builder) copyStatic(write func(string, []byte) error) error {
	return fs.WalkDir(ContentFS, "static", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(ContentFS, path)
		if err != nil {
			return fmt.Errorf("read embedded asset %s: %w", path, err)
		}
		return write(path, data)
	})
}

// relatedTerms resolves a term's related_terms list, dropping unknown IDs.
// The validator already warns about those.
func (b *Builder) relatedTerms(t glossary.Term) []glossary.Term {
	var out []glossary.Term
	for _, id := range t.RelatedTerms {
		if rel, ok := b.Glossary.Get(id); ok {
			out = append(out, *rel)
		}
	}
	return out
}

// glossarySections groups terms by category ID in sorted order, including
// categories that appear on terms but are missing from the metadata.
func (b *Builder) glossarySections() []GlossarySection {
	ids := make(map[string]bool)
	for _, t := range b.Glossary.Terms() {
		ids[t.Category] = true
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	var sections []GlossarySection
	for _, id := range sorted {
		sections = append(sections, GlossarySection{
			Category: b.Glossary.CategoryByID(id),
			Terms:    b.Glossary.TermsByCategory(id),
		})
	}
	return sections
}

// categoryCards lists categories in metadata order with their term counts.
func (b *Builder) categoryCards() []CategoryCard {
	counts := b.Glossary.CategoryCounts()
	var cards []CategoryCard
	for _, c := range b.Glossary.Categories() {
		if c.Icon == "" {
			c.Icon = glossary.DefaultCategoryIcon
		}
		cards = append(cards, CategoryCard{Category: c, Count: counts[c.ID]})
	}
	return cards
}

// sortedReferences converts a references map into a deterministic slice.
func sortedReferences(refs map[string]string) []Reference {
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Reference, 0, len(names))
	for _, name := range names {
		out = append(out, Reference{Name: name, URL: refs[name]})
	}
	return out
}
