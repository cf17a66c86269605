// ABOUTME: Template loading, rendering, and FuncMap for the static site pages.
// ABOUTME: Each page template is parsed against a clone of the base layout.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
)

// Renderer renders named page templates inside the shared base layout.
// Templates are parsed once at construction and reused for every page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses base.html and every pages/*.html template from the given
// filesystem. Each page gets its own clone of the base so page-level block
// overrides do not collide across pages.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	funcMap := buildFuncMap()

	baseSrc, err := fs.ReadFile(fsys, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("read base template: %w", err)
	}

	base, err := template.New("base.html").Funcs(funcMap).Parse(string(baseSrc))
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read page template %s: %w", file, err)
		}

		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", file, err)
		}
		if _, err := clone.Parse(string(src)); err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", file, err)
		}

		pages[path.Base(file)] = clone
	}

	return &Renderer{pages: pages}, nil
}

// Render executes a page template inside the base layout and returns the
// resulting HTML document.
func (r *Renderer) Render(page string, data any) ([]byte, error) {
	tmpl, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// buildFuncMap creates the template FuncMap with helpers for rendering.
func buildFuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown": markdownToHTML,
		"safeHTML": safeHTML,
		"join":     strings.Join,
		"dict":     dict,
	}
}

// markdownToHTML converts a markdown string to HTML using goldmark.
// Raw HTML in the input is stripped by goldmark's default renderer.
func markdownToHTML(input string) template.HTML {
	var buf bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}

// RenderMarkdown converts markdown to an HTML fragment. Used outside of
// template execution, e.g. by the preview server.
func RenderMarkdown(input string) string {
	var buf bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTMLEscapeString(input)
	}
	return buf.String()
}

// safeHTML marks a string as safe HTML, preventing double-escaping.
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

// dict creates a map[string]any from alternating key-value pairs for passing
// multiple values into sub-templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments (%d)", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key at position %d is not a string", i)
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
