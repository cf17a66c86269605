// ABOUTME: In-memory glossary index with lookup by ID, by name or alias, and
// ABOUTME: by category, plus substring search across identifiers and definitions.
package glossary

import (
	"sort"
	"strings"
)

// Glossary is an indexed, read-only view over a set of terms and categories.
type Glossary struct {
	terms      []Term
	byID       map[string]*Term
	byName     map[string]*Term
	categories []Category
	catByID    map[string]Category
}

// New builds a Glossary from loaded terms and categories. English names and
// aliases are indexed case-insensitively; Chinese names are indexed verbatim.
// On name collisions the first term wins.
func New(terms []Term, categories []Category) *Glossary {
	g := &Glossary{
		terms:      terms,
		byID:       make(map[string]*Term, len(terms)),
		byName:     make(map[string]*Term, len(terms)*2),
		categories: categories,
		catByID:    make(map[string]Category, len(categories)),
	}

	for _, c := range categories {
		g.catByID[c.ID] = c
	}

	for i := range g.terms {
		t := &g.terms[i]
		if _, dup := g.byID[t.ID]; !dup {
			g.byID[t.ID] = t
		}
		g.indexName(t.TermEN, t)
		g.indexName(t.TermZH, t)
		for _, a := range t.Aliases.EN {
			g.indexName(a, t)
		}
		for _, a := range t.Aliases.ZH {
			g.indexName(a, t)
		}
	}

	return g
}

func (g *Glossary) indexName(name string, t *Term) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if _, dup := g.byName[key]; !dup {
		g.byName[key] = t
	}
}

// Terms returns all terms in load order.
func (g *Glossary) Terms() []Term {
	return g.terms
}

// Len returns the number of loaded terms.
func (g *Glossary) Len() int {
	return len(g.terms)
}

// Get returns the term with the given ID.
func (g *Glossary) Get(id string) (*Term, bool) {
	t, ok := g.byID[id]
	return t, ok
}

// LookupName resolves a term by its English name, Chinese name, or any alias.
// Matching is case-insensitive.
func (g *Glossary) LookupName(name string) (*Term, bool) {
	t, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Categories returns all categories in file order.
func (g *Glossary) Categories() []Category {
	return g.categories
}

// CategoryByID returns the category with the given ID. When the category is
// unknown a placeholder carrying the raw ID and the default icon is returned,
// so rendering never breaks on a stray category reference.
func (g *Glossary) CategoryByID(id string) Category {
	if c, ok := g.catByID[id]; ok {
		if c.Icon == "" {
			c.Icon = DefaultCategoryIcon
		}
		return c
	}
	return Category{ID: id, NameZH: id, Icon: DefaultCategoryIcon}
}

// TermsByCategory returns the terms in a category sorted by their English
// name, case-insensitively.
func (g *Glossary) TermsByCategory(catID string) []Term {
	var out []Term
	for _, t := range g.terms {
		if t.Category == catID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].TermEN) < strings.ToLower(out[j].TermEN)
	})
	return out
}

// CategoryCounts returns the number of terms per category ID.
func (g *Glossary) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, t := range g.terms {
		counts[t.Category]++
	}
	return counts
}

// Search returns up to limit terms whose ID, names, aliases, or brief
// definition contain the query, case-insensitively. A limit of zero or less
// means no limit. Results follow load order.
func (g *Glossary) Search(query string, limit int) []Term {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Term
	for _, t := range g.terms {
		if termMatches(&t, q) {
			out = append(out, t)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// termMatches checks a lowercased query against all searchable fields.
// ZH fields are lowercased too: they routinely embed ASCII acronyms
// ("APT 攻擊", "DDoS") that must match case-insensitively.
func termMatches(t *Term, q string) bool {
	if strings.Contains(strings.ToLower(t.ID), q) ||
		strings.Contains(strings.ToLower(t.TermEN), q) ||
		strings.Contains(strings.ToLower(t.TermZH), q) ||
		strings.Contains(strings.ToLower(t.Definitions.Brief), q) {
		return true
	}
	for _, a := range t.Aliases.EN {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	for _, a := range t.Aliases.ZH {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	return false
}
