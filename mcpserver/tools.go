// ABOUTME: MCP tool definitions and handlers: term lookup and search,
// ABOUTME: category listing, and weekly report access.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/astroicers/secweekly/glossary"
	"github.com/astroicers/secweekly/weekly"
)

// TermResult is the MCP shape of one glossary term.
type TermResult struct {
	ID        string   `json:"id" jsonschema:"term identifier in snake_case"`
	TermEN    string   `json:"term_en" jsonschema:"English name"`
	TermZH    string   `json:"term_zh" jsonschema:"Traditional Chinese name"`
	Brief     string   `json:"brief" jsonschema:"one-line definition"`
	Standard  string   `json:"standard,omitempty" jsonschema:"full definition in markdown"`
	Category  string   `json:"category" jsonschema:"category identifier"`
	AliasesZH []string `json:"aliases_zh,omitempty" jsonschema:"Chinese aliases"`
	AliasesEN []string `json:"aliases_en,omitempty" jsonschema:"English aliases"`
	Tags      []string `json:"tags,omitempty" jsonschema:"topic tags"`
	Related   []string `json:"related,omitempty" jsonschema:"related term identifiers"`
}

func termResult(t glossary.Term) TermResult {
	return TermResult{
		ID:        t.ID,
		TermEN:    t.TermEN,
		TermZH:    t.TermZH,
		Brief:     t.Definitions.Brief,
		Standard:  t.Definitions.Standard,
		Category:  t.Category,
		AliasesZH: t.Aliases.ZH,
		AliasesEN: t.Aliases.EN,
		Tags:      t.Tags,
		Related:   t.RelatedTerms,
	}
}

// LookupTermInput asks for one term by identifier or name.
type LookupTermInput struct {
	Name string `json:"name" jsonschema:"term id, English name, Chinese name, or alias"`
}

func lookupTermTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lookup_term",
		Description: "Looks up one security term by id, English or Chinese name, or alias",
	}
}

func lookupTermHandler(g *glossary.Glossary) mcp.ToolHandlerFor[LookupTermInput, TermResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupTermInput) (*mcp.CallToolResult, TermResult, error) {
		if t, ok := g.Get(input.Name); ok {
			return nil, termResult(*t), nil
		}
		if t, ok := g.LookupName(input.Name); ok {
			return nil, termResult(*t), nil
		}
		return nil, TermResult{}, fmt.Errorf("term not found: %s", input.Name)
	}
}

// SearchTermsInput is a substring search across the glossary.
type SearchTermsInput struct {
	Query string `json:"query" jsonschema:"substring to match against names, aliases, and definitions"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
}

// SearchTermsResult is the search response.
type SearchTermsResult struct {
	Terms []TermResult `json:"terms" jsonschema:"matching terms"`
	Count int          `json:"count" jsonschema:"number of results returned"`
}

func searchTermsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_terms",
		Description: "Searches security terms by substring across names, aliases, and definitions",
	}
}

func searchTermsHandler(g *glossary.Glossary) mcp.ToolHandlerFor[SearchTermsInput, SearchTermsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchTermsInput) (*mcp.CallToolResult, SearchTermsResult, error) {
		if input.Query == "" {
			return nil, SearchTermsResult{}, fmt.Errorf("query must not be empty")
		}
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}

		matches := g.Search(input.Query, limit)
		result := SearchTermsResult{Terms: make([]TermResult, 0, len(matches))}
		for _, t := range matches {
			result.Terms = append(result.Terms, termResult(t))
		}
		result.Count = len(result.Terms)
		return nil, result, nil
	}
}

// ListCategoriesInput has no parameters.
type ListCategoriesInput struct{}

// CategoryResult is one category with its term count.
type CategoryResult struct {
	ID          string `json:"id" jsonschema:"category identifier"`
	NameZH      string `json:"name_zh" jsonschema:"Traditional Chinese name"`
	Icon        string `json:"icon,omitempty" jsonschema:"emoji icon"`
	Description string `json:"description,omitempty" jsonschema:"category description"`
	TermCount   int    `json:"term_count" jsonschema:"number of terms in the category"`
}

// ListCategoriesResult is the category listing response.
type ListCategoriesResult struct {
	Categories []CategoryResult `json:"categories" jsonschema:"all categories"`
}

func listCategoriesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_categories",
		Description: "Lists glossary categories with term counts",
	}
}

func listCategoriesHandler(g *glossary.Glossary) mcp.ToolHandlerFor[ListCategoriesInput, ListCategoriesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListCategoriesInput) (*mcp.CallToolResult, ListCategoriesResult, error) {
		counts := g.CategoryCounts()
		var result ListCategoriesResult
		for _, c := range g.Categories() {
			result.Categories = append(result.Categories, CategoryResult{
				ID:          c.ID,
				NameZH:      c.NameZH,
				Icon:        c.Icon,
				Description: c.Description,
				TermCount:   counts[c.ID],
			})
		}
		return nil, result, nil
	}
}

// ListReportsInput has no parameters.
type ListReportsInput struct{}

// ReportSummary is one report without its body.
type ReportSummary struct {
	ID      string   `json:"id" jsonschema:"report identifier, e.g. SEC-WEEKLY-2025-32"`
	Title   string   `json:"title" jsonschema:"report title"`
	Date    string   `json:"date" jsonschema:"publication date, YYYY-MM-DD"`
	Summary string   `json:"summary,omitempty" jsonschema:"one-line summary"`
	Tags    []string `json:"tags,omitempty" jsonschema:"topic tags"`
}

// ListReportsResult lists reports newest first.
type ListReportsResult struct {
	Reports []ReportSummary `json:"reports" jsonschema:"reports, newest first"`
	Count   int             `json:"count" jsonschema:"number of reports"`
}

func listReportsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_reports",
		Description: "Lists weekly security reports, newest first",
	}
}

func listReportsHandler(reports []weekly.Report) mcp.ToolHandlerFor[ListReportsInput, ListReportsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListReportsInput) (*mcp.CallToolResult, ListReportsResult, error) {
		result := ListReportsResult{Reports: make([]ReportSummary, 0, len(reports))}
		for _, r := range reports {
			result.Reports = append(result.Reports, ReportSummary{
				ID:      r.ID,
				Title:   r.Title,
				Date:    r.Date,
				Summary: r.Summary,
				Tags:    r.Tags,
			})
		}
		result.Count = len(result.Reports)
		return nil, result, nil
	}
}

// GetReportInput asks for one report by ID.
type GetReportInput struct {
	ID string `json:"id" jsonschema:"report identifier, e.g. SEC-WEEKLY-2025-32"`
}

// ReportResult is one full report including its markdown body.
type ReportResult struct {
	ReportSummary
	Body string `json:"body" jsonschema:"report body in markdown"`
}

func getReportTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_report",
		Description: "Fetches one weekly report, including its markdown body",
	}
}

func getReportHandler(reports []weekly.Report) mcp.ToolHandlerFor[GetReportInput, ReportResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetReportInput) (*mcp.CallToolResult, ReportResult, error) {
		for _, r := range reports {
			if r.ID == input.ID {
				return nil, ReportResult{
					ReportSummary: ReportSummary{
						ID:      r.ID,
						Title:   r.Title,
						Date:    r.Date,
						Summary: r.Summary,
						Tags:    r.Tags,
					},
					Body: r.Body,
				}, nil
			}
		}
		return nil, ReportResult{}, fmt.Errorf("report not found: %s", input.ID)
	}
}
