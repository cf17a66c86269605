// ABOUTME: MCP stdio server exposing the glossary and weekly reports to
// ABOUTME: assistants, so answers can cite consistent zh-TW terminology.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/astroicers/secweekly/glossary"
	"github.com/astroicers/secweekly/weekly"
)

const (
	serverName = "security-weekly-mcp"
)

// Server wraps an MCP server over loaded site content.
type Server struct {
	mcp *mcp.Server
}

// New creates the MCP server and registers all tools against the given
// glossary and report list.
func New(version string, g *glossary.Glossary, reports []weekly.Report) *Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, &mcp.ServerOptions{
		Instructions: "資安週報與術語庫查詢工具。查詢資安術語的繁體中文譯名與定義，以及每週資安報告。",
	})

	mcp.AddTool(srv, lookupTermTool(), lookupTermHandler(g))
	mcp.AddTool(srv, searchTermsTool(), searchTermsHandler(g))
	mcp.AddTool(srv, listCategoriesTool(), listCategoriesHandler(g))
	mcp.AddTool(srv, listReportsTool(), listReportsHandler(reports))
	mcp.AddTool(srv, getReportTool(), getReportHandler(reports))

	return &Server{mcp: srv}
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
