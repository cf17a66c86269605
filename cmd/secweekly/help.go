// ABOUTME: Help display for the secweekly CLI with grouped flags and examples.
// ABOUTME: Provides printHelp for usage output on -h and bad invocations.
package main

import (
	"fmt"
	"io"
)

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, and examples.
func printHelp(w io.Writer, ver string) {
	fmt.Fprintf(w, "secweekly %s — 資安週報 static site generator\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  secweekly [content-dir]             Build the site (default content dir: content)")
	fmt.Fprintln(w, "  secweekly -validate [content-dir]   Validate content without building")
	fmt.Fprintln(w, "  secweekly -serve [-out dist]        Serve a built site with the live API")
	fmt.Fprintln(w, "  secweekly -mcp [content-dir]        Run the MCP stdio server")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Build Flags:")
	fmt.Fprintln(w, "  -out <dir>        Output directory (default: dist)")
	fmt.Fprintln(w, "  -base-url <url>   Absolute site URL override for feed and API links")
	fmt.Fprintln(w, "  -verbose          Also print info-level diagnostics")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server Flags:")
	fmt.Fprintln(w, "  -bind <addr>      Bind address (default: SECWEEKLY_BIND or 127.0.0.1:8270)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SECWEEKLY_BIND          Preview server bind address")
	fmt.Fprintln(w, "  SECWEEKLY_ALLOW_REMOTE  Allow non-loopback binds (requires SECWEEKLY_AUTH_TOKEN)")
	fmt.Fprintln(w, "  SECWEEKLY_AUTH_TOKEN    Bearer token for the live API")
	fmt.Fprintln(w, "  SECWEEKLY_DIST          Built site directory for -serve")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  secweekly content -out dist")
	fmt.Fprintln(w, "  secweekly -validate content")
	fmt.Fprintln(w, "  secweekly -serve -out dist -bind 127.0.0.1:8270")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -version          Print version and exit")
	fmt.Fprintln(w, "  -h, -help         Show this help")
}
