// ABOUTME: CLI entrypoint for the secweekly site generator with build,
// ABOUTME: validate, serve, and MCP server modes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/astroicers/secweekly/glossary"
	"github.com/astroicers/secweekly/lint"
	"github.com/astroicers/secweekly/mcpserver"
	"github.com/astroicers/secweekly/site"
	"github.com/astroicers/secweekly/store"
	"github.com/astroicers/secweekly/web"
	"github.com/astroicers/secweekly/weekly"
)

var version = "dev"

// config holds all CLI configuration parsed from flags and positional arguments.
type config struct {
	validateOnly bool
	serveMode    bool
	mcpMode      bool
	outDir       string
	bind         string
	baseURL      string
	verbose      bool
	showVersion  bool
	contentDir   string
}

func main() {
	loadDotEnvAuto()

	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("secweekly %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags() config {
	var cfg config

	fs := flag.NewFlagSet("secweekly", flag.ContinueOnError)
	fs.BoolVar(&cfg.validateOnly, "validate", false, "Validate content without building")
	fs.BoolVar(&cfg.serveMode, "serve", false, "Serve a built site with the live API")
	fs.BoolVar(&cfg.mcpMode, "mcp", false, "Run the MCP stdio server over the content tree")
	fs.StringVar(&cfg.outDir, "out", "", "Output directory for the built site (default: dist)")
	fs.StringVar(&cfg.bind, "bind", "", "Bind address for -serve (default: SECWEEKLY_BIND or 127.0.0.1:8270)")
	fs.StringVar(&cfg.baseURL, "base-url", "", "Absolute site URL override for feed and API links")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(os.Stderr, version)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg.contentDir = "content"
	if fs.NArg() > 0 {
		cfg.contentDir = fs.Arg(0)
	}

	return cfg
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config) int {
	if cfg.serveMode {
		return runServe(cfg)
	}
	if cfg.mcpMode {
		return runMCP(cfg)
	}
	if cfg.validateOnly {
		return runValidate(cfg)
	}
	return runBuild(cfg)
}

// loadContent reads the glossary and reports from the content tree.
func loadContent(contentDir string) (*glossary.Glossary, []weekly.Report, error) {
	g, err := glossary.LoadDir(contentDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load glossary: %w", err)
	}

	reports, err := weekly.LoadDir(contentDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load reports: %w", err)
	}
	weekly.SortNewestFirst(reports)

	return g, reports, nil
}

// validateContent runs all validators and prints diagnostics to stderr.
// Returns true when no error-severity diagnostics were found.
func validateContent(g *glossary.Glossary, reports []weekly.Report, verbose bool) bool {
	diags := glossary.Validate(g.Terms(), g.Categories())
	diags = append(diags, weekly.Validate(reports)...)
	lint.Sort(diags)

	for _, d := range diags {
		if d.Severity == lint.SeverityInfo && !verbose {
			continue
		}
		fmt.Fprintln(os.Stderr, lint.Format(d))
	}

	if n := lint.Count(diags, lint.SeverityError); n > 0 {
		fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n",
			n, lint.Count(diags, lint.SeverityWarning))
		return false
	}
	return true
}

// runValidate checks the content tree and reports diagnostics.
func runValidate(cfg config) int {
	g, reports, err := loadContent(cfg.contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if !validateContent(g, reports, cfg.verbose) {
		return 1
	}

	fmt.Printf("content OK: %d terms, %d categories, %d reports\n",
		g.Len(), len(g.Categories()), len(reports))
	return 0
}

// buildOutDir resolves the output directory for build mode.
func buildOutDir(cfg config) string {
	if cfg.outDir != "" {
		return cfg.outDir
	}
	return "dist"
}

// runBuild validates the content tree, renders the site, and rebuilds the
// search index next to it.
func runBuild(cfg config) int {
	g, reports, err := loadContent(cfg.contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if !validateContent(g, reports, cfg.verbose) {
		fmt.Fprintln(os.Stderr, "build aborted: fix validation errors first")
		return 1
	}

	siteCfg, err := site.LoadConfig(cfg.contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if cfg.baseURL != "" {
		siteCfg.BaseURL = cfg.baseURL
	}

	builder, err := site.NewBuilder(siteCfg, g, reports)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	outDir := buildOutDir(cfg)
	manifest, err := builder.Build(outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := rebuildIndex(outDir, manifest.BuildID, g, reports); err != nil {
		fmt.Fprintf(os.Stderr, "warning: search index not updated: %v\n", err)
	}

	fmt.Printf("built %s: %d files, %d terms, %d reports (build %s)\n",
		outDir, len(manifest.Files), manifest.TermCount, manifest.ReportCount, manifest.BuildID)
	return 0
}

// rebuildIndex writes the SQLite search index into the output directory.
func rebuildIndex(outDir, buildID string, g *glossary.Glossary, reports []weekly.Report) error {
	idx, err := store.Open(filepath.Join(outDir, "index.db"))
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()

	return idx.Rebuild(buildID, g.Terms(), reports)
}

// serveConfig resolves the preview server configuration: SECWEEKLY_* env
// values first, overridden only by flags that were explicitly passed.
func serveConfig(cfg config) (*web.Config, error) {
	webCfg, err := web.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.bind != "" {
		webCfg.Bind = cfg.bind
		if err := webCfg.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.outDir != "" {
		webCfg.DistDir = cfg.outDir
		webCfg.IndexPath = filepath.Join(cfg.outDir, "index.db")
	}
	return webCfg, nil
}

// runServe starts the preview server over a built site directory.
func runServe(cfg config) int {
	webCfg, err := serveConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var idx *store.Index
	if _, err := os.Stat(webCfg.IndexPath); err == nil {
		idx, err = store.Open(webCfg.IndexPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: search index unavailable: %v\n", err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "warning: no search index at %s; run a build first\n", webCfg.IndexPath)
	}
	if idx != nil {
		defer func() { _ = idx.Close() }()
	}

	srv := web.NewServer(webCfg, idx)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runMCP loads the content tree and serves it over MCP stdio until
// interrupted.
func runMCP(cfg config) int {
	g, reports, err := loadContent(cfg.contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	srv := mcpserver.New(version, g, reports)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
