// ABOUTME: Tests for the CLI modes: build, validate, and their exit codes
// ABOUTME: against fixture content trees.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixtureContent(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	mustWrite := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite("site.yaml", `title: 資安週報
description: 每週資安重點摘要
base_url: https://example.com/weekly/
`)

	mustWrite("meta/categories.yaml", `categories:
  - id: attack_types
    name_zh: 攻擊類型
    icon: "🎯"
`)

	mustWrite("terms/attack_types.yaml", `terms:
  - id: phishing
    term_en: Phishing
    term_zh: 網路釣魚
    definitions:
      brief: 偽裝成可信來源以騙取帳密的攻擊手法
    category: attack_types
`)

	mustWrite("reports/SEC-WEEKLY-2025-32.md", `---
id: SEC-WEEKLY-2025-32
title: 本週資安重點摘要
date: "2025-08-08"
summary: 供應鏈攻擊事件分析
---
## 本週焦點

內容。
`)

	return root
}

func TestRunBuild(t *testing.T) {
	content := writeFixtureContent(t)
	out := filepath.Join(t.TempDir(), "dist")

	code := run(config{contentDir: content, outDir: out})
	if code != 0 {
		t.Fatalf("build exit code = %d", code)
	}

	for _, rel := range []string{
		"index.html",
		"reports/SEC-WEEKLY-2025-32.html",
		"glossary/phishing/index.html",
		"weekly/feed.xml",
		"api/v1/terms.json",
		"manifest.json",
		"index.db",
	} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing build output %s: %v", rel, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `href="reports/SEC-WEEKLY-2025-32.html"`) {
		t.Error("landing page missing report card link")
	}
}

func TestRunBuildBaseURLOverride(t *testing.T) {
	content := writeFixtureContent(t)
	out := filepath.Join(t.TempDir(), "dist")

	code := run(config{contentDir: content, outDir: out, baseURL: "https://other.example/"})
	if code != 0 {
		t.Fatalf("build exit code = %d", code)
	}

	rss, err := os.ReadFile(filepath.Join(out, "weekly", "feed.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(rss), "https://other.example/reports/SEC-WEEKLY-2025-32.html") {
		t.Error("feed links do not use the overridden base URL")
	}
}

func TestRunBuildAbortsOnValidationErrors(t *testing.T) {
	content := writeFixtureContent(t)
	// Break the term: brief is required.
	broken := filepath.Join(content, "terms", "attack_types.yaml")
	err := os.WriteFile(broken, []byte(`terms:
  - id: phishing
    term_en: Phishing
    term_zh: 網路釣魚
    category: attack_types
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "dist")
	if code := run(config{contentDir: content, outDir: out}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err == nil {
		t.Error("site built despite validation errors")
	}
}

func TestRunValidate(t *testing.T) {
	content := writeFixtureContent(t)
	if code := run(config{contentDir: content, validateOnly: true}); code != 0 {
		t.Errorf("validate exit code = %d", code)
	}
}

func TestRunValidateMissingContentDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	// An absent tree is simply empty content, which validates clean.
	if code := run(config{contentDir: missing, validateOnly: true}); code != 0 {
		t.Errorf("validate exit code = %d", code)
	}
}

func TestServeConfigEnvDist(t *testing.T) {
	t.Setenv("SECWEEKLY_DIST", "/srv/site")
	t.Setenv("SECWEEKLY_INDEX", "/srv/site/index.db")

	// No -out flag: env values must win.
	webCfg, err := serveConfig(config{})
	if err != nil {
		t.Fatalf("serveConfig failed: %v", err)
	}
	if webCfg.DistDir != "/srv/site" {
		t.Errorf("DistDir = %q, want /srv/site", webCfg.DistDir)
	}
	if webCfg.IndexPath != "/srv/site/index.db" {
		t.Errorf("IndexPath = %q, want /srv/site/index.db", webCfg.IndexPath)
	}
}

func TestServeConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("SECWEEKLY_DIST", "/srv/site")

	webCfg, err := serveConfig(config{outDir: "public"})
	if err != nil {
		t.Fatalf("serveConfig failed: %v", err)
	}
	if webCfg.DistDir != "public" {
		t.Errorf("DistDir = %q, want public", webCfg.DistDir)
	}
	if webCfg.IndexPath != filepath.Join("public", "index.db") {
		t.Errorf("IndexPath = %q", webCfg.IndexPath)
	}
}

func TestServeConfigDefaults(t *testing.T) {
	for _, key := range []string{"SECWEEKLY_DIST", "SECWEEKLY_INDEX", "SECWEEKLY_BIND"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	webCfg, err := serveConfig(config{})
	if err != nil {
		t.Fatalf("serveConfig failed: %v", err)
	}
	if webCfg.DistDir != "dist" {
		t.Errorf("default DistDir = %q", webCfg.DistDir)
	}
}

func TestBuildOutDirDefault(t *testing.T) {
	if got := buildOutDir(config{}); got != "dist" {
		t.Errorf("buildOutDir default = %q", got)
	}
	if got := buildOutDir(config{outDir: "public"}); got != "public" {
		t.Errorf("buildOutDir override = %q", got)
	}
}

func TestRunBuildEmptyContentRendersFallback(t *testing.T) {
	content := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")

	if code := run(config{contentDir: content, outDir: out}); code != 0 {
		t.Fatalf("build exit code = %d", code)
	}

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "目前尚無週報") {
		t.Error("empty content build missing the fallback notice")
	}
}
