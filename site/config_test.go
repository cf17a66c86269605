// ABOUTME: Tests for site.yaml loading: defaults, field overrides, trailing
// ABOUTME: slash normalization, and absolute URL joining.
package site

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverridesFieldByField(t *testing.T) {
	root := t.TempDir()
	err := os.WriteFile(filepath.Join(root, "site.yaml"), []byte(`title: 測試週報
base_url: https://example.com/weekly
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Title != "測試週報" {
		t.Errorf("Title = %q", cfg.Title)
	}
	// Unset fields keep their defaults.
	if cfg.Description != DefaultConfig().Description {
		t.Errorf("Description = %q", cfg.Description)
	}
	// Base URL gains a trailing slash.
	if cfg.BaseURL != "https://example.com/weekly/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadConfigBadYAMLFails(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "site.yaml"), []byte("title: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(root); err == nil {
		t.Fatal("expected error for malformed site.yaml")
	}
}

func TestAbsURL(t *testing.T) {
	cfg := Config{BaseURL: "https://example.com/weekly/"}

	tests := []struct {
		rel  string
		want string
	}{
		{"reports/SEC-WEEKLY-2025-32.html", "https://example.com/weekly/reports/SEC-WEEKLY-2025-32.html"},
		{"/weekly/feed.xml", "https://example.com/weekly/weekly/feed.xml"},
		{"", "https://example.com/weekly/"},
	}
	for _, tt := range tests {
		if got := cfg.AbsURL(tt.rel); got != tt.want {
			t.Errorf("AbsURL(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}
