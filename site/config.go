// ABOUTME: Site configuration loaded from site.yaml in the content directory.
// ABOUTME: Carries the page titles, base URL, and feed metadata with defaults.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds site-wide settings from <content>/site.yaml.
type Config struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Author      string `yaml:"author,omitempty"`
	GlossaryURL string `yaml:"glossary_url,omitempty"`
}

// DefaultConfig returns the configuration used when site.yaml is absent.
func DefaultConfig() Config {
	return Config{
		Title:       "資安週報",
		Description: "每週資安重點摘要：漏洞、攻擊事件與威脅情報",
		BaseURL:     "https://astroicers.github.io/security-weekly/",
		GlossaryURL: "glossary/",
	}
}

// LoadConfig reads <root>/site.yaml, falling back to defaults when the file
// does not exist. Explicit values override defaults field by field.
func LoadConfig(root string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(root, "site.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read site.yaml: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("parse site.yaml: %w", err)
	}

	if loaded.Title != "" {
		cfg.Title = loaded.Title
	}
	if loaded.Description != "" {
		cfg.Description = loaded.Description
	}
	if loaded.BaseURL != "" {
		cfg.BaseURL = loaded.BaseURL
	}
	if loaded.Author != "" {
		cfg.Author = loaded.Author
	}
	if loaded.GlossaryURL != "" {
		cfg.GlossaryURL = loaded.GlossaryURL
	}

	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	return cfg, nil
}

// AbsURL joins a site-relative path onto the base URL.
func (c Config) AbsURL(rel string) string {
	return c.BaseURL + strings.TrimPrefix(rel, "/")
}
