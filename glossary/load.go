// ABOUTME: Loads glossary terms and category metadata from a content directory.
// ABOUTME: Parses terms/*.yaml files and meta/categories.yaml with gopkg.in/yaml.v3.
package glossary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// termsFile is the top-level document shape of a terms/*.yaml file.
type termsFile struct {
	Terms []Term `yaml:"terms"`
}

// categoriesFile is the top-level document shape of meta/categories.yaml.
type categoriesFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadDir loads all terms and categories under root, which is expected to
// contain terms/*.yaml and meta/categories.yaml. Files are read in sorted
// order so term ordering is stable across runs. Returns an indexed Glossary.
func LoadDir(root string) (*Glossary, error) {
	categories, err := loadCategories(filepath.Join(root, "meta", "categories.yaml"))
	if err != nil {
		return nil, err
	}

	terms, err := loadTerms(filepath.Join(root, "terms"))
	if err != nil {
		return nil, err
	}

	return New(terms, categories), nil
}

// loadCategories parses the category metadata file. A missing file yields an
// empty category list rather than an error so bare term sets still load.
func loadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read categories: %w", err)
	}

	var doc categoriesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc.Categories, nil
}

// loadTerms parses every *.yaml file in dir and concatenates their term lists.
// A missing directory yields an empty glossary so report-only trees still build.
func loadTerms(dir string) ([]Term, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read terms dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var terms []Term
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var doc termsFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse terms/%s: %w", name, err)
		}

		for i := range doc.Terms {
			doc.Terms[i].SourceFile = "terms/" + name
		}
		terms = append(terms, doc.Terms...)
	}

	return terms, nil
}
