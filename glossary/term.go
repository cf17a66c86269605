// ABOUTME: Term and category types for the security glossary, shared by the
// ABOUTME: YAML loader, the site builder, and the static JSON API encoder.
package glossary

// Term is a single glossary entry loaded from a terms/*.yaml file.
// The JSON tags define the shape served by the static API, which exposes
// everything except usage guidance and external references.
type Term struct {
	ID           string            `yaml:"id" json:"id"`
	TermEN       string            `yaml:"term_en" json:"term_en"`
	TermZH       string            `yaml:"term_zh" json:"term_zh"`
	Definitions  Definitions       `yaml:"definitions" json:"definitions"`
	Category     string            `yaml:"category" json:"category"`
	Subcategory  string            `yaml:"subcategory,omitempty" json:"subcategory"`
	Tags         []string          `yaml:"tags,omitempty" json:"tags"`
	RelatedTerms []string          `yaml:"related_terms,omitempty" json:"related_terms"`
	Aliases      Aliases           `yaml:"aliases,omitempty" json:"aliases"`
	Usage        Usage             `yaml:"usage,omitempty" json:"-"`
	References   map[string]string `yaml:"references,omitempty" json:"-"`

	// SourceFile is the relative path of the YAML file the term came from,
	// e.g. "terms/malware.yaml". Set by the loader, not part of the schema.
	SourceFile string `yaml:"-" json:"-"`
}

// Definitions holds the short and long form definitions of a term.
// Brief is required; Standard is the full prose definition.
type Definitions struct {
	Brief    string `yaml:"brief" json:"brief"`
	Standard string `yaml:"standard,omitempty" json:"standard,omitempty"`
}

// Aliases lists alternative names for a term in each language.
type Aliases struct {
	ZH []string `yaml:"zh,omitempty" json:"zh,omitempty"`
	EN []string `yaml:"en,omitempty" json:"en,omitempty"`
}

// Usage holds editorial guidance: example sentences and terms to avoid.
type Usage struct {
	Examples []string `yaml:"examples,omitempty"`
	Avoid    []string `yaml:"avoid,omitempty"`
}

// Category is a glossary grouping loaded from meta/categories.yaml.
type Category struct {
	ID          string `yaml:"id" json:"id"`
	NameZH      string `yaml:"name_zh" json:"name_zh"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// DefaultCategoryIcon is used when a term references a category that carries
// no icon of its own.
const DefaultCategoryIcon = "\U0001f4da"
