// ABOUTME: Tests for the site builder: landing page cards, fallback notice,
// ABOUTME: report and term pages, JSON API output, assets, and the manifest.
package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/astroicers/secweekly/glossary"
	"github.com/astroicers/secweekly/weekly"
)

func testConfig() Config {
	return Config{
		Title:       "資安週報",
		Description: "每週資安重點摘要",
		BaseURL:     "https://example.com/weekly/",
	}
}

func testGlossary() *glossary.Glossary {
	terms := []glossary.Term{
		{
			ID:     "ransomware",
			TermEN: "Ransomware",
			TermZH: "勒索軟體",
			Definitions: glossary.Definitions{
				Brief:    "加密受害者資料並索取贖金的惡意程式",
				Standard: "勒索軟體會**加密**受害者的檔案並要求贖金。",
			},
			Category:     "malware",
			Tags:         []string{"加密", "贖金"},
			RelatedTerms: []string{"phishing", "not_a_term"},
			References:   map[string]string{"cisa": "https://www.cisa.gov/stopransomware"},
		},
		{
			ID:     "phishing",
			TermEN: "Phishing",
			TermZH: "網路釣魚",
			Definitions: glossary.Definitions{
				Brief: "偽裝成可信來源以騙取帳密的攻擊手法",
			},
			Category: "attack_types",
		},
	}
	cats := []glossary.Category{
		{ID: "attack_types", NameZH: "攻擊類型", Icon: "🎯"},
		{ID: "malware", NameZH: "惡意程式", Icon: "🦠", Description: "各類惡意軟體"},
	}
	return glossary.New(terms, cats)
}

func testReports() []weekly.Report {
	return []weekly.Report{
		{
			ID:      "SEC-WEEKLY-2025-32",
			Title:   "本週資安重點摘要",
			Date:    "2025-08-08",
			Summary: "三個重大漏洞與一起供應鏈事件",
			Body:    "## 本週焦點\n\n某廠商修補了零時差漏洞。\n",
		},
		{
			ID:    "SEC-WEEKLY-2025-31",
			Title: "上週回顧",
			Date:  "2025-08-01",
			Body:  "內容。\n",
		},
	}
}

func buildSite(t *testing.T, reports []weekly.Report) (string, *Manifest) {
	t.Helper()
	b, err := NewBuilder(testConfig(), testGlossary(), reports)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	b.Now = func() time.Time { return time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC) }

	out := t.TempDir()
	manifest, err := b.Build(out)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return out, manifest
}

func readOutput(t *testing.T, out, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestBuildLandingPageCards(t *testing.T) {
	reports := testReports()
	out, _ := buildSite(t, reports)
	html := readOutput(t, out, "index.html")

	if got := strings.Count(html, `class="report-card"`); got != len(reports) {
		t.Errorf("rendered %d cards, want %d", got, len(reports))
	}

	for _, r := range reports {
		if !strings.Contains(html, `href="reports/`+r.ID+`.html"`) {
			t.Errorf("card link for %s missing", r.ID)
		}
		if !strings.Contains(html, r.ID) || !strings.Contains(html, r.Title) || !strings.Contains(html, r.Date) {
			t.Errorf("card for %s does not display ID, title, and date verbatim", r.ID)
		}
	}

	// Newest report comes first on the page.
	first := strings.Index(html, "SEC-WEEKLY-2025-32")
	second := strings.Index(html, "SEC-WEEKLY-2025-31")
	if first < 0 || second < 0 || first > second {
		t.Error("reports not ordered newest first on the landing page")
	}

	if strings.Contains(html, "目前尚無週報") {
		t.Error("fallback notice rendered despite reports being present")
	}
}

func TestBuildEmptyReportListShowsFallback(t *testing.T) {
	out, _ := buildSite(t, nil)
	html := readOutput(t, out, "index.html")

	if strings.Count(html, `class="report-card"`) != 0 {
		t.Error("cards rendered for an empty report list")
	}
	if !strings.Contains(html, "目前尚無週報") {
		t.Error("fallback notice missing for empty report list")
	}
	if !strings.Contains(html, "weekly/feed.xml") {
		t.Error("fallback notice does not point at the RSS feed")
	}
}

func TestBuildReportPages(t *testing.T) {
	out, _ := buildSite(t, testReports())
	html := readOutput(t, out, "reports/SEC-WEEKLY-2025-32.html")

	if !strings.Contains(html, "本週資安重點摘要") {
		t.Error("report title missing")
	}
	if !strings.Contains(html, "<h2>本週焦點</h2>") {
		t.Error("markdown body not rendered to HTML")
	}
}

func TestBuildTermPages(t *testing.T) {
	out, _ := buildSite(t, testReports())
	html := readOutput(t, out, "glossary/ransomware/index.html")

	for _, want := range []string{
		"Ransomware", "勒索軟體",
		"加密受害者資料並索取贖金的惡意程式",
		"🦠 惡意程式",
		"<strong>加密</strong>", // markdown in the standard definition
		"相關術語",
		`href="../phishing/index.html"`,
		"https://www.cisa.gov/stopransomware",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("term page missing %q", want)
		}
	}

	// Unknown related IDs are dropped, not linked.
	if strings.Contains(html, "not_a_term") {
		t.Error("dangling related term rendered")
	}
}

func TestBuildGlossaryIndex(t *testing.T) {
	out, _ := buildSite(t, testReports())
	html := readOutput(t, out, "glossary/index.html")

	if !strings.Contains(html, "共收錄 <strong>2</strong> 個術語") {
		t.Error("term count missing from glossary index")
	}
	// Sections sorted by category ID: attack_types before malware.
	if strings.Index(html, "攻擊類型") > strings.Index(html, "惡意程式") {
		t.Error("glossary sections not sorted by category ID")
	}
	if !strings.Contains(html, `href="ransomware/index.html"`) {
		t.Error("term link missing from glossary index")
	}
}

func TestBuildCategoriesIndex(t *testing.T) {
	out, _ := buildSite(t, testReports())
	html := readOutput(t, out, "categories/index.html")

	if !strings.Contains(html, "各類惡意軟體") {
		t.Error("category description missing")
	}
	if !strings.Contains(html, "<strong>1</strong>") {
		t.Error("category term count missing")
	}
}

func TestBuildFeedOutput(t *testing.T) {
	out, _ := buildSite(t, testReports())
	rss := readOutput(t, out, "weekly/feed.xml")

	if got := strings.Count(rss, "<item>"); got != 2 {
		t.Errorf("feed has %d items, want 2", got)
	}
	if !strings.Contains(rss, "https://example.com/weekly/reports/SEC-WEEKLY-2025-32.html") {
		t.Error("feed item link missing or not absolute")
	}
}

func TestBuildAPIFiles(t *testing.T) {
	out, _ := buildSite(t, testReports())

	var termsDoc struct {
		Terms []glossary.Term `json:"terms"`
		Count int             `json:"count"`
	}
	raw := readOutput(t, out, "api/v1/terms.json")
	if err := json.Unmarshal([]byte(raw), &termsDoc); err != nil {
		t.Fatalf("terms.json invalid: %v", err)
	}
	if termsDoc.Count != 2 || len(termsDoc.Terms) != 2 {
		t.Errorf("terms.json count = %d, len = %d", termsDoc.Count, len(termsDoc.Terms))
	}
	// CJK must be stored unescaped.
	if !strings.Contains(raw, "勒索軟體") {
		t.Error("terms.json escapes CJK text")
	}

	var term glossary.Term
	raw = readOutput(t, out, "api/v1/terms/ransomware.json")
	if err := json.Unmarshal([]byte(raw), &term); err != nil {
		t.Fatalf("terms/ransomware.json invalid: %v", err)
	}
	if term.TermZH != "勒索軟體" {
		t.Errorf("TermZH = %q", term.TermZH)
	}

	var reportsDoc struct {
		Reports []ReportEntry `json:"reports"`
		Count   int           `json:"count"`
	}
	raw = readOutput(t, out, "api/v1/reports.json")
	if err := json.Unmarshal([]byte(raw), &reportsDoc); err != nil {
		t.Fatalf("reports.json invalid: %v", err)
	}
	if reportsDoc.Count != 2 {
		t.Errorf("reports.json count = %d", reportsDoc.Count)
	}
	if reportsDoc.Reports[0].Page != "reports/SEC-WEEKLY-2025-32.html" {
		t.Errorf("report page path = %q", reportsDoc.Reports[0].Page)
	}
}

func TestBuildManifest(t *testing.T) {
	out, manifest := buildSite(t, testReports())

	if manifest.BuildID == "" {
		t.Error("manifest missing build ID")
	}
	if manifest.TermCount != 2 || manifest.ReportCount != 2 {
		t.Errorf("manifest counts = %d terms, %d reports", manifest.TermCount, manifest.ReportCount)
	}

	var onDisk Manifest
	raw := readOutput(t, out, "manifest.json")
	if err := json.Unmarshal([]byte(raw), &onDisk); err != nil {
		t.Fatalf("manifest.json invalid: %v", err)
	}
	if onDisk.BuildID != manifest.BuildID {
		t.Error("manifest.json build ID differs from returned manifest")
	}

	for _, want := range []string{
		"index.html",
		"weekly/feed.xml",
		"api/v1/terms.json",
		"static/css/site.css",
		"glossary/ransomware/index.html",
	} {
		found := false
		for _, f := range onDisk.Files {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("manifest missing file %s", want)
		}
	}
}

func TestBuildStaticAssets(t *testing.T) {
	out, _ := buildSite(t, testReports())
	css := readOutput(t, out, "static/css/site.css")
	if !strings.Contains(css, ".report-card") {
		t.Error("stylesheet not copied")
	}
}
