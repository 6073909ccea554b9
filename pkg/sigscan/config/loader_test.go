package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/signalworks/sigscan/pkg/sigscan/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDebtSourcesJSON(t *testing.T) {
	path := writeFile(t, "sources.json", `{
		"rss_feeds": [
			{"name": "Eng Weekly", "url": "https://example.com/feed.xml"},
			{"name": "Dev Digest", "url": "https://example.org/rss"}
		]
	}`)

	doc, err := LoadDebtSources(path)
	if err != nil {
		t.Fatalf("LoadDebtSources: %v", err)
	}
	if len(doc.RSSFeeds) != 2 {
		t.Fatalf("got %d feeds, want 2", len(doc.RSSFeeds))
	}
	if doc.RSSFeeds[0].Name != "Eng Weekly" {
		t.Errorf("feed name = %q", doc.RSSFeeds[0].Name)
	}
}

func TestLoadRegionalSourcesYAML(t *testing.T) {
	path := writeFile(t, "sources.yaml", `
subreddits:
  - austin
  - texas
regional_focus:
  - Austin
  - Texas
  - ATX
`)

	doc, err := LoadRegionalSources(path)
	if err != nil {
		t.Fatalf("LoadRegionalSources: %v", err)
	}
	if len(doc.Subreddits) != 2 || len(doc.RegionalFocus) != 3 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	_, err := LoadDebtSources(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadSourcesMalformed(t *testing.T) {
	path := writeFile(t, "bad.json", `{"rss_feeds": [`)
	if _, err := LoadDebtSources(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadSourcesEmptyLists(t *testing.T) {
	path := writeFile(t, "empty.json", `{"rss_feeds": []}`)
	if _, err := LoadDebtSources(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty feed list, got %v", err)
	}

	path = writeFile(t, "nosubs.json", `{"subreddits": [], "regional_focus": ["x"]}`)
	if _, err := LoadRegionalSources(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty subreddits, got %v", err)
	}
}

func TestLoadKeywordsPreservesOrder(t *testing.T) {
	path := writeFile(t, "keywords.json", `{
		"debt": ["Legacy System", "refactor"],
		"help": ["seeking help"],
		"age": ["outdated"]
	}`)

	tax, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}

	want := []string{"legacy system", "refactor", "seeking help", "outdated"}
	if got := tax.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestLoadKeywordsYAML(t *testing.T) {
	path := writeFile(t, "keywords.yaml", `
funding:
  - raised
  - series
hiring:
  - hiring
`)

	tax, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}

	want := []string{"raised", "series", "hiring"}
	if got := tax.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestLoadKeywordsRejectsNonObject(t *testing.T) {
	path := writeFile(t, "keywords.json", `["just", "a", "list"]`)
	if _, err := LoadKeywords(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadKeywordsEmpty(t *testing.T) {
	path := writeFile(t, "keywords.json", `{}`)
	if _, err := LoadKeywords(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty taxonomy, got %v", err)
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("DEBT_SCANNER_ENABLED", "false")
	t.Setenv("REGIONAL_MONITOR_ENABLED", "TRUE")
	t.Setenv("SHEET_NAME", "")

	opts := OptionsFromEnv()
	if opts.SpreadsheetID != "sheet-123" {
		t.Errorf("SpreadsheetID = %q", opts.SpreadsheetID)
	}
	if opts.DebtScannerEnabled {
		t.Error("DebtScannerEnabled should be false")
	}
	if !opts.RegionalMonitorEnabled {
		t.Error("RegionalMonitorEnabled should be true")
	}
	if opts.SheetName != "Automation Queue" {
		t.Errorf("SheetName default = %q", opts.SheetName)
	}
	if opts.RedditUserAgent == "" {
		t.Error("RedditUserAgent should default to a non-empty value")
	}
}
