package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/signalworks/sigscan/pkg/sigscan/internalerr"
	"github.com/signalworks/sigscan/pkg/sigscan/match"
)

// LoadDebtSources reads the debt scanner's source document.
func LoadDebtSources(path string) (DebtSources, error) {
	var doc DebtSources
	if err := load(path, &doc); err != nil {
		return DebtSources{}, err
	}
	if len(doc.RSSFeeds) == 0 {
		return DebtSources{}, fmt.Errorf("%w: %s lists no rss_feeds", internalerr.ErrInvalidConfig, path)
	}
	return doc, nil
}

// LoadRegionalSources reads the regional monitor's source document.
func LoadRegionalSources(path string) (RegionalSources, error) {
	var doc RegionalSources
	if err := load(path, &doc); err != nil {
		return RegionalSources{}, err
	}
	if len(doc.Subreddits) == 0 {
		return RegionalSources{}, fmt.Errorf("%w: %s lists no subreddits", internalerr.ErrInvalidConfig, path)
	}
	if len(doc.RegionalFocus) == 0 {
		return RegionalSources{}, fmt.Errorf("%w: %s lists no regional_focus", internalerr.ErrInvalidConfig, path)
	}
	return doc, nil
}

// load unmarshals a JSON or YAML document by extension.
func load(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
		}
	}
	return nil
}

// LoadKeywords reads a category → keyword-list document. Category order
// follows the document so that flattened keyword order is reproducible.
func LoadKeywords(path string) (match.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return match.Taxonomy{}, fmt.Errorf("%w: read %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	var tax match.Taxonomy
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		tax, err = keywordsFromYAML(data)
	default:
		tax, err = keywordsFromJSON(data)
	}
	if err != nil {
		return match.Taxonomy{}, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if tax.Len() == 0 {
		return match.Taxonomy{}, fmt.Errorf("%w: %s contains no keywords", internalerr.ErrInvalidConfig, path)
	}
	return tax, nil
}

// keywordsFromJSON walks the object token by token; encoding/json maps
// would lose key order.
func keywordsFromJSON(data []byte) (match.Taxonomy, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return match.Taxonomy{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return match.Taxonomy{}, fmt.Errorf("keyword document must be a JSON object")
	}

	var tax match.Taxonomy
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return match.Taxonomy{}, err
		}
		name, _ := nameTok.(string)

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return match.Taxonomy{}, fmt.Errorf("category %q: %v", name, err)
		}
		tax.Categories = append(tax.Categories, match.Category{Name: name, Keywords: keywords})
	}
	return tax, nil
}

func keywordsFromYAML(data []byte) (match.Taxonomy, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return match.Taxonomy{}, err
	}
	if len(root.Content) == 0 {
		return match.Taxonomy{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return match.Taxonomy{}, fmt.Errorf("keyword document must be a mapping")
	}

	var tax match.Taxonomy
	for i := 0; i+1 < len(doc.Content); i += 2 {
		var keywords []string
		if err := doc.Content[i+1].Decode(&keywords); err != nil {
			return match.Taxonomy{}, fmt.Errorf("category %q: %v", doc.Content[i].Value, err)
		}
		tax.Categories = append(tax.Categories, match.Category{Name: doc.Content[i].Value, Keywords: keywords})
	}
	return tax, nil
}
