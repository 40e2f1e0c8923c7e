// Package content loads the catalog of content lines the device can show.
//
// The catalog is a YAML document with a single `lines` list. A default
// catalog (the device's built-in table) is embedded so the binary works
// with no external files; an empty catalog is legal and degrades to the
// engine's "nothing available" behavior.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Catalog is an ordered list of content lines. The engine works purely in
// indices into this list.
type Catalog struct {
	Lines []string `yaml:"lines"`
}

// Count returns the number of content items.
func (c *Catalog) Count() int {
	return len(c.Lines)
}

// Line returns the content at an index. The second return is false when
// the index is out of range (the renderer shows a warning frame instead).
func (c *Catalog) Line(index int) (string, bool) {
	if index < 0 || index >= len(c.Lines) {
		return "", false
	}
	return c.Lines[index], true
}

// Default returns the embedded built-in catalog.
func Default() *Catalog {
	c, err := parse(defaultCatalogYAML)
	if err != nil {
		// The embedded catalog is validated by tests; a parse failure here
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("content: embedded catalog invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path returns the
// embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i, line := range c.Lines {
		if strings.TrimSpace(line) == "" {
			return nil, fmt.Errorf("line %d is empty", i)
		}
	}
	return &c, nil
}
