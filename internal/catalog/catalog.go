// Package catalog maps product names to their marketing copy.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var productsYAML []byte

// ErrEmptyTable indicates the description table held no entries.
var ErrEmptyTable = errors.New("catalog: description table is empty")

// Catalog resolves product names to descriptions. Lookup is exact and
// case-sensitive; unknown names fall back to a generic description.
type Catalog struct {
	descriptions map[string]string
	fallback     string
}

type tableFile struct {
	Fallback     string            `yaml:"fallback"`
	Descriptions map[string]string `yaml:"descriptions"`
}

// Load parses the embedded description table.
func Load() (*Catalog, error) {
	return parse(productsYAML)
}

func parse(raw []byte) (*Catalog, error) {
	var file tableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse table: %w", err)
	}
	if len(file.Descriptions) == 0 {
		return nil, ErrEmptyTable
	}
	if file.Fallback == "" {
		return nil, errors.New("catalog: fallback description is required")
	}
	return &Catalog{descriptions: file.Descriptions, fallback: file.Fallback}, nil
}

// Describe returns the marketing description for name, or the generic
// fallback when the name is not in the table.
func (c *Catalog) Describe(name string) string {
	if description, ok := c.descriptions[name]; ok {
		return description
	}
	return c.fallback
}
