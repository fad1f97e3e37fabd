package data

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML layout of a catalog.
type catalogFile struct {
	Skills []SkillTemplate `yaml:"skills"`
	Cards  []CardTemplate  `yaml:"cards"`
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	cat, err := ParseCatalog(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	slog.Info("loaded catalog", "path", path, "cards", cat.CardCount(), "skills", cat.SkillCount())
	return cat, nil
}

// ParseCatalog decodes a YAML catalog. Unknown fields are rejected.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return NewCatalog(f.Cards, f.Skills)
}
