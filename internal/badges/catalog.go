package badges

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Badges []Badge `yaml:"badges"`
}

// Catalog returns the built-in badge definitions in catalog order.
func Catalog() ([]Badge, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(raw []byte) ([]Badge, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse badge catalog: %w", err)
	}

	seen := make(map[string]bool)
	for i, b := range file.Badges {
		if err := validateBadge(b); err != nil {
			return nil, fmt.Errorf("badge %d (%s): %w", i, b.ID, err)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate badge id %q", b.ID)
		}
		seen[b.ID] = true
	}
	return file.Badges, nil
}

func validateBadge(b Badge) error {
	if b.ID == "" {
		return fmt.Errorf("missing id")
	}
	if b.Name == "" {
		return fmt.Errorf("missing name")
	}
	if !b.Rarity.Valid() {
		return fmt.Errorf("unknown rarity %q", b.Rarity)
	}
	if !b.Condition.Type.Valid() {
		return fmt.Errorf("unknown condition type %q", b.Condition.Type)
	}
	if b.Condition.Target <= 0 {
		return fmt.Errorf("condition target must be positive, got %d", b.Condition.Target)
	}
	return nil
}
