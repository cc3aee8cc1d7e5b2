package plan

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var defaultFallbackYAML []byte

type fallbackFile struct {
	Plans []Plan `yaml:"plans"`
}

// LoadFallback decodes a fallback plan table from YAML and validates that it
// covers every tier exactly once. The table is injected data so it can be
// updated independently of code and tested in isolation.
func LoadFallback(data []byte) (*Catalog, error) {
	var file fallbackFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrInvalidFallback, err)
	}

	seen := make(map[Tier]bool, len(file.Plans))
	for _, p := range file.Plans {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: plan %q missing id or name", ErrInvalidFallback, p.ID)
		}
		if p.PostLimit < Unlimited {
			return nil, fmt.Errorf("%w: plan %q has invalid post limit %d", ErrInvalidFallback, p.ID, p.PostLimit)
		}
		if seen[p.Tier] {
			return nil, fmt.Errorf("%w: duplicate tier %s", ErrInvalidFallback, p.Tier)
		}
		seen[p.Tier] = true
	}

	for _, tier := range Tiers() {
		if !seen[tier] {
			return nil, fmt.Errorf("%w: missing tier %s", ErrInvalidFallback, tier)
		}
	}

	return NewCatalog(file.Plans), nil
}

// DefaultFallback returns the embedded three-tier fallback table.
// Panics only if the embedded data is corrupt, which is a build defect.
func DefaultFallback() *Catalog {
	catalog, err := LoadFallback(defaultFallbackYAML)
	if err != nil {
		panic(fmt.Errorf("embedded fallback table: %w", err))
	}
	return catalog
}
