// Package yaml provides YAML-based rule file parsing for the curated tables.
package yaml

import (
	"fmt"
	"os"

	"github.com/rewintool/rewin/internal/domain/services"
	"gopkg.in/yaml.v3"
)

// yamlRules represents the raw rule file structure
type yamlRules struct {
	Mappings []yamlMapping `yaml:"mappings"`
	Vendors  []yamlVendor  `yaml:"vendors"`
}

type yamlMapping struct {
	Pattern   string `yaml:"pattern"`
	ID        string `yaml:"id"`
	Ecosystem string `yaml:"ecosystem"`
}

type yamlVendor struct {
	Publisher string `yaml:"publisher"`
	URL       string `yaml:"url"`
}

// RulesLoader parses user rule files that extend the curated tables.
// File order is preserved and loaded rules are consulted before the
// defaults, so a user pattern can shadow a built-in one.
type RulesLoader struct{}

// NewRulesLoader creates a new rules loader
func NewRulesLoader() *RulesLoader {
	return &RulesLoader{}
}

// Load parses a rule file into mapping rules and vendor pages
func (l *RulesLoader) Load(path string) ([]services.MappingRule, []services.VendorPage, error) {
	//nolint:gosec // G304: rules path comes from a CLI flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var raw yamlRules
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	mappings := make([]services.MappingRule, 0, len(raw.Mappings))
	for i, m := range raw.Mappings {
		if m.Pattern == "" || m.ID == "" {
			return nil, nil, fmt.Errorf("mapping %d: pattern and id are required", i)
		}
		eco, err := parseEcosystem(m.Ecosystem)
		if err != nil {
			return nil, nil, fmt.Errorf("mapping %d (%s): %w", i, m.Pattern, err)
		}
		mappings = append(mappings, services.MappingRule{
			Pattern:   m.Pattern,
			ID:        m.ID,
			Ecosystem: eco,
		})
	}

	vendors := make([]services.VendorPage, 0, len(raw.Vendors))
	for i, v := range raw.Vendors {
		if v.Publisher == "" || v.URL == "" {
			return nil, nil, fmt.Errorf("vendor %d: publisher and url are required", i)
		}
		vendors = append(vendors, services.VendorPage{
			Publisher: v.Publisher,
			URL:       v.URL,
		})
	}

	return mappings, vendors, nil
}

func parseEcosystem(s string) (services.Ecosystem, error) {
	switch s {
	case "", "winget":
		return services.EcosystemWinget, nil
	case "choco", "chocolatey":
		return services.EcosystemChocolatey, nil
	default:
		return "", fmt.Errorf("unknown ecosystem %q (expected winget or chocolatey)", s)
	}
}
