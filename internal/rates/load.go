package rates

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/bc_2025.yaml
var bc2025 []byte

// Load returns the embedded BC 2025 table, validated.
func Load() (*Table, error) {
	return Parse(bc2025)
}

// Parse decodes and validates a YAML rate table.
func Parse(raw []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("rates: decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
