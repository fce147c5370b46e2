package extract

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var selectorsYAML []byte

// SelectorSet is the entire per-retailer contribution to the pipeline: data,
// not code. Every retailer runs through the same cascade primitive.
type SelectorSet struct {
	// Ready is a heading-like selector whose presence signals the product
	// page finished rendering. Optional; the session falls back to a
	// generic DOM-ready check.
	Ready string   `yaml:"ready"`
	Title []string `yaml:"title"`
	Price []string `yaml:"price"`
	Image []string `yaml:"image"`
}

func loadSelectorSets() (map[Retailer]SelectorSet, error) {
	sets := map[Retailer]SelectorSet{}
	if err := yaml.Unmarshal(selectorsYAML, &sets); err != nil {
		return nil, fmt.Errorf("parse selectors.yaml: %w", err)
	}
	for _, r := range supportedRetailers {
		if _, ok := sets[r]; !ok {
			return nil, fmt.Errorf("selectors.yaml: no selector set for %q", r)
		}
	}
	return sets, nil
}
