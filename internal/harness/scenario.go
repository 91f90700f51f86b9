// Package harness runs end-to-end pipeline scenarios defined in YAML and
// compares their outcomes against golden files. Scenarios pin the clock,
// so validation and tier assignment are fully reproducible.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a sequence of candidate
// batches submitted in order, plus expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Today pins the validation clock (YYYY-MM-DD).
	Today string `yaml:"today"`

	// RetierOnIngest mirrors the pipeline option. Defaults to true.
	RetierOnIngest *bool `yaml:"retier_on_ingest,omitempty"`

	// Batches are submitted in order.
	Batches []BatchStep `yaml:"batches"`

	// Tiers optionally asserts final tier assignments per customer.
	Tiers map[string]string `yaml:"tiers,omitempty"`

	// Counts optionally asserts final row counts per table.
	Counts map[string]int `yaml:"counts,omitempty"`
}

// BatchStep is one candidate batch plus its expected partition sizes.
type BatchStep struct {
	Entity string `yaml:"entity"`

	// Columns fixes the batch column order; rows may omit trailing values.
	Columns []string `yaml:"columns"`

	// Rows are candidate records, values in column order.
	Rows [][]string `yaml:"rows"`

	// Expect optionally asserts the partition for this batch.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause asserts the accept/reject split of one batch.
type ExpectClause struct {
	Accepted int `yaml:"accepted"`
	Rejected int `yaml:"rejected"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Today == "" {
		return nil, fmt.Errorf("scenario %s: today is required", path)
	}
	for i, b := range s.Batches {
		if b.Entity == "" {
			return nil, fmt.Errorf("scenario %s: batch %d: entity is required", path, i)
		}
		if len(b.Columns) == 0 {
			return nil, fmt.Errorf("scenario %s: batch %d: columns are required", path, i)
		}
	}

	return &s, nil
}
