package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/chalmers-thesis/internal/host"
	"github.com/roach88/chalmers-thesis/internal/ir"
)

// DefaultToken is the document token of scenarios that do not set one.
const DefaultToken = "test-doc-default"

// Scenario defines one document compile and what to check about it.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Token is an optional fixed document token.
	Token string `yaml:"token,omitempty"`

	// Document is the compile input.
	Document host.Document `yaml:"document"`

	// Assertions validate the trace, the labels, the output and the store.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a run. Which fields are used depends
// on Type.
type Assertion struct {
	Type string `yaml:"type"`

	// Label and Number are used by label_number.
	Label  string `yaml:"label,omitempty"`
	Number string `yaml:"number"`

	// Element is used by trace_count and step_error.
	Element string `yaml:"element,omitempty"`

	// Elements is the expected relative order (trace_order).
	Elements []string `yaml:"elements,omitempty"`

	// Count is the expected number of evaluations (trace_count).
	Count int `yaml:"count,omitempty"`

	// Code is the expected error code (step_error).
	Code string `yaml:"code,omitempty"`

	// Text is the expected output fragment (output_contains).
	Text string `yaml:"text,omitempty"`

	// List and Entries are used by list_entries.
	List    string   `yaml:"list,omitempty"`
	Entries []string `yaml:"entries,omitempty"`
}

// Assertion type constants.
const (
	AssertLabelNumber    = "label_number"
	AssertTraceOrder     = "trace_order"
	AssertTraceCount     = "trace_count"
	AssertStepError      = "step_error"
	AssertOutputContains = "output_contains"
	AssertListEntries    = "list_entries"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	switch s.Document.Format {
	case ir.FormatHTML, ir.FormatLaTeX:
	case "":
		return fmt.Errorf("document.format is required")
	default:
		return fmt.Errorf("document.format %q is not html or latex", s.Document.Format)
	}
	if len(s.Document.Elements) == 0 {
		return fmt.Errorf("document.elements list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertLabelNumber:
		if a.Label == "" {
			return fmt.Errorf("assertions[%d]: label is required for label_number", index)
		}
	case AssertTraceOrder:
		if len(a.Elements) == 0 {
			return fmt.Errorf("assertions[%d]: elements list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Element == "" {
			return fmt.Errorf("assertions[%d]: element is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertStepError:
		if a.Element == "" || a.Code == "" {
			return fmt.Errorf("assertions[%d]: element and code are required for step_error", index)
		}
	case AssertOutputContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_contains", index)
		}
	case AssertListEntries:
		if a.List == "" {
			return fmt.Errorf("assertions[%d]: list is required for list_entries", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
