package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/microsoft/figma-variables-import/internal/result"
)

// Scenario defines an import scenario: input files, store settings, and the
// assertions the outcome must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Libraries enables team libraries in the store. Nil means enabled.
	Libraries *bool `yaml:"libraries,omitempty"`

	// ModeLimit caps modes per collection. Zero means no limit.
	ModeLimit int `yaml:"mode_limit,omitempty"`

	// Library is published into the store before the import runs.
	Library *Library `yaml:"library,omitempty"`

	// Files are the importer's input, in order.
	Files []File `yaml:"files"`

	// Assertions validate the result log and final state.
	Assertions []Assertion `yaml:"assertions"`
}

// File is one named input file.
type File struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// Library is a set of files imported into a separate store and published
// under Name.
type Library struct {
	Name  string `yaml:"name"`
	Files []File `yaml:"files"`
}

// Assertion validates the result log or the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "log_contains": an entry with Result and Text exists
	// - "log_count": exactly Count entries have Result
	// - "collection": Collection exists with exactly Modes, in order
	// - "variable": Variable exists in Collection with Kind and Values
	// - "variable_absent": no collection holds Variable
	Type string `yaml:"type"`

	Result result.Kind `yaml:"result,omitempty"`
	Text   string      `yaml:"text,omitempty"`
	Count  int         `yaml:"count,omitempty"`

	Collection string   `yaml:"collection,omitempty"`
	Modes      []string `yaml:"modes,omitempty"`

	Variable string `yaml:"variable,omitempty"`
	Kind     string `yaml:"kind,omitempty"`
	// Values are compared as formatted strings, keyed by mode name. Only the
	// listed modes are checked.
	Values map[string]string `yaml:"values,omitempty"`
}

// Assertion type constants.
const (
	AssertLogContains    = "log_contains"
	AssertLogCount       = "log_count"
	AssertCollection     = "collection"
	AssertVariable       = "variable"
	AssertVariableAbsent = "variable_absent"
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

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:".
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

// LibrariesEnabled reports whether the scenario's store has team libraries.
func (s *Scenario) LibrariesEnabled() bool {
	return s.Libraries == nil || *s.Libraries
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Files) == 0 {
		return fmt.Errorf("files list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.ModeLimit < 0 {
		return fmt.Errorf("mode_limit must be non-negative")
	}

	if err := validateFiles("files", s.Files); err != nil {
		return err
	}

	if s.Library != nil {
		if s.Library.Name == "" {
			return fmt.Errorf("library: name is required")
		}
		if !s.LibrariesEnabled() {
			return fmt.Errorf("library: requires libraries to be enabled")
		}
		if err := validateFiles("library.files", s.Library.Files); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateFiles(field string, files []File) error {
	seen := make(map[string]bool, len(files))
	for i, f := range files {
		if f.Name == "" {
			return fmt.Errorf("%s[%d]: name is required", field, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s[%d]: duplicate file name %q", field, i, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertLogContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for log_contains", index)
		}
		if err := validateResultKind(index, a.Result); err != nil {
			return err
		}
	case AssertLogCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for log_count", index)
		}
		if err := validateResultKind(index, a.Result); err != nil {
			return err
		}
	case AssertCollection:
		if a.Collection == "" {
			return fmt.Errorf("assertions[%d]: collection is required for collection", index)
		}
	case AssertVariable:
		if a.Variable == "" {
			return fmt.Errorf("assertions[%d]: variable is required for variable", index)
		}
	case AssertVariableAbsent:
		if a.Variable == "" {
			return fmt.Errorf("assertions[%d]: variable is required for variable_absent", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func validateResultKind(index int, k result.Kind) error {
	switch k {
	case result.KindInfo, result.KindError:
		return nil
	case "":
		return fmt.Errorf("assertions[%d]: result is required", index)
	default:
		return fmt.Errorf("assertions[%d]: result must be %q or %q, got %q", index, result.KindInfo, result.KindError, k)
	}
}
