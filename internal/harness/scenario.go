package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of contact book operations run against a
// fresh store, with optional expectations per step.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Steps run in order against the same store.
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Which fields apply depends on Op.
//
// UIDs and Content may write "$n" for the n-th generated identifier.
type Step struct {
	Op string `yaml:"op"`

	Book       string   `yaml:"book,omitempty"`
	To         string   `yaml:"to,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"`
	Names      []string `yaml:"names,omitempty"`
	UIDs       []string `yaml:"uids,omitempty"`
	Properties []string `yaml:"properties,omitempty"`
	Operator   string   `yaml:"operator,omitempty"`
	Forgive    bool     `yaml:"forgive,omitempty"`
	Content    string   `yaml:"content,omitempty"`

	// Expect is checked after the step runs. A step without Expect must
	// succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the outcome of a step.
type Expect struct {
	// Error is the expected error code, e.g. "NOT_FOUND".
	Error string `yaml:"error,omitempty"`

	// Output is compared line by line with what the step produced. Nil
	// leaves the output unchecked; an empty list requires no output.
	Output []string `yaml:"output,omitempty"`
}

// Operation names.
const (
	OpCreateBook     = "create_book"
	OpDeleteBook     = "delete_book"
	OpRenameBook     = "rename_book"
	OpListBooks      = "list_books"
	OpCreateContact  = "create_contact"
	OpDeleteContacts = "delete_contacts"
	OpAddToBook      = "add_to_book"
	OpRemoveFromBook = "remove_from_book"
	OpFind           = "find"
	OpShow           = "show"
	OpSet            = "set"
	OpUnset          = "unset"
	OpIndex          = "index"
	OpImport         = "import"
	OpExport         = "export"
	OpRead           = "read"
	OpCheck          = "check"
	OpRepair         = "repair"
)

var knownOps = map[string]bool{
	OpCreateBook: true, OpDeleteBook: true, OpRenameBook: true, OpListBooks: true,
	OpCreateContact: true, OpDeleteContacts: true, OpAddToBook: true, OpRemoveFromBook: true,
	OpFind: true, OpShow: true, OpSet: true, OpUnset: true, OpIndex: true,
	OpImport: true, OpExport: true, OpRead: true, OpCheck: true, OpRepair: true,
}

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
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
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
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps must contain at least one step")
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if !knownOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		switch step.Op {
		case OpCreateBook, OpDeleteBook:
			if step.Book == "" {
				return fmt.Errorf("steps[%d]: %s requires book", i, step.Op)
			}
		case OpRenameBook:
			if step.Book == "" || step.To == "" {
				return fmt.Errorf("steps[%d]: rename_book requires book and to", i)
			}
		case OpCreateContact:
			if len(step.Names) == 0 {
				return fmt.Errorf("steps[%d]: create_contact requires names", i)
			}
		case OpSet, OpUnset:
			if len(step.UIDs) == 0 || len(step.Properties) == 0 {
				return fmt.Errorf("steps[%d]: %s requires uids and properties", i, step.Op)
			}
		case OpImport:
			if step.Content == "" {
				return fmt.Errorf("steps[%d]: import requires content", i)
			}
		}
	}
	return nil
}
