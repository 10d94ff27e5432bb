package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/axis/internal/motion"
)

// Scenario defines a conformance test scenario.
// Scenarios build a job and assert on the resulting program and history.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Job is the CUE job directory to load.
	// Relative paths are resolved against the scenario file's directory.
	Job string `yaml:"job"`

	// RunID is an optional fixed run ID for deterministic tests.
	// If empty, defaults to testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Expect holds whole-program expectations.
	Expect Expect `yaml:"expect"`

	// Assertions are finer-grained checks on the program and store.
	// Supported types: code_contains, motion_order, instruction_count, final_state
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect states what the built program must be.
type Expect struct {
	// Instructions are the instruction codes in program order.
	// If empty, codes are not compared.
	Instructions []string `yaml:"instructions,omitempty"`

	// Diagnostics are the program's diagnostics as Program.AllDiagnostics
	// reports them. Omitted means none.
	Diagnostics []string `yaml:"diagnostics,omitempty"`

	// Unreachable lists the seqs of unreachable instructions. Omitted means none.
	Unreachable []int64 `yaml:"unreachable,omitempty"`

	// Errors lists validation codes the job must be rejected with, in order.
	// When set, the job is not built.
	Errors []string `yaml:"errors,omitempty"`
}

// Assertion validates the program or the stored history.
type Assertion struct {
	// Type specifies the assertion type:
	// - "code_contains": instruction Seq's code contains Text
	// - "motion_order": Motions appear in this order
	// - "instruction_count": exactly Count instructions (of Motion, if given)
	// - "final_state": Query table and verify expected values
	Type string `yaml:"type"`

	// Seq is the instruction sequence number (used by code_contains).
	Seq int64 `yaml:"seq,omitempty"`

	// Text is the expected substring (used by code_contains).
	Text string `yaml:"text,omitempty"`

	// Motions is the expected motion order (used by motion_order).
	Motions []string `yaml:"motions,omitempty"`

	// Motion filters instruction_count to one motion type.
	Motion string `yaml:"motion,omitempty"`

	// Count is the expected number of instructions (used by instruction_count).
	Count int `yaml:"count,omitempty"`

	// Table is the store table name (used by final_state).
	Table string `yaml:"table,omitempty"`

	// Where specifies query filters (used by final_state).
	// All fields must match exactly.
	Where map[string]interface{} `yaml:"where,omitempty"`

	// Expect contains expected field values (used by final_state).
	// Subset match - only specified fields are validated.
	Expect map[string]interface{} `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertCodeContains     = "code_contains"
	AssertMotionOrder      = "motion_order"
	AssertInstructionCount = "instruction_count"
	AssertFinalState       = "final_state"
)

// LoadScenario reads and parses a scenario YAML file, resolving the job path
// relative to the scenario file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the job path relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the job path relative to base path BEFORE validation
	if scenario.Job != "" && !filepath.IsAbs(scenario.Job) && basePath != "" {
		scenario.Job = filepath.Join(basePath, scenario.Job)
	}

	// Validate required fields (now with resolved paths)
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

	if s.Job == "" {
		return fmt.Errorf("job is required")
	}

	// Validate job path exists
	if _, err := os.Stat(s.Job); os.IsNotExist(err) {
		return fmt.Errorf("job directory not found: %s", s.Job)
	}

	if len(s.Expect.Errors) > 0 && (len(s.Expect.Instructions) > 0 || len(s.Assertions) > 0) {
		return fmt.Errorf("expect.errors cannot be combined with instructions or assertions")
	}

	for i, seq := range s.Expect.Unreachable {
		if seq < 1 {
			return fmt.Errorf("expect.unreachable[%d]: seq must be positive", i)
		}
	}

	// Validate assertions
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertCodeContains:
		if a.Seq < 1 {
			return fmt.Errorf("assertions[%d]: seq is required for code_contains", index)
		}
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for code_contains", index)
		}
	case AssertMotionOrder:
		if len(a.Motions) == 0 {
			return fmt.Errorf("assertions[%d]: motions list is required for motion_order", index)
		}
		for _, m := range a.Motions {
			if _, err := motion.ParseMotionType(m); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
	case AssertInstructionCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for instruction_count", index)
		}
		if a.Motion != "" {
			if _, err := motion.ParseMotionType(a.Motion); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
