package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/axis/internal/ir"
	"github.com/roach88/axis/internal/robot"
)

// marshalStrings converts a string list to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON for deterministic serialization.
func marshalStrings(ss []string) (string, error) {
	data, err := ir.MarshalCanonical(ir.Strings(ss))
	if err != nil {
		return "", fmt.Errorf("marshal strings: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings parses a JSON string list. An empty list reads back as nil
// so stored and freshly built values compare equal.
func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var ss []string
	if err := json.Unmarshal([]byte(data), &ss); err != nil {
		return nil, fmt.Errorf("unmarshal strings: %w", err)
	}
	return ss, nil
}

// marshalJoints converts a joint set to JSON TEXT, or NULL when absent.
// Joint angles are floats, which canonical JSON cannot carry, so this uses
// json.Encoder with HTML escaping disabled; float64 round-trips exactly.
func marshalJoints(j *robot.JointSet) (any, error) {
	if j == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(j); err != nil {
		return nil, fmt.Errorf("marshal joints: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalJoints parses joints stored by marshalJoints.
func unmarshalJoints(data *string) (*robot.JointSet, error) {
	if data == nil {
		return nil, nil
	}
	var j robot.JointSet
	if err := json.Unmarshal([]byte(*data), &j); err != nil {
		return nil, fmt.Errorf("unmarshal joints: %w", err)
	}
	return &j, nil
}
