package harness

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/roach88/axis/internal/motion"
	"github.com/roach88/axis/internal/program"
	"github.com/roach88/axis/internal/store"
)

// validIdentifier matches valid SQL identifiers (table/column names).
// Only allows alphanumeric and underscore, must start with letter or underscore.
// This prevents SQL injection via identifier interpolation.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string                // Assertion type for categorization
	Expected string                // Human-readable expected outcome
	Actual   string                // Human-readable actual outcome
	Listing  []program.Instruction // Program instructions for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with assertion type
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Listing) > 0 {
		fmt.Fprintf(&buf, "\nProgram:\n")
		for _, in := range e.Listing {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", in.Seq, in.Motion, in.Code)
		}
	}

	return buf.String()
}

// assertCodeContains checks that the instruction at assertion.Seq carries
// assertion.Text in its code.
func assertCodeContains(prog *program.Program, assertion Assertion) error {
	for _, in := range prog.Instructions {
		if in.Seq != assertion.Seq {
			continue
		}
		if strings.Contains(in.Code, assertion.Text) {
			return nil
		}
		return &AssertionError{
			Type:     AssertCodeContains,
			Expected: fmt.Sprintf("instruction %d to contain %q", assertion.Seq, assertion.Text),
			Actual:   in.Code,
			Listing:  prog.Instructions,
		}
	}

	return &AssertionError{
		Type:     AssertCodeContains,
		Expected: fmt.Sprintf("instruction %d", assertion.Seq),
		Actual:   "no such instruction",
		Listing:  prog.Instructions,
	}
}

// assertMotionOrder checks that the motions appear in the specified order.
// They don't need to be consecutive (intervening instructions are allowed).
func assertMotionOrder(prog *program.Program, assertion Assertion) error {
	next := 0
	for _, in := range prog.Instructions {
		if next == len(assertion.Motions) {
			break
		}
		want, err := motion.ParseMotionType(assertion.Motions[next])
		if err != nil {
			return err
		}
		if in.Motion == want {
			next++
		}
	}

	if next < len(assertion.Motions) {
		return &AssertionError{
			Type:     AssertMotionOrder,
			Expected: fmt.Sprintf("motions in order: %v", assertion.Motions),
			Actual:   fmt.Sprintf("%s not found after %v", assertion.Motions[next], assertion.Motions[:next]),
			Listing:  prog.Instructions,
		}
	}

	return nil
}

// assertInstructionCount checks the program has exactly assertion.Count
// instructions, counting only assertion.Motion when it is set.
func assertInstructionCount(prog *program.Program, assertion Assertion) error {
	count := len(prog.Instructions)
	what := "instructions"

	if assertion.Motion != "" {
		want, err := motion.ParseMotionType(assertion.Motion)
		if err != nil {
			return err
		}
		count = 0
		for _, in := range prog.Instructions {
			if in.Motion == want {
				count++
			}
		}
		what = want.String() + " instructions"
	}

	// Check exact count match
	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertInstructionCount,
			Expected: fmt.Sprintf("%d %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d %s", count, what),
			Listing:  prog.Instructions,
		}
	}

	return nil
}

// assertFinalState checks if a store table contains expected values.
// Queries the table with parameterized SQL and validates
// expected values using subset semantics.
//
// Security: Table and column names are validated against a whitelist pattern
// to prevent SQL injection via identifier interpolation.
func assertFinalState(ctx context.Context, st *store.Store, assertion Assertion) error {
	if assertion.Table == "" {
		return fmt.Errorf("final_state assertion requires table name")
	}

	// Validate table name to prevent SQL injection (identifiers can't be parameterized)
	if !validIdentifier.MatchString(assertion.Table) {
		return fmt.Errorf("invalid table name %q: must match pattern %s", assertion.Table, validIdentifier.String())
	}

	// Build WHERE clause with parameterized SQL (never interpolate values)
	whereSQL, whereArgs, err := buildWhereClause(assertion.Where)
	if err != nil {
		return err // Identifier validation failed
	}

	// Build SELECT query (table name validated above)
	query := fmt.Sprintf("SELECT * FROM %s", assertion.Table)
	if whereSQL != "" {
		query += " WHERE " + whereSQL
	}

	// Execute query
	rows, err := st.Query(ctx, query, whereArgs...)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("query table %s", assertion.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	defer rows.Close()

	// Get column names
	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("get columns: %w", err)
	}

	// Scan the first row
	if !rows.Next() {
		// Row not found
		whereDesc := formatWhereClause(assertion.Where)
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("row in %s where %s", assertion.Table, whereDesc),
			Actual:   "row not found",
		}
	}

	// Prepare scan destinations
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := rows.Scan(valuePtrs...); err != nil {
		return fmt.Errorf("scan row: %w", err)
	}

	// Check for multiple matching rows (would indicate ambiguous assertion)
	if rows.Next() {
		whereDesc := formatWhereClause(assertion.Where)
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one row in %s where %s", assertion.Table, whereDesc),
			Actual:   "multiple rows matched (assertion is ambiguous)",
		}
	}

	// Build map of column -> value
	actualRow := make(map[string]interface{})
	for i, col := range columns {
		actualRow[col] = values[i]
	}

	// Check each expected field (subset semantics - only check fields in Expect)
	keys := make([]string, 0, len(assertion.Expect))
	for k := range assertion.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		expectedValue := assertion.Expect[key]
		actualValue, exists := actualRow[key]
		if !exists {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("field %q not present in result columns: %v", key, columns),
			}
		}

		if !stateValuesEqual(expectedValue, actualValue) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q = %v (type %T)", key, expectedValue, expectedValue),
				Actual:   fmt.Sprintf("field %q = %v (type %T)", key, actualValue, actualValue),
			}
		}
	}

	return nil
}

// buildWhereClause constructs parameterized WHERE clause from assertion.Where.
// Returns SQL fragment, arguments slice, and error. Keys are sorted for determinism.
//
// Security: Column names are validated against a whitelist pattern to prevent
// SQL injection via identifier interpolation.
func buildWhereClause(where map[string]interface{}) (string, []interface{}, error) {
	if len(where) == 0 {
		return "", nil, nil
	}

	// Sort keys for deterministic query generation
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))

	for _, key := range keys {
		// Validate column name to prevent SQL injection
		if !validIdentifier.MatchString(key) {
			return "", nil, fmt.Errorf("invalid column name %q in where clause: must match pattern %s", key, validIdentifier.String())
		}
		clauses = append(clauses, fmt.Sprintf("%s = ?", key))
		args = append(args, toSQLValue(where[key]))
	}

	return strings.Join(clauses, " AND "), args, nil
}

// toSQLValue converts a YAML-parsed value to a SQL-compatible value.
func toSQLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string, int, int64, float64:
		return val
	case bool:
		// SQLite stores booleans as integers
		if val {
			return int64(1)
		}
		return int64(0)
	default:
		// For other types, convert to string
		return fmt.Sprintf("%v", val)
	}
}

// formatWhereClause creates a human-readable description of WHERE conditions.
func formatWhereClause(where map[string]interface{}) string {
	if len(where) == 0 {
		return "(no conditions)"
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// stateValuesEqual compares expected and actual values from store tables.
// Handles type coercion for SQLite values which may be returned as different types.
func stateValuesEqual(expected, actual interface{}) bool {
	// Handle nil cases
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	// TEXT may come back as raw bytes
	if b, ok := actual.([]byte); ok {
		actual = string(b)
	}

	switch exp := expected.(type) {
	case string:
		if actualStr, ok := actual.(string); ok {
			return exp == actualStr
		}
		return false
	case int:
		return stateValuesEqual(int64(exp), actual)
	case int64:
		switch a := actual.(type) {
		case int64:
			return exp == a
		case int:
			return exp == int64(a)
		case float64:
			return float64(exp) == a
		}
		return false
	case float64:
		switch a := actual.(type) {
		case float64:
			return exp == a
		case int64:
			return exp == float64(a)
		}
		return false
	case bool:
		if actualBool, ok := actual.(bool); ok {
			return exp == actualBool
		}
		// SQLite stores booleans as integers
		if actualInt, ok := actual.(int64); ok {
			return exp == (actualInt != 0)
		}
		return false
	}

	// Fallback to DeepEqual for complex types
	return reflect.DeepEqual(expected, actual)
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for final_state assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		if result.Program == nil && assertion.Type != AssertFinalState {
			errors = append(errors, fmt.Sprintf("assertion[%d]: %s requires a built program", i, assertion.Type))
			continue
		}

		switch assertion.Type {
		case AssertCodeContains:
			err = assertCodeContains(result.Program, assertion)
		case AssertMotionOrder:
			err = assertMotionOrder(result.Program, assertion)
		case AssertInstructionCount:
			err = assertInstructionCount(result.Program, assertion)
		case AssertFinalState:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: final_state requires database context", i)
			} else {
				err = assertFinalState(actx.Ctx, actx.Store, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
