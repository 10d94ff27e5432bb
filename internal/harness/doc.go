// Package harness runs axis jobs as conformance scenarios.
//
// A scenario names a CUE job directory and states what the built program
// must contain. The harness loads the job, validates it, builds the program,
// records it in an in-memory store and checks the result.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: pick_abb
//	description: "Pick job compiles to RAPID"
//	job: ../jobs/pick
//	run_id: test-run-pick
//	expect:
//	  instructions:
//	    - "MoveAbsJ [[0, -1.5708, 1.5708, 0, 1.5708, 0], ...], v200, DefaultZone, tool0;"
//	  diagnostics: []
//	  unreachable: []
//	assertions:
//	  - type: code_contains
//	    seq: 2
//	    text: "\\Wobj:=Default"
//	  - type: final_state
//	    table: instructions
//	    where: { seq: 3 }
//	    expect: { reachable: true }
//
// The job path is relative to the scenario file. Expect fields are compared
// exactly; an omitted diagnostics or unreachable list means none. An
// expect.errors list names validation codes the job must fail with instead
// of building.
//
// # Assertion Types
//
//   - code_contains: the instruction at seq contains text
//   - motion_order: the listed motion types appear in this order
//   - instruction_count: exactly count instructions, of one motion if given
//   - final_state: queries a store table and verifies expected values
//
// # Deterministic Testing
//
// The harness uses:
//   - A fixed run ID (from scenario.run_id or testutil.DefaultRunID)
//   - Logical sequence numbers assigned in program order
//   - In-memory SQLite database (isolated per scenario)
//
// This ensures identical programs across runs for golden file comparison.
package harness
