// Package store provides SQLite-backed program history.
//
// Every program built with --db is recorded as a run:
//   - Runs: one row per build, keyed by run ID, with the rendered source
//   - Instructions: one row per compiled move, keyed by (run_id, seq)
//
// # Critical Patterns
//
// Idempotent writes
//   - WriteRun uses ON CONFLICT(run_id) DO NOTHING inside one transaction
//   - Writing the same run twice leaves the first copy untouched
//
// Logical ordering
//   - Runs are numbered by a store-wide seq, instructions by program seq
//   - All queries order by seq, with id COLLATE BINARY as the tie-break
//
// Verifiable content
//   - program_hash and instruction ids are recomputed by VerifyRun from the
//     stored source, so a hand-edited database is detected
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// All content-addressed IDs are computed via functions in internal/ir/hash.go
// using RFC 8785 canonical JSON and SHA-256 with domain separation.
package store
