// Package program assembles a validated job into a controller program.
//
// Build resolves the job's named records into motion values, compiles every
// move into a motion.Target, solves inverse kinematics for Cartesian moves in
// parallel, and stamps each instruction with a logical sequence number and a
// content-addressed ID. Render wraps the instructions in an ABB RAPID module
// or a KUKA KRL DEF routine.
//
// Each Build gets a run ID from a RunIDGenerator: UUIDv7 in production, a
// fixed sequence in tests so golden output stays stable.
package program
