// Package ir provides the intermediate representation of a motion job.
//
// A Job is the validated, manufacturer-neutral description of a robot
// program: named tools, speeds, zones and work objects plus an ordered list
// of moves that reference them by name. The compiler produces a Job from CUE
// sources; program assembly turns it into instruction text.
//
// This package contains type definitions and hashing only. It imports
// nothing internal, so every other package can depend on it.
//
// Key design constraints:
//   - Lengths are millimetres, angles in job files are degrees
//   - All JSON tags use snake_case
//   - Content hashes are computed over canonical JSON, which has no floats;
//     hashed values are formatted instruction text, never raw coordinates
package ir
