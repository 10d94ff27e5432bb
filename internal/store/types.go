package store

import (
	"errors"

	"github.com/roach88/axis/internal/robot"
)

// ErrRunNotFound is returned when a run ID is not in the store.
var ErrRunNotFound = errors.New("run not found")

// Run is a stored program build.
type Run struct {
	Seq             int64         `json:"seq"`
	RunID           string        `json:"run_id"`
	Name            string        `json:"name"`
	Robot           string        `json:"robot"`
	Manufacturer    string        `json:"manufacturer"`
	Hash            string        `json:"program_hash"`
	Acceleration    string        `json:"acceleration,omitempty"`
	Declarations    []string      `json:"declarations,omitempty"`
	Diagnostics     []string      `json:"diagnostics,omitempty"`
	Source          string        `json:"source"`
	CompilerVersion string        `json:"compiler_version"`
	IRVersion       string        `json:"ir_version"`
	Instructions    []Instruction `json:"instructions"`
}

// RunSummary is one line of the history listing.
type RunSummary struct {
	Seq          int64  `json:"seq"`
	RunID        string `json:"run_id"`
	Name         string `json:"name"`
	Robot        string `json:"robot"`
	Manufacturer string `json:"manufacturer"`
	Hash         string `json:"program_hash"`
	Instructions int    `json:"instructions"`
	Unreachable  int    `json:"unreachable"`
}

// Instruction is a stored compiled move.
type Instruction struct {
	RunID       string          `json:"run_id"`
	Seq         int64           `json:"seq"`
	ID          string          `json:"id"`
	Motion      string          `json:"motion"`
	Code        string          `json:"code"`
	ABB         string          `json:"abb,omitempty"`
	KUKA        string          `json:"kuka,omitempty"`
	Joints      *robot.JointSet `json:"joints,omitempty"`
	Reachable   bool            `json:"reachable"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
}
