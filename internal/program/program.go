package program

import (
	"log/slog"

	"github.com/roach88/axis/internal/motion"
	"github.com/roach88/axis/internal/robot"
)

// MsgNoAccSet is reported when a KUKA job asks for an acceleration override.
const MsgNoAccSet = "KUKA has no AccSet instruction; acceleration is ignored."

// Instruction is one compiled move of a program.
type Instruction struct {
	Seq         int64             `json:"seq"`
	ID          string            `json:"id"`
	Motion      motion.MotionType `json:"motion"`
	Code        string            `json:"code"`
	Target      *motion.Target    `json:"target"`
	Joints      *robot.JointSet   `json:"joints,omitempty"`
	Reachable   bool              `json:"reachable"`
	Diagnostics []string          `json:"diagnostics,omitempty"`

	// Setup holds the statements written ahead of the instruction. KRL moves
	// take their base, tool, speed and zone from system variables, so these
	// are assigned wherever they change.
	Setup []string `json:"setup,omitempty"`
}

// Program is a job compiled for one controller.
//
// Declarations and Instructions hold text in the program's dialect only; the
// other dialect is still available on each Instruction's Target.
type Program struct {
	RunID           string             `json:"run_id"`
	Name            string             `json:"name"`
	Robot           string             `json:"robot"`
	Manufacturer    robot.Manufacturer `json:"manufacturer"`
	Hash            string             `json:"hash"`
	Acceleration    string             `json:"acceleration,omitempty"`
	Declarations    []string           `json:"declarations,omitempty"`
	Instructions    []Instruction      `json:"instructions"`
	Diagnostics     []string           `json:"diagnostics,omitempty"`
	CompilerVersion string             `json:"compiler_version"`
	IRVersion       string             `json:"ir_version"`
}

// Unreachable returns the instructions whose target the arm cannot reach.
func (p *Program) Unreachable() []Instruction {
	var out []Instruction
	for _, in := range p.Instructions {
		if !in.Reachable {
			out = append(out, in)
		}
	}
	return out
}

// AllDiagnostics returns program diagnostics followed by every instruction's,
// each prefixed with its sequence number.
func (p *Program) AllDiagnostics() []string {
	out := append([]string(nil), p.Diagnostics...)
	for _, in := range p.Instructions {
		for _, d := range in.Diagnostics {
			out = append(out, formatSeq(in.Seq)+": "+d)
		}
	}
	return out
}

type builder struct {
	ids     RunIDGenerator
	logger  *slog.Logger
	workers int
}

// Option configures Build.
type Option func(*builder)

// WithRunIDGenerator sets the generator run IDs come from.
// Tests use testutil.FixedRunIDGenerator for stable output.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(b *builder) {
		b.ids = g
	}
}

// WithLogger sets the logger build progress and IK diagnostics go to.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

// WithWorkers bounds the goroutines used for inverse kinematics.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(b *builder) {
		b.workers = n
	}
}
