package robot

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/roach88/axis/internal/geom"
)

// BaseCorrection is the fixed rotation about the world Z axis applied to a
// target before it is handed to the kinematic chain. The chain's base frame
// is turned a quarter turn relative to the authoring world frame.
const BaseCorrection = math.Pi / 2

// twist holds the Denavit–Hartenberg link twists shared by the offset-wrist
// family: joints 2 and 3 are parallel, the wrist axes are mutually orthogonal.
var twist = [6]float64{math.Pi / 2, 0, 0, math.Pi / 2, -math.Pi / 2, 0}

// Config selects one branch of the analytic solution.
type Config struct {
	Shoulder bool `json:"shoulder"` // true: shoulder back
	Elbow    bool `json:"elbow"`    // true: elbow down
	Wrist    bool `json:"wrist"`    // true: wrist flipped
}

// CoupledConfig derives the elbow and wrist selectors from the shoulder
// selector: elbow = !shoulder, wrist = !shoulder. This couples branches a
// full solver would keep independent; callers wanting another branch set the
// fields directly.
func CoupledConfig(shoulder bool) Config {
	return Config{
		Shoulder: shoulder,
		Elbow:    !shoulder,
		Wrist:    !shoulder,
	}
}

// Model holds the kinematic constants of one manipulator family.
// A holds link lengths and D link offsets, in metres, indexed by joint.
type Model struct {
	Name   string     `json:"name"`
	A      [6]float64 `json:"a"`
	D      [6]float64 `json:"d"`
	Config Config     `json:"config"`
}

// UR10 is the Universal Robots UR10 offset-wrist arm.
var UR10 = Model{
	Name:   "UR10",
	A:      [6]float64{0, -0.612, -0.5723, 0, 0, 0},
	D:      [6]float64{0.1273, 0, 0, 0.163941, 0.1157, 0.0922},
	Config: CoupledConfig(true),
}

// UR5 is the Universal Robots UR5 offset-wrist arm.
var UR5 = Model{
	Name:   "UR5",
	A:      [6]float64{0, -0.425, -0.39225, 0, 0, 0},
	D:      [6]float64{0.089159, 0, 0, 0.10915, 0.09465, 0.0823},
	Config: CoupledConfig(true),
}

var presets = map[string]Model{
	"ur10": UR10,
	"ur5":  UR5,
}

// Preset looks up a built-in model by name, ignoring case.
func Preset(name string) (Model, error) {
	m, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Model{}, fmt.Errorf("unknown robot %q: must be one of %v", name, PresetNames())
	}
	return m, nil
}

// PresetNames returns the built-in model names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WithConfig returns a copy of m using branch c.
func (m Model) WithConfig(c Config) Model {
	m.Config = c
	return m
}

// Reach returns the planar reach of the upper arm and forearm, |a[1]| + |a[2]|.
func (m Model) Reach() float64 {
	return math.Abs(m.A[1]) + math.Abs(m.A[2])
}

// Forward returns the flange pose for joint angles q, expressed in the same
// frame the inverse solver accepts. It is the standard DH product
// A1·A2·…·A6 with the base correction undone.
func (m Model) Forward(q JointSet) geom.Pose {
	p := geom.Identity()
	for i := 0; i < 6; i++ {
		p = p.Mul(dh(q[i], m.D[i], m.A[i], twist[i]))
	}
	return p.Mul(geom.RotationZ(-BaseCorrection))
}

// dh returns the Denavit–Hartenberg link transform Rz(theta)·Tz(d)·Tx(a)·Rx(alpha).
func dh(theta, d, a, alpha float64) geom.Pose {
	ct, st := math.Cos(theta), math.Sin(theta)
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	var p geom.Pose
	p.R = [3][3]float64{
		{ct, -st * ca, st * sa},
		{st, ct * ca, -ct * sa},
		{0, sa, ca},
	}
	p.T.X = a * ct
	p.T.Y = a * st
	p.T.Z = d
	return p
}
