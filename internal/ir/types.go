package ir

// Job is a compiled robot program description.
type Job struct {
	Name         string `json:"name"`
	Robot        string `json:"robot"`        // model preset, e.g. "ur10"
	Manufacturer string `json:"manufacturer"` // "ABB" or "KUKA"

	// Shoulder selects the IK branch; nil keeps the preset's choice.
	Shoulder *bool `json:"shoulder,omitempty"`

	Tools        []ToolSpec    `json:"tools,omitempty"`
	Speeds       []SpeedSpec   `json:"speeds,omitempty"`
	Zones        []ZoneSpec    `json:"zones,omitempty"`
	WorkObjects  []FrameSpec   `json:"work_objects,omitempty"`
	Acceleration *Acceleration `json:"acceleration,omitempty"`
	Moves        []Move        `json:"moves"`
}

// PlaneSpec is a frame given by an origin and two in-plane directions.
// YAxis need not be exactly orthogonal to XAxis; it is orthonormalised.
type PlaneSpec struct {
	Origin [3]float64 `json:"origin"`
	XAxis  [3]float64 `json:"x_axis"`
	YAxis  [3]float64 `json:"y_axis"`
}

// WorldPlane is the world XY frame at the origin.
var WorldPlane = PlaneSpec{XAxis: [3]float64{1, 0, 0}, YAxis: [3]float64{0, 1, 0}}

// ToolSpec declares an end effector.
type ToolSpec struct {
	Name    string      `json:"name"`
	TCP     PlaneSpec   `json:"tcp"`
	Weight  *float64    `json:"weight,omitempty"` // kg
	Offset  *[3]float64 `json:"offset,omitempty"` // relative tool offset, TCP frame
	Declare bool        `json:"declare,omitempty"`
}

// SpeedSpec declares a named speed.
type SpeedSpec struct {
	Name        string  `json:"name"`
	Translation float64 `json:"translation"`    // mm/s
	Rotation    float64 `json:"rotation"`       // deg/s
	Time        float64 `json:"time,omitempty"` // s, overrides the speed when > 0
	Declare     bool    `json:"declare,omitempty"`
}

// ZoneSpec declares a named blending zone.
type ZoneSpec struct {
	Name           string  `json:"name"`
	StopPoint      bool    `json:"stop_point,omitempty"`
	PathRadius     float64 `json:"path_radius"`
	PathOrient     float64 `json:"path_orient"`
	PathExternal   float64 `json:"path_external"`
	Orientation    float64 `json:"orientation"`
	LinearExternal float64 `json:"linear_external"`
	RotaryExternal float64 `json:"rotary_external"`
	Declare        bool    `json:"declare,omitempty"`
}

// FrameSpec declares a named work object.
type FrameSpec struct {
	Name    string    `json:"name"`
	Plane   PlaneSpec `json:"plane"`
	Declare bool      `json:"declare,omitempty"`
}

// Acceleration is an acceleration override in percent.
type Acceleration struct {
	Acc float64 `json:"acc"`
	Dec float64 `json:"dec"`
}

// Move is one program instruction. Exactly one of Target and Joints is set:
// Target for Linear and Joint moves, Joints (degrees) for Absolute Joint.
// Empty references select the defaults.
type Move struct {
	Type       string     `json:"type"`
	Target     *PlaneSpec `json:"target,omitempty"`
	Flip       bool       `json:"flip,omitempty"` // turn the target over about its Y axis
	Joints     []float64  `json:"joints,omitempty"`
	Speed      string     `json:"speed,omitempty"`
	Zone       string     `json:"zone,omitempty"`
	Tool       string     `json:"tool,omitempty"`
	WorkObject string     `json:"work_object,omitempty"`
	ExtRot     *float64   `json:"ext_rot,omitempty"`
	ExtLin     *float64   `json:"ext_lin,omitempty"`
}
