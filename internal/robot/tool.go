package robot

import (
	"github.com/golang/geo/r3"

	"github.com/roach88/axis/internal/geom"
)

// DefaultToolName is the name of the tool used when none is given.
const DefaultToolName = "DefaultTool"

// DefaultToolWeight is the load in kilograms declared for a tool whose
// weight was not given.
const DefaultToolWeight = 2.5

// Tool is an end effector: a named tool centre point relative to the flange.
//
// Weight and Offset are nil unless the caller opted in. Declare asks program
// assembly to emit the manufacturer-specific tool declaration.
type Tool struct {
	Name         string       `json:"name"`
	TCP          geom.Plane   `json:"tcp"`
	Manufacturer Manufacturer `json:"manufacturer"`
	Weight       *float64     `json:"weight,omitempty"`
	Offset       *r3.Vector   `json:"offset,omitempty"`
	Declare      bool         `json:"declare,omitempty"`
}

// DefaultTool is the flange itself.
var DefaultTool = Tool{
	Name: DefaultToolName,
	TCP:  geom.WorldXY,
}

// ToolOption configures optional tool fields.
type ToolOption func(*Tool)

// WithWeight sets the tool load in kilograms.
func WithWeight(kg float64) ToolOption {
	return func(t *Tool) {
		t.Weight = &kg
	}
}

// WithRelativeOffset records a relative tool offset in millimetres, given in
// the TCP frame. The TCP is moved back along the offset so that previews
// show where the controller will actually place the tool.
func WithRelativeOffset(v r3.Vector) ToolOption {
	return func(t *Tool) {
		t.Offset = &v
	}
}

// WithDeclaration requests a tool declaration in the generated program.
func WithDeclaration() ToolOption {
	return func(t *Tool) {
		t.Declare = true
	}
}

// NewTool builds a tool. Options are applied in order; the returned value
// is not modified afterwards.
func NewTool(name string, tcp geom.Plane, m Manufacturer, opts ...ToolOption) Tool {
	t := Tool{
		Name:         name,
		TCP:          tcp,
		Manufacturer: m,
	}
	for _, opt := range opts {
		opt(&t)
	}

	if t.Offset != nil {
		move := geom.PlaneToPlane(geom.WorldXY, tcp).ApplyVector(*t.Offset).Mul(-1)
		t.TCP = tcp.Transform(geom.Translation(move))
	}
	return t
}

// Load returns the declared weight, or DefaultToolWeight when none was given.
func (t Tool) Load() float64 {
	if t.Weight == nil {
		return DefaultToolWeight
	}
	return *t.Weight
}
