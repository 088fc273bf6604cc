package interaction

import (
	"math"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

// Overlay is the transient drawing on top of the diagram.
type Overlay struct {
	// ShowBox reports whether the selection rectangle is visible.
	ShowBox bool
	Box     dataflow.Box

	Preview Preview
}

// Preview is the rubber-band arrow drawn while dragging from a port.
type Preview struct {
	Visible bool
	From    dataflow.Point // center of the port the drag started at
	To      dataflow.Point // pointer

	// Angle is the arrowhead direction in radians. The arrow points from
	// output to input, so it is reversed when the drag started at an input.
	Angle float64
}

func (p *Preview) update(to dataflow.Point, reversed bool) {
	p.To = to
	p.Angle = p.From.Angle(to)
	if reversed {
		p.Angle = math.Mod(p.Angle+math.Pi, 2*math.Pi)
	}
}
