package canvas

import (
	"math"
	"slices"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

// Hit is what lies under a point. Node is empty for the background; Port is
// set only when a port was hit.
type Hit struct {
	Node dataflow.NodeID
	Port dataflow.PortID
}

// IsBackground reports whether nothing was hit.
func (h Hit) IsBackground() bool { return h.Node == "" }

// IsPort reports whether a port was hit.
func (h Hit) IsPort() bool { return h.Port != "" }

// PortRef returns the hit port's address.
func (h Hit) PortRef() dataflow.PortRef { return dataflow.PortRef{Node: h.Node, Port: h.Port} }

// HitTest returns the front-most port or node at p. Ports win over the body
// of the node they belong to.
func (c *Canvas) HitTest(p dataflow.Point) Hit {
	nodes := c.Nodes()
	slices.Reverse(nodes)
	for _, n := range nodes {
		box := c.NodeBox(n)
		grown := dataflow.Box{
			X:      box.X - c.cfg.PortRadius,
			Y:      box.Y,
			Width:  box.Width + 2*c.cfg.PortRadius,
			Height: box.Height,
		}
		if !grown.Contains(p) {
			continue
		}
		if port, ok := c.portAt(n, p); ok {
			return Hit{Node: n.ID, Port: port}
		}
		if box.Contains(p) {
			return Hit{Node: n.ID}
		}
	}
	return Hit{}
}

func (c *Canvas) portAt(n *dataflow.Node, p dataflow.Point) (dataflow.PortID, bool) {
	best, bestDist := dataflow.PortID(""), math.Inf(1)
	check := func(ports []*dataflow.Port, dir dataflow.Direction) {
		for i, port := range ports {
			center := c.portPoint(n, dir, i)
			if d := math.Hypot(p.X-center.X, p.Y-center.Y); d < c.cfg.PortRadius && d < bestDist {
				best, bestDist = port.ID, d
			}
		}
	}
	check(n.Inputs, dataflow.Input)
	check(n.Outputs, dataflow.Output)
	return best, best != ""
}
