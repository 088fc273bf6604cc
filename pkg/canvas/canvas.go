package canvas

import (
	"math"
	"slices"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

// Config holds the node geometry.
type Config struct {
	NodeWidth   float64 `toml:"node_width"`
	NodeHeight  float64 `toml:"node_height"`
	PortSpacing float64 `toml:"port_spacing"`

	// PortRadius is how close the pointer must be to a port center to hit
	// the port rather than the node body.
	PortRadius float64 `toml:"port_radius"`
}

// DefaultConfig returns geometry sized for a terminal grid.
func DefaultConfig() Config {
	return Config{
		NodeWidth:   18,
		NodeHeight:  4,
		PortSpacing: 1,
		PortRadius:  1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.NodeWidth <= 0 {
		c.NodeWidth = d.NodeWidth
	}
	if c.NodeHeight <= 0 {
		c.NodeHeight = d.NodeHeight
	}
	if c.PortSpacing <= 0 {
		c.PortSpacing = d.PortSpacing
	}
	if c.PortRadius <= 0 {
		c.PortRadius = d.PortRadius
	}
	return c
}

// Canvas tracks the nodes and edges on the rendering surface.
//
// It holds the editor's node pointers and reads their positions at query
// time, so moves need no notification.
type Canvas struct {
	cfg   Config
	nodes map[dataflow.NodeID]*dataflow.Node
	order []dataflow.NodeID
	edges map[dataflow.EdgeID]*dataflow.Edge
}

// New creates an empty canvas. Zero config fields take their defaults.
func New(cfg Config) *Canvas {
	return &Canvas{
		cfg:   cfg.withDefaults(),
		nodes: make(map[dataflow.NodeID]*dataflow.Node),
		edges: make(map[dataflow.EdgeID]*dataflow.Edge),
	}
}

// Config returns the effective geometry.
func (c *Canvas) Config() Config { return c.cfg }

// AddNode puts n on the surface.
func (c *Canvas) AddNode(n *dataflow.Node) {
	if _, ok := c.nodes[n.ID]; !ok {
		c.order = append(c.order, n.ID)
	}
	c.nodes[n.ID] = n
}

// RemoveNode takes a node off the surface.
func (c *Canvas) RemoveNode(id dataflow.NodeID) {
	if _, ok := c.nodes[id]; !ok {
		return
	}
	delete(c.nodes, id)
	c.order = slices.DeleteFunc(c.order, func(o dataflow.NodeID) bool { return o == id })
}

// AddEdge puts e on the surface.
func (c *Canvas) AddEdge(e *dataflow.Edge) { c.edges[e.ID] = e }

// RemoveEdge takes e off the surface.
func (c *Canvas) RemoveEdge(e *dataflow.Edge) { delete(c.edges, e.ID) }

// Nodes returns the nodes on the surface from back to front: ascending
// layer, ties broken by insertion order.
func (c *Canvas) Nodes() []*dataflow.Node {
	out := make([]*dataflow.Node, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.nodes[id])
	}
	slices.SortStableFunc(out, func(a, b *dataflow.Node) int { return a.Layer - b.Layer })
	return out
}

// Edges returns the edges on the surface ordered by id.
func (c *Canvas) Edges() []*dataflow.Edge {
	out := make([]*dataflow.Edge, 0, len(c.edges))
	for _, e := range c.edges {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *dataflow.Edge) int { return compareEdgeIDs(a.ID, b.ID) })
	return out
}

// compareEdgeIDs orders "edge-2" before "edge-10".
func compareEdgeIDs(a, b dataflow.EdgeID) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// NodeBox returns the rectangle n occupies.
func (c *Canvas) NodeBox(n *dataflow.Node) dataflow.Box {
	ports := max(len(n.Inputs), len(n.Outputs))
	h := math.Max(c.cfg.NodeHeight, float64(ports+1)*c.cfg.PortSpacing)
	return dataflow.Box{X: n.Position.X, Y: n.Position.Y, Width: c.cfg.NodeWidth, Height: h}
}

// NodesInBox returns the nodes whose rectangle intersects box, in insertion
// order.
func (c *Canvas) NodesInBox(box dataflow.Box) []dataflow.NodeID {
	var out []dataflow.NodeID
	for _, id := range c.order {
		if c.NodeBox(c.nodes[id]).Intersects(box) {
			out = append(out, id)
		}
	}
	return out
}

// PortCenter returns the surface position of a port.
func (c *Canvas) PortCenter(ref dataflow.PortRef) (dataflow.Point, bool) {
	n, ok := c.nodes[ref.Node]
	if !ok {
		return dataflow.Point{}, false
	}
	if i := slices.IndexFunc(n.Inputs, func(p *dataflow.Port) bool { return p.ID == ref.Port }); i >= 0 {
		return c.portPoint(n, dataflow.Input, i), true
	}
	if i := slices.IndexFunc(n.Outputs, func(p *dataflow.Port) bool { return p.ID == ref.Port }); i >= 0 {
		return c.portPoint(n, dataflow.Output, i), true
	}
	return dataflow.Point{}, false
}

func (c *Canvas) portPoint(n *dataflow.Node, dir dataflow.Direction, i int) dataflow.Point {
	p := dataflow.Point{X: n.Position.X, Y: n.Position.Y + float64(i+1)*c.cfg.PortSpacing}
	if dir == dataflow.Output {
		p.X += c.cfg.NodeWidth - 1
	}
	return p
}
