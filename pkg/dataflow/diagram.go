package dataflow

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrInvalidNodeID is returned by [Diagram.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Diagram.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when a node ID does not resolve.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownPort is returned when a port ID does not resolve on its node.
	ErrUnknownPort = errors.New("unknown port")

	// ErrUnknownEdge is returned by [Diagram.RemoveEdge] for a missing edge.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrPortDirection is returned by [Diagram.AddEdge] when the source is not
	// an output port or the target is not an input port.
	ErrPortDirection = errors.New("edge must run from an output port to an input port")

	// ErrNodeHasEdges is returned by [Diagram.RemoveNode] while edges still
	// reference the node. Edges are always removed first.
	ErrNodeHasEdges = errors.New("node still has incident edges")
)

// DefaultName is the name of a fresh diagram.
const DefaultName = "untitled"

// nodeIDPrefix is the pattern NextNodeID allocates from.
const nodeIDPrefix = "node-"

// Diagram is the aggregate of nodes and edges. It owns every node, and every
// node owns its ports; edges are held in an auxiliary index keyed by id.
//
// The zero value is not usable - use New.
type Diagram struct {
	name      string
	nodes     map[NodeID]*Node
	order     []NodeID // insertion order = z-order for rendering
	edges     map[EdgeID]*Edge
	edgeOrder []EdgeID
	nextEdge  int
	numLayers int

	deserializing bool
}

// New creates an empty diagram. An empty name becomes DefaultName.
func New(name string) *Diagram {
	if name == "" {
		name = DefaultName
	}
	return &Diagram{
		name:  name,
		nodes: make(map[NodeID]*Node),
		edges: make(map[EdgeID]*Edge),
	}
}

// Name returns the diagram name.
func (d *Diagram) Name() string { return d.name }

// SetName renames the diagram.
func (d *Diagram) SetName(name string) { d.name = name }

// Reset removes every node and edge and restores the fresh initial state.
func (d *Diagram) Reset() {
	*d = *New("")
}

// IsDeserializing reports whether a saved diagram is being reconstructed.
// Propagation is suppressed while this flag is set.
func (d *Diagram) IsDeserializing() bool { return d.deserializing }

// SetDeserializing sets the suppress-propagation flag.
func (d *Diagram) SetDeserializing(v bool) { d.deserializing = v }

// NumLayers returns the layer counter. It is at least the highest layer of
// any node in the diagram.
func (d *Diagram) NumLayers() int { return d.numLayers }

// SetNumLayers sets the layer counter. Values below the highest node layer
// are raised to it.
func (d *Diagram) SetNumLayers(n int) {
	for _, node := range d.nodes {
		n = max(n, node.Layer)
	}
	d.numLayers = n
}

// BringToFront moves node id above every other node and returns its new layer.
func (d *Diagram) BringToFront(id NodeID) (int, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return 0, false
	}
	if n.Layer == d.numLayers && d.topmost(id) {
		return n.Layer, true
	}
	d.numLayers++
	n.Layer = d.numLayers
	return n.Layer, true
}

func (d *Diagram) topmost(id NodeID) bool {
	for other, n := range d.nodes {
		if other != id && n.Layer >= d.numLayers {
			return false
		}
	}
	return true
}

// NextNodeID returns the first free id of the form node-<n>, scanning upward
// from 1.
func (d *Diagram) NextNodeID() NodeID {
	for i := 1; ; i++ {
		id := NodeID(nodeIDPrefix + strconv.Itoa(i))
		if _, taken := d.nodes[id]; !taken {
			return id
		}
	}
}

// AddNode registers n in the diagram. Port back-references are pointed at n
// and a nil State is initialized. The layer counter is raised to n.Layer if
// needed.
func (d *Diagram) AddNode(n *Node) error {
	if n == nil || n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if n.State == nil {
		n.State = Metadata{}
	}
	for _, p := range n.Ports() {
		p.Node = n.ID
	}
	d.nodes[n.ID] = n
	d.order = append(d.order, n.ID)
	d.numLayers = max(d.numLayers, n.Layer)
	return nil
}

// RemoveNode unregisters node id. The node must not have incident edges.
func (d *Diagram) RemoveNode(id NodeID) (*Node, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	for _, p := range n.Ports() {
		if p.Connected() {
			return nil, fmt.Errorf("%w: %s", ErrNodeHasEdges, id)
		}
	}
	delete(d.nodes, id)
	d.order = slices.DeleteFunc(d.order, func(o NodeID) bool { return o == id })
	return n, nil
}

// Node returns the node with the given id.
func (d *Diagram) Node(id NodeID) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (d *Diagram) Nodes() []*Node {
	out := make([]*Node, len(d.order))
	for i, id := range d.order {
		out[i] = d.nodes[id]
	}
	return out
}

// NodeIDs returns all node ids in insertion order.
func (d *Diagram) NodeIDs() []NodeID { return slices.Clone(d.order) }

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// Selected returns the selected nodes in insertion order.
func (d *Diagram) Selected() []*Node {
	var out []*Node
	for _, n := range d.Nodes() {
		if n.Selected {
			out = append(out, n)
		}
	}
	return out
}

// Port resolves a port reference.
func (d *Diagram) Port(ref PortRef) (*Port, error) {
	n, ok := d.nodes[ref.Node]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, ref.Node)
	}
	p, ok := n.Port(ref.Port)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPort, ref)
	}
	return p, nil
}

// AddEdge links an output port to an input port and returns the new edge.
//
// AddEdge checks only that both ports exist and face the right way. Whether
// the connection is allowed is decided by CheckConnectivity, which callers
// run first.
func (d *Diagram) AddEdge(source, target PortRef) (*Edge, error) {
	src, err := d.Port(source)
	if err != nil {
		return nil, err
	}
	dst, err := d.Port(target)
	if err != nil {
		return nil, err
	}
	if !src.IsOutput() || !dst.IsInput() {
		return nil, ErrPortDirection
	}
	d.nextEdge++
	e := &Edge{ID: EdgeID("edge-" + strconv.Itoa(d.nextEdge)), Source: source, Target: target}
	d.edges[e.ID] = e
	d.edgeOrder = append(d.edgeOrder, e.ID)
	src.link(e.ID)
	dst.link(e.ID)
	return e, nil
}

// RemoveEdge detaches edge id from both of its ports and drops it.
func (d *Diagram) RemoveEdge(id EdgeID) (*Edge, error) {
	e, ok := d.edges[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	if p, err := d.Port(e.Source); err == nil {
		p.unlink(id)
	}
	if p, err := d.Port(e.Target); err == nil {
		p.unlink(id)
	}
	delete(d.edges, id)
	d.edgeOrder = slices.DeleteFunc(d.edgeOrder, func(o EdgeID) bool { return o == id })
	return e, nil
}

// Edge returns the edge with the given id.
func (d *Diagram) Edge(id EdgeID) (*Edge, bool) {
	e, ok := d.edges[id]
	return e, ok
}

// Edges returns all edges in creation order.
func (d *Diagram) Edges() []*Edge {
	out := make([]*Edge, len(d.edgeOrder))
	for i, id := range d.edgeOrder {
		out[i] = d.edges[id]
	}
	return out
}

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// EdgeBetween returns the edge linking source to target, if any.
func (d *Diagram) EdgeBetween(source, target PortRef) (*Edge, bool) {
	p, err := d.Port(source)
	if err != nil {
		return nil, false
	}
	for _, id := range p.edges {
		if e := d.edges[id]; e != nil && e.Target == target {
			return e, true
		}
	}
	return nil, false
}

// PortEdges returns the edges incident to a port.
func (d *Diagram) PortEdges(ref PortRef) []*Edge {
	p, err := d.Port(ref)
	if err != nil {
		return nil
	}
	return d.resolve(p.edges)
}

// AllEdges returns every edge incident to node id, input edges first.
func (d *Diagram) AllEdges(id NodeID) []*Edge {
	return append(d.InputEdges(id), d.OutputEdges(id)...)
}

// InputEdges returns the edges arriving at node id, in port order.
func (d *Diagram) InputEdges(id NodeID) []*Edge {
	n, ok := d.nodes[id]
	if !ok {
		return nil
	}
	var out []*Edge
	for _, p := range n.Inputs {
		out = append(out, d.resolve(p.edges)...)
	}
	return out
}

// OutputEdges returns the edges leaving node id, in port order.
func (d *Diagram) OutputEdges(id NodeID) []*Edge {
	n, ok := d.nodes[id]
	if !ok {
		return nil
	}
	var out []*Edge
	for _, p := range n.Outputs {
		out = append(out, d.resolve(p.edges)...)
	}
	return out
}

// OutputNodes returns the distinct nodes fed by node id, in edge order.
func (d *Diagram) OutputNodes(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range d.OutputEdges(id) {
		if !slices.Contains(out, e.Target.Node) {
			out = append(out, e.Target.Node)
		}
	}
	return out
}

// InputNodes returns the distinct nodes feeding node id, in edge order.
func (d *Diagram) InputNodes(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range d.InputEdges(id) {
		if !slices.Contains(out, e.Source.Node) {
			out = append(out, e.Source.Node)
		}
	}
	return out
}

// Reaches reports whether to is reachable from from along output edges.
// A node reaches itself.
func (d *Diagram) Reaches(from, to NodeID) bool {
	seen := map[NodeID]bool{from: true}
	queue := []NodeID{from}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == to {
			return true
		}
		for _, next := range d.OutputNodes(curr) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

func (d *Diagram) resolve(ids []EdgeID) []*Edge {
	out := make([]*Edge, 0, len(ids))
	for _, id := range ids {
		if e, ok := d.edges[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
