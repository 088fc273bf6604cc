package dataflow

import "slices"

// Inputs maps each input port to the values arriving on it, one per incident
// edge in edge creation order. Unconnected ports are absent.
type Inputs map[PortID][]Value

// First returns the first value on port id, or nil if there is none.
func (in Inputs) First(id PortID) Value {
	if vs := in[id]; len(vs) > 0 {
		return vs[0]
	}
	return nil
}

// Outputs maps output ports to their freshly computed values.
type Outputs map[PortID]Value

// Processor is the capability every node type implements. Process computes
// the node's outputs from its own state and the values on its inputs. It must
// not retain or mutate state.
type Processor interface {
	Process(state Metadata, in Inputs) (Outputs, error)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(state Metadata, in Inputs) (Outputs, error)

// Process calls f(state, in).
func (f ProcessorFunc) Process(state Metadata, in Inputs) (Outputs, error) { return f(state, in) }

// PortSpec declares a port on a node type.
type PortSpec struct {
	ID   PortID
	Type string // compatibility tag, AnyType matches everything

	// Accepts narrows the source types an input port takes. Empty means the
	// port's own Type.
	Accepts []string

	// Multiple allows more than one edge on an input port. Output ports
	// always allow multiple edges.
	Multiple bool

	// Required marks an input the node cannot compute without.
	Required bool
}

// Port is a typed connection point owned by exactly one node.
type Port struct {
	ID        PortID
	Node      NodeID // owning node, resolved through the diagram
	Direction Direction
	Type      string
	Accepts   []string
	Multiple  bool
	Required  bool

	// Value is the last value computed for an output port.
	Value Value

	edges []EdgeID
}

// Ref returns the diagram-level address of p.
func (p *Port) Ref() PortRef { return PortRef{Node: p.Node, Port: p.ID} }

// IsInput reports whether p is an input port.
func (p *Port) IsInput() bool { return p.Direction == Input }

// IsOutput reports whether p is an output port.
func (p *Port) IsOutput() bool { return p.Direction == Output }

// Edges returns a copy of the ids of edges incident to p, in link order.
func (p *Port) Edges() []EdgeID { return slices.Clone(p.edges) }

// Connected reports whether p has at least one incident edge.
func (p *Port) Connected() bool { return len(p.edges) > 0 }

// HasEdge reports whether edge id is incident to p.
func (p *Port) HasEdge(id EdgeID) bool { return slices.Contains(p.edges, id) }

// AcceptsType reports whether an input port takes values tagged typ.
func (p *Port) AcceptsType(typ string) bool {
	if len(p.Accepts) == 0 {
		return true
	}
	return typ == AnyType || slices.Contains(p.Accepts, typ) || slices.Contains(p.Accepts, AnyType)
}

func (p *Port) link(id EdgeID) {
	if !p.HasEdge(id) {
		p.edges = append(p.edges, id)
	}
}

func (p *Port) unlink(id EdgeID) {
	p.edges = slices.DeleteFunc(p.edges, func(e EdgeID) bool { return e == id })
}

// Node is a unit of computation with ordered input and output ports.
//
// The zero value is not usable. Use NewNode, which creates the ports and
// initializes State.
type Node struct {
	ID       NodeID
	Type     string
	Inputs   []*Port
	Outputs  []*Port
	Layer    int
	Position Point
	State    Metadata // type-specific state, never nil

	Selected bool
	Active   bool
	Hovered  bool

	// PropagationSource marks nodes that can compute without any upstream
	// input, such as data loaders. Loading a diagram propagates from them.
	PropagationSource bool

	// Processor computes the node's outputs. A nil processor passes nothing
	// downstream.
	Processor Processor

	// Err holds the error of the last failed computation, if any.
	Err error
}

// NewNode creates a node with ports built from the given specs.
func NewNode(id NodeID, typ string, inputs, outputs []PortSpec) *Node {
	n := &Node{ID: id, Type: typ, State: Metadata{}}
	for _, s := range inputs {
		n.Inputs = append(n.Inputs, newPort(id, Input, s))
	}
	for _, s := range outputs {
		p := newPort(id, Output, s)
		p.Multiple = true
		n.Outputs = append(n.Outputs, p)
	}
	return n
}

func newPort(node NodeID, dir Direction, s PortSpec) *Port {
	return &Port{
		ID:        s.ID,
		Node:      node,
		Direction: dir,
		Type:      s.Type,
		Accepts:   slices.Clone(s.Accepts),
		Multiple:  s.Multiple,
		Required:  s.Required,
	}
}

// InputPort returns the input port with the given id.
func (n *Node) InputPort(id PortID) (*Port, bool) { return findPort(n.Inputs, id) }

// OutputPort returns the output port with the given id.
func (n *Node) OutputPort(id PortID) (*Port, bool) { return findPort(n.Outputs, id) }

// Port returns the port with the given id, looking at inputs first.
func (n *Node) Port(id PortID) (*Port, bool) {
	if p, ok := n.InputPort(id); ok {
		return p, true
	}
	return n.OutputPort(id)
}

// Ports returns all ports of n, inputs first.
func (n *Node) Ports() []*Port {
	return append(slices.Clone(n.Inputs), n.Outputs...)
}

// Ready reports whether every required input of n has at least one edge.
func (n *Node) Ready() bool {
	for _, p := range n.Inputs {
		if p.Required && !p.Connected() {
			return false
		}
	}
	return true
}

// Output returns the last computed value of output port id.
func (n *Node) Output(id PortID) Value {
	if p, ok := n.OutputPort(id); ok {
		return p.Value
	}
	return nil
}

func findPort(ports []*Port, id PortID) (*Port, bool) {
	for _, p := range ports {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
