package dataflow

import "fmt"

// Connectivity is the verdict of CheckConnectivity. Reason is empty when
// Connectable is true.
type Connectivity struct {
	Connectable bool
	Reason      string
}

func rejected(format string, args ...any) Connectivity {
	return Connectivity{Reason: fmt.Sprintf(format, args...)}
}

// CheckConnectivity tests whether an edge from output port out to input port
// in may be created. It has no side effects.
//
// A connection is rejected when:
//   - either port does not resolve, or the ports face the wrong way
//   - both ports belong to the same node
//   - the ports are already linked
//   - the input already has an edge and takes a single connection
//   - the type tags are incompatible
//   - the input port does not accept the output's type
//   - the new edge would close a cycle
func CheckConnectivity(d *Diagram, out, in PortRef) Connectivity {
	src, err := d.Port(out)
	if err != nil {
		return rejected("%v", err)
	}
	dst, err := d.Port(in)
	if err != nil {
		return rejected("%v", err)
	}
	if !src.IsOutput() || !dst.IsInput() {
		return rejected("cannot connect %s port to %s port", src.Direction, dst.Direction)
	}
	if out.Node == in.Node {
		return rejected("cannot connect two ports of the same node")
	}
	if _, linked := d.EdgeBetween(out, in); linked {
		return rejected("ports are already connected")
	}
	if dst.Connected() && !dst.Multiple {
		return rejected("input port %s is already connected", dst.ID)
	}
	if !compatible(src.Type, dst.Type) {
		return rejected("incompatible port types: %s -> %s", src.Type, dst.Type)
	}
	if !dst.AcceptsType(src.Type) {
		return rejected("input port %s does not accept %s", dst.ID, src.Type)
	}
	if d.Reaches(in.Node, out.Node) {
		return rejected("connection would create a cycle")
	}
	return Connectivity{Connectable: true}
}

func compatible(a, b string) bool {
	return a == b || a == AnyType || b == AnyType || a == "" || b == ""
}

// FindConnectablePort returns the first port on node id that other can be
// connected to: an input port when other is an output, and an output port
// when other is an input.
func (d *Diagram) FindConnectablePort(id NodeID, other PortRef) (PortID, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return "", false
	}
	op, err := d.Port(other)
	if err != nil {
		return "", false
	}
	if op.IsOutput() {
		for _, p := range n.Inputs {
			if CheckConnectivity(d, other, p.Ref()).Connectable {
				return p.ID, true
			}
		}
		return "", false
	}
	for _, p := range n.Outputs {
		if CheckConnectivity(d, p.Ref(), other).Connectable {
			return p.ID, true
		}
	}
	return "", false
}
