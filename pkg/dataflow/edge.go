package dataflow

// Edge is a directed connection from an output port to an input port. It
// references its endpoints but owns neither.
type Edge struct {
	ID     EdgeID
	Source PortRef // always an output port
	Target PortRef // always an input port
}

// Other returns the endpoint of e opposite to node. Passing a node that is
// not an endpoint returns the source.
func (e *Edge) Other(node NodeID) PortRef {
	if e.Source.Node == node {
		return e.Target
	}
	return e.Source
}

// Touches reports whether e has an endpoint on node.
func (e *Edge) Touches(node NodeID) bool {
	return e.Source.Node == node || e.Target.Node == node
}
