package dataflow

import (
	"errors"
	"fmt"
)

var (
	// ErrDanglingEdge is returned by [Diagram.Validate] when an edge references
	// a missing node or port, or a port lists an edge that does not reference it.
	// Either indicates a defect in whatever mutated the diagram.
	ErrDanglingEdge = errors.New("dangling edge")

	// ErrGraphHasCycle is returned by [Diagram.Validate] when a directed cycle
	// is present. Cycles are detected using depth-first search with
	// white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Validate checks structural integrity and returns nil if the diagram is
// consistent. It verifies that:
//
//  1. Every edge runs from an existing output port to an existing input port
//     on a different node, and both ports list the edge.
//  2. Every edge listed by a port exists and references that port.
//  3. The graph is acyclic.
func (d *Diagram) Validate() error {
	if err := d.validateIncidence(); err != nil {
		return err
	}
	if cycle := d.FindCycle(); cycle != nil {
		return fmt.Errorf("%w: %v", ErrGraphHasCycle, cycle)
	}
	return nil
}

func (d *Diagram) validateIncidence() error {
	for _, e := range d.Edges() {
		src, err := d.Port(e.Source)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDanglingEdge, e.ID, err)
		}
		dst, err := d.Port(e.Target)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDanglingEdge, e.ID, err)
		}
		if !src.IsOutput() || !dst.IsInput() || e.Source.Node == e.Target.Node {
			return fmt.Errorf("%w: %s has invalid endpoints", ErrDanglingEdge, e.ID)
		}
		if !src.HasEdge(e.ID) || !dst.HasEdge(e.ID) {
			return fmt.Errorf("%w: %s is not linked to its ports", ErrDanglingEdge, e.ID)
		}
	}
	for _, n := range d.Nodes() {
		for _, p := range n.Ports() {
			for _, id := range p.edges {
				e, ok := d.edges[id]
				if !ok || (e.Source != p.Ref() && e.Target != p.Ref()) {
					return fmt.Errorf("%w: port %s lists %s", ErrDanglingEdge, p.Ref(), id)
				}
			}
		}
	}
	return nil
}

// FindCycle returns the nodes of one directed cycle, or nil if the diagram
// is acyclic.
func (d *Diagram) FindCycle() []NodeID {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int, len(d.nodes))
	var stack, cycle []NodeID

	var dfs func(id NodeID) bool
	dfs = func(id NodeID) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range d.OutputNodes(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == child {
						cycle = append(cycle, stack[i:]...)
						break
					}
				}
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range d.order {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}
