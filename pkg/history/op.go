package history

import (
	"slices"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

// Op describes one invertible mutation. The set of ops is closed: CreateNode,
// RemoveNode, CreateEdge, RemoveEdge, SetOption, MoveNodes and Batch.
type Op interface {
	isOp()
}

// CreateNode adds a node from its saved record.
type CreateNode struct {
	Save dataflow.NodeSave
}

// RemoveNode removes a node. Edges lists the edges that were incident to it
// when it was removed, so the inverse can restore them.
type RemoveNode struct {
	Save  dataflow.NodeSave
	Edges []dataflow.EdgeSave
}

// CreateEdge links two ports. Edges are addressed by their endpoints since
// edge ids are not stable across undo.
type CreateEdge struct {
	Edge dataflow.EdgeSave
}

// RemoveEdge unlinks two ports.
type RemoveEdge struct {
	Edge dataflow.EdgeSave
}

// SetOption changes one key of a node's state. A false HadPrev means the key
// was absent before and undo deletes it again; HasNext likewise for the new
// value.
type SetOption struct {
	Node    dataflow.NodeID
	Key     string
	Prev    any
	Next    any
	HadPrev bool
	HasNext bool
}

// MoveNodes translates nodes by Delta.
type MoveNodes struct {
	Nodes []dataflow.NodeID
	Delta dataflow.Point
}

// Batch applies ops in order as one unit.
type Batch struct {
	Ops []Op
}

func (CreateNode) isOp() {}
func (RemoveNode) isOp() {}
func (CreateEdge) isOp() {}
func (RemoveEdge) isOp() {}
func (SetOption) isOp()  {}
func (MoveNodes) isOp()  {}
func (Batch) isOp()      {}

// Invert returns the op that undoes op.
func Invert(op Op) Op {
	switch o := op.(type) {
	case CreateNode:
		return RemoveNode{Save: o.Save}
	case RemoveNode:
		ops := []Op{CreateNode{Save: o.Save}}
		for _, e := range o.Edges {
			ops = append(ops, CreateEdge{Edge: e})
		}
		return Batch{Ops: ops}
	case CreateEdge:
		return RemoveEdge(o)
	case RemoveEdge:
		return CreateEdge(o)
	case SetOption:
		return SetOption{
			Node:    o.Node,
			Key:     o.Key,
			Prev:    o.Next,
			Next:    o.Prev,
			HadPrev: o.HasNext,
			HasNext: o.HadPrev,
		}
	case MoveNodes:
		return MoveNodes{
			Nodes: slices.Clone(o.Nodes),
			Delta: dataflow.Point{X: -o.Delta.X, Y: -o.Delta.Y},
		}
	case Batch:
		inv := make([]Op, len(o.Ops))
		for i, inner := range o.Ops {
			inv[len(o.Ops)-1-i] = Invert(inner)
		}
		return Batch{Ops: inv}
	default:
		return nil
	}
}

// Seeds returns the nodes whose outputs may change once op has been applied.
// Ids that no longer exist afterwards are harmless to propagate.
func Seeds(op Op) []dataflow.NodeID {
	var out []dataflow.NodeID
	add := func(id dataflow.NodeID) {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	var walk func(Op)
	walk = func(op Op) {
		switch o := op.(type) {
		case CreateNode:
			add(o.Save.ID)
		case RemoveNode:
			for _, e := range o.Edges {
				if e.SourceNodeID == o.Save.ID {
					add(e.TargetNodeID)
				}
			}
		case CreateEdge:
			add(o.Edge.TargetNodeID)
		case RemoveEdge:
			add(o.Edge.TargetNodeID)
		case SetOption:
			add(o.Node)
		case Batch:
			for _, inner := range o.Ops {
				walk(inner)
			}
		}
	}
	walk(op)
	return out
}
