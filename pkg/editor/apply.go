package editor

import (
	stderrors "errors"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/history"
)

var _ history.Applier = (*Editor)(nil)

// Apply applies op without recording it, then recomputes the affected nodes
// in a single pass. Steps of a batch that fail are skipped and reported in
// the returned error.
func (e *Editor) Apply(op history.Op) error {
	err := e.apply(op)
	e.Propagate(history.Seeds(op)...)
	return err
}

func (e *Editor) apply(op history.Op) error {
	switch o := op.(type) {
	case history.CreateNode:
		_, err := e.createNode(o.Save)
		return err
	case history.RemoveNode:
		_, err := e.removeNode(o.Save.ID)
		return err
	case history.CreateEdge:
		_, err := e.createEdge(o.Edge.Source(), o.Edge.Target(), true)
		return err
	case history.RemoveEdge:
		edge, ok := e.diagram.EdgeBetween(o.Edge.Source(), o.Edge.Target())
		if !ok {
			return errors.New(errors.ErrCodeEdgeNotFound, "edge %s -> %s not found", o.Edge.Source(), o.Edge.Target())
		}
		return e.removeEdge(edge.ID)
	case history.SetOption:
		n, ok := e.diagram.Node(o.Node)
		if !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "node %s not found", o.Node)
		}
		if o.HasNext {
			n.State[o.Key] = o.Next
		} else {
			delete(n.State, o.Key)
		}
		return nil
	case history.MoveNodes:
		e.NudgeNodes(o.Nodes, o.Delta)
		return nil
	case history.Batch:
		var errs []error
		for _, inner := range o.Ops {
			if err := e.apply(inner); err != nil {
				errs = append(errs, err)
			}
		}
		return stderrors.Join(errs...)
	default:
		return errors.New(errors.ErrCodeInternal, "unknown op %T", op)
	}
}

// Undo reverts the most recent recorded mutation.
func (e *Editor) Undo() (history.Event, error) {
	ev, err := e.history.Undo(e)
	if err != nil && !errors.Is(err, errors.ErrCodeNothingToUndo) {
		e.msg.Error(errors.UserMessage(err))
	}
	return ev, err
}

// Redo re-applies the most recently undone mutation.
func (e *Editor) Redo() (history.Event, error) {
	ev, err := e.history.Redo(e)
	if err != nil && !errors.Is(err, errors.ErrCodeNothingToRedo) {
		e.msg.Error(errors.UserMessage(err))
	}
	return ev, err
}

// NodeValue returns the last computed value of an output port.
func (e *Editor) NodeValue(ref dataflow.PortRef) (dataflow.Value, error) {
	p, err := e.diagram.Port(ref)
	if err != nil {
		return nil, lookupError(err, "value of %s", ref)
	}
	return p.Value, nil
}
