package editor

import (
	"slices"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/history"
)

// EdgeOptions controls edge creation.
type EdgeOptions struct {
	// Propagate recomputes the target node once the edge exists.
	Propagate bool

	// Silent suppresses the user-facing warning on rejection.
	Silent bool
}

// CreateEdge connects two ports. The ports may be given in either order; the
// edge always runs from the output to the input. A rejected connection
// leaves the graph unchanged, is reported as a warning unless opts.Silent is
// set, and returns a NOT_CONNECTABLE error.
func (e *Editor) CreateEdge(source, target dataflow.PortRef, opts EdgeOptions) (*dataflow.Edge, error) {
	edge, err := e.createEdge(source, target, opts.Silent)
	if err != nil {
		return nil, err
	}
	if opts.Propagate {
		e.Propagate(edge.Target.Node)
	}
	e.record(history.LevelDiagram, history.TypeCreateEdge, "link",
		history.CreateEdge{Edge: edge.Save()}, "connect %s to %s", edge.Source, edge.Target)
	return edge, nil
}

// createEdge normalizes direction, checks connectivity and links the ports.
// It neither propagates nor records.
func (e *Editor) createEdge(source, target dataflow.PortRef, silent bool) (*dataflow.Edge, error) {
	out, in, err := e.orient(source, target)
	if err != nil {
		if !silent {
			e.msg.Error(errors.UserMessage(err))
		}
		return nil, err
	}
	if c := dataflow.CheckConnectivity(e.diagram, out, in); !c.Connectable {
		if !silent {
			e.msg.Warn(c.Reason)
		}
		return nil, errors.New(errors.ErrCodeNotConnectable, "%s", c.Reason)
	}
	edge, err := e.diagram.AddEdge(out, in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "add edge %s -> %s", out, in)
	}
	e.canvas.AddEdge(edge)
	e.logger.Debug("edge created", "edge", edge.ID, "source", out, "target", in)
	return edge, nil
}

// orient returns the pair as (output, input). Ports facing the same way are
// returned unchanged and rejected by the connectivity check.
func (e *Editor) orient(a, b dataflow.PortRef) (out, in dataflow.PortRef, err error) {
	pa, err := e.diagram.Port(a)
	if err != nil {
		return a, b, lookupError(err, "resolve %s", a)
	}
	if _, err := e.diagram.Port(b); err != nil {
		return a, b, lookupError(err, "resolve %s", b)
	}
	if pa.IsInput() {
		return b, a, nil
	}
	return a, b, nil
}

// CreateEdgeToNode connects source to the first compatible port of target.
// When there is none, it reports "cannot find available port to connect"
// and returns a NO_CONNECTABLE_PORT error.
func (e *Editor) CreateEdgeToNode(source dataflow.PortRef, target dataflow.NodeID, opts EdgeOptions) (*dataflow.Edge, error) {
	port, ok := e.diagram.FindConnectablePort(target, source)
	if !ok {
		err := errors.New(errors.ErrCodeNoConnectablePort, "cannot find available port to connect")
		if !opts.Silent {
			e.msg.Error(errors.UserMessage(err))
		}
		return nil, err
	}
	return e.CreateEdge(source, dataflow.PortRef{Node: target, Port: port}, opts)
}

// RemoveEdge removes an edge. If propagate is set its former target node is
// recomputed.
func (e *Editor) RemoveEdge(id dataflow.EdgeID, propagate bool) error {
	edge, ok := e.diagram.Edge(id)
	if !ok {
		return errors.New(errors.ErrCodeEdgeNotFound, "edge %s not found", id)
	}
	save := edge.Save()
	if err := e.removeEdge(id); err != nil {
		return err
	}
	if propagate {
		e.Propagate(save.TargetNodeID)
	}
	e.record(history.LevelDiagram, history.TypeRemoveEdge, "unlink",
		history.RemoveEdge{Edge: save}, "disconnect %s from %s", save.Source(), save.Target())
	return nil
}

// removeEdge detaches an edge from both ports and drops it. It neither
// propagates nor records.
func (e *Editor) removeEdge(id dataflow.EdgeID) error {
	edge, err := e.diagram.RemoveEdge(id)
	if err != nil {
		return lookupError(err, "remove edge %s", id)
	}
	e.canvas.RemoveEdge(edge)
	return nil
}

// Insertion reports what InsertNodeOnEdge did. Upstream and Downstream are
// nil when the corresponding edge could not be created.
type Insertion struct {
	Removed    dataflow.EdgeSave
	Upstream   *dataflow.Edge // old source -> node
	Downstream *dataflow.Edge // node -> old target
}

// Created returns the edges that were actually created.
func (r Insertion) Created() []*dataflow.Edge {
	var out []*dataflow.Edge
	if r.Upstream != nil {
		out = append(out, r.Upstream)
	}
	if r.Downstream != nil {
		out = append(out, r.Downstream)
	}
	return out
}

// InsertNodeOnEdge splices node into edge. The old edge is removed first so
// it cannot block the new connections. Either new edge may fail on type
// compatibility; the result tells which ones were created.
func (e *Editor) InsertNodeOnEdge(node dataflow.NodeID, edge dataflow.EdgeID) (Insertion, error) {
	if _, ok := e.diagram.Node(node); !ok {
		return Insertion{}, errors.New(errors.ErrCodeNodeNotFound, "node %s not found", node)
	}
	old, ok := e.diagram.Edge(edge)
	if !ok {
		return Insertion{}, errors.New(errors.ErrCodeEdgeNotFound, "edge %s not found", edge)
	}
	res := Insertion{Removed: old.Save()}
	if err := e.removeEdge(edge); err != nil {
		return res, err
	}
	ops := []history.Op{history.RemoveEdge{Edge: res.Removed}}

	if port, ok := e.diagram.FindConnectablePort(node, res.Removed.Source()); ok {
		if up, err := e.createEdge(res.Removed.Source(), dataflow.PortRef{Node: node, Port: port}, true); err == nil {
			res.Upstream = up
			ops = append(ops, history.CreateEdge{Edge: up.Save()})
		}
	}
	if port, ok := e.diagram.FindConnectablePort(node, res.Removed.Target()); ok {
		if down, err := e.createEdge(dataflow.PortRef{Node: node, Port: port}, res.Removed.Target(), true); err == nil {
			res.Downstream = down
			ops = append(ops, history.CreateEdge{Edge: down.Save()})
		}
	}

	switch {
	case res.Upstream != nil:
		e.propagatePort(res.Upstream.Target)
	case res.Downstream != nil:
		e.Propagate(node)
	}
	if res.Downstream == nil {
		// The old target lost its input.
		e.Propagate(res.Removed.TargetNodeID)
	}

	e.record(history.LevelDiagram, history.TypeInsertNode, "split",
		history.Batch{Ops: ops}, "insert %s on %s", node, res.Removed.Source())
	return res, nil
}

// DisconnectPort removes every edge incident to a port. If propagate is set
// the affected nodes are recomputed: every node fed by an output port, or the
// port's own node for an input port.
func (e *Editor) DisconnectPort(ref dataflow.PortRef, propagate bool) ([]dataflow.EdgeSave, error) {
	p, err := e.diagram.Port(ref)
	if err != nil {
		return nil, lookupError(err, "disconnect %s", ref)
	}

	var affected []dataflow.NodeID
	var removed []dataflow.EdgeSave
	var ops []history.Op
	for _, edge := range e.diagram.PortEdges(ref) {
		save := edge.Save()
		if err := e.removeEdge(edge.ID); err != nil {
			return removed, err
		}
		removed = append(removed, save)
		ops = append(ops, history.RemoveEdge{Edge: save})
		if p.IsOutput() && !slices.Contains(affected, save.TargetNodeID) {
			affected = append(affected, save.TargetNodeID)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if p.IsInput() {
		affected = []dataflow.NodeID{ref.Node}
	}
	if propagate {
		e.Propagate(affected...)
	}
	e.record(history.LevelDiagram, history.TypeDisconnectPort, "unlink",
		history.Batch{Ops: ops}, "disconnect %s", ref)
	return removed, nil
}
