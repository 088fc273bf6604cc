package editor

import (
	"slices"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/history"
)

// NodeOptions describes a node to create.
type NodeOptions struct {
	Type     string
	Position dataflow.Point

	// State overrides the type's default options.
	State dataflow.Metadata

	// Activate makes the new node the active, sole selected node.
	Activate bool
}

// CreateNode creates a node of the given type with a fresh id and places it
// above every existing node. An unknown type is reported and returned as an
// UNKNOWN_NODE_TYPE error.
func (e *Editor) CreateNode(opts NodeOptions) (*dataflow.Node, error) {
	save := dataflow.NodeSave{
		ID:    e.diagram.NextNodeID(),
		Type:  opts.Type,
		Layer: e.diagram.NumLayers() + 1,
		X:     opts.Position.X,
		Y:     opts.Position.Y,
		State: opts.State,
	}
	n, err := e.createNode(save)
	if err != nil {
		e.msg.Error(errors.UserMessage(err))
		return nil, err
	}
	if opts.Activate {
		e.ActivateNode(n.ID)
		e.selectOnly(n.ID)
	}
	e.Propagate(n.ID)
	e.record(history.LevelDiagram, history.TypeCreateNode, "plus",
		history.CreateNode{Save: n.Save()}, "create node %s", n.ID)
	return n, nil
}

// createNode instantiates a node from a saved record and registers it with
// the diagram and the canvas. It neither propagates nor records.
func (e *Editor) createNode(save dataflow.NodeSave) (*dataflow.Node, error) {
	typ, err := e.registry.Lookup(save.Type)
	if err != nil {
		return nil, err
	}
	n := typ.New(save.ID, save.State)
	n.Layer = save.Layer
	n.Position = dataflow.Point{X: save.X, Y: save.Y}
	if err := e.diagram.AddNode(n); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "add node %s", save.ID)
	}
	e.canvas.AddNode(n)
	e.logger.Debug("node created", "node", n.ID, "type", n.Type)
	return n, nil
}

// RemoveNode removes a node and every edge incident to it. If propagate is
// set, the nodes it fed are recomputed afterwards. It returns the removed
// edges.
func (e *Editor) RemoveNode(id dataflow.NodeID, propagate bool) ([]dataflow.EdgeSave, error) {
	n, ok := e.diagram.Node(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id)
	}
	save := n.Save()
	downstream := e.diagram.OutputNodes(id)

	edges, err := e.removeNode(id)
	if err != nil {
		return nil, err
	}
	if propagate {
		e.Propagate(downstream...)
	}
	e.record(history.LevelDiagram, history.TypeRemoveNode, "trash",
		history.RemoveNode{Save: save, Edges: edges}, "remove node %s", id)
	return edges, nil
}

// removeNode removes the node's edges, then the node. It neither propagates
// nor records.
func (e *Editor) removeNode(id dataflow.NodeID) ([]dataflow.EdgeSave, error) {
	var removed []dataflow.EdgeSave
	for _, edge := range e.diagram.AllEdges(id) {
		if err := e.removeEdge(edge.ID); err != nil {
			return removed, err
		}
		removed = append(removed, edge.Save())
	}
	e.canvas.RemoveNode(id)
	if _, err := e.diagram.RemoveNode(id); err != nil {
		return removed, lookupError(err, "remove node %s", id)
	}
	e.logger.Debug("node removed", "node", id, "edges", len(removed))
	return removed, nil
}

// Removal reports what RemoveSelectedNodes did.
type Removal struct {
	Nodes []dataflow.NodeID
	Edges []dataflow.EdgeSave

	// Propagated lists the nodes recomputed once the batch was done.
	Propagated []dataflow.NodeID
}

// RemoveSelectedNodes removes every selected node as one batch. Only the
// nodes fed by the selection that are not selected themselves are
// recomputed, once, after the whole batch. One history event is recorded.
func (e *Editor) RemoveSelectedNodes() Removal {
	selected := e.diagram.Selected()
	if len(selected) == 0 {
		return Removal{}
	}

	ids := make([]dataflow.NodeID, len(selected))
	for i, n := range selected {
		ids[i] = n.ID
	}
	var frontier []dataflow.NodeID
	for _, id := range ids {
		for _, next := range e.diagram.OutputNodes(id) {
			if !slices.Contains(ids, next) && !slices.Contains(frontier, next) {
				frontier = append(frontier, next)
			}
		}
	}

	var res Removal
	var ops []history.Op
	for _, n := range selected {
		save := n.Save()
		edges, err := e.removeNode(n.ID)
		res.Edges = append(res.Edges, edges...)
		if err != nil {
			e.msg.Error(errors.UserMessage(err))
			continue
		}
		res.Nodes = append(res.Nodes, n.ID)
		ops = append(ops, history.RemoveNode{Save: save, Edges: edges})
	}

	res.Propagated = e.Propagate(frontier...).Processed
	if len(ops) > 0 {
		e.record(history.LevelDiagram, history.TypeRemoveNodes, "trash",
			history.Batch{Ops: ops}, "remove %d nodes", len(ops))
	}
	return res
}

// SetNodeOption sets one option of a node's state, records the change and
// recomputes the node.
func (e *Editor) SetNodeOption(id dataflow.NodeID, key string, value any) error {
	n, ok := e.diagram.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id)
	}
	prev, had := n.State[key]
	n.State[key] = value
	e.Propagate(id)
	e.record(history.LevelNode, history.TypeNodeOption, "sliders", history.SetOption{
		Node:    id,
		Key:     key,
		Prev:    prev,
		Next:    value,
		HadPrev: had,
		HasNext: true,
	}, "set %s.%s", id, key)
	return nil
}

// MoveNodes translates nodes by delta and records the move.
func (e *Editor) MoveNodes(ids []dataflow.NodeID, delta dataflow.Point) {
	if delta.IsZero() || len(ids) == 0 {
		return
	}
	e.NudgeNodes(ids, delta)
	e.RecordMove(ids, delta)
}

// NudgeNodes translates nodes without recording. Drags call it on every
// step and record the total with RecordMove once they end.
func (e *Editor) NudgeNodes(ids []dataflow.NodeID, delta dataflow.Point) {
	for _, id := range ids {
		if n, ok := e.diagram.Node(id); ok {
			n.Position = n.Position.Add(delta)
		}
	}
}

// RecordMove records a move that has already been applied.
func (e *Editor) RecordMove(ids []dataflow.NodeID, total dataflow.Point) {
	if total.IsZero() || len(ids) == 0 {
		return
	}
	e.record(history.LevelInteraction, history.TypeMoveNodes, "move",
		history.MoveNodes{Nodes: slices.Clone(ids), Delta: total}, "move %d nodes", len(ids))
}

// TranslateAll pans the view by moving every node. Panning is not recorded.
func (e *Editor) TranslateAll(delta dataflow.Point) {
	if delta.IsZero() {
		return
	}
	e.NudgeNodes(e.diagram.NodeIDs(), delta)
}

// SelectNodes selects ids. Unless additive is set, every other node is
// deselected first. Selected nodes are brought to the front.
func (e *Editor) SelectNodes(ids []dataflow.NodeID, additive bool) {
	if !additive {
		e.ClearSelection()
	}
	for _, id := range ids {
		if n, ok := e.diagram.Node(id); ok {
			n.Selected = true
			e.diagram.BringToFront(id)
		}
	}
}

func (e *Editor) selectOnly(id dataflow.NodeID) {
	e.SelectNodes([]dataflow.NodeID{id}, false)
}

// ClearSelection deselects every node.
func (e *Editor) ClearSelection() {
	for _, n := range e.diagram.Nodes() {
		n.Selected = false
	}
}

// SelectedIDs returns the ids of the selected nodes in diagram order.
func (e *Editor) SelectedIDs() []dataflow.NodeID {
	var out []dataflow.NodeID
	for _, n := range e.diagram.Selected() {
		out = append(out, n.ID)
	}
	return out
}

// IsSelected reports whether node id is selected.
func (e *Editor) IsSelected(id dataflow.NodeID) bool {
	n, ok := e.diagram.Node(id)
	return ok && n.Selected
}

// SetHovered marks exactly ids as hovered.
func (e *Editor) SetHovered(ids []dataflow.NodeID) {
	for _, n := range e.diagram.Nodes() {
		n.Hovered = slices.Contains(ids, n.ID)
	}
}

// HoveredIDs returns the hovered nodes in diagram order.
func (e *Editor) HoveredIDs() []dataflow.NodeID {
	var out []dataflow.NodeID
	for _, n := range e.diagram.Nodes() {
		if n.Hovered {
			out = append(out, n.ID)
		}
	}
	return out
}

// NodesInBox asks the canvas which nodes intersect box.
func (e *Editor) NodesInBox(box dataflow.Box) []dataflow.NodeID {
	return e.canvas.NodesInBox(box)
}

// ActivateNode makes id the single active node. An empty id deactivates all.
func (e *Editor) ActivateNode(id dataflow.NodeID) {
	for _, n := range e.diagram.Nodes() {
		n.Active = n.ID == id
	}
}

// DeactivateAll clears the active flag on every node.
func (e *Editor) DeactivateAll() { e.ActivateNode("") }
