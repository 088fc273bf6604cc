package editor

import (
	stderrors "errors"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/propagate"
)

// ResetDataflow removes every node and edge, restores a fresh diagram and
// clears the history.
func (e *Editor) ResetDataflow() {
	for _, id := range e.diagram.NodeIDs() {
		if _, err := e.removeNode(id); err != nil {
			e.logger.Error("reset", "node", id, "err", err)
		}
	}
	e.diagram.Reset()
	e.history.Clear()
	e.logger.Debug("diagram reset")
}

// SerializeDiagram returns the persisted form of the diagram. Edges are
// collected from their source side only, so each appears once.
func (e *Editor) SerializeDiagram() dataflow.DiagramSave {
	save := dataflow.DiagramSave{
		DiagramName: e.diagram.Name(),
		Nodes:       []dataflow.NodeSave{},
		Edges:       []dataflow.EdgeSave{},
	}
	for _, n := range e.diagram.Nodes() {
		save.Nodes = append(save.Nodes, n.Save())
		for _, edge := range e.diagram.OutputEdges(n.ID) {
			save.Edges = append(save.Edges, edge.Save())
		}
	}
	return save
}

// LoadReport describes the outcome of DeserializeDiagram.
type LoadReport struct {
	Nodes int
	Edges int

	// Problems lists the records that were skipped.
	Problems []error

	// Propagation is the single pass run once the graph was complete.
	Propagation propagate.Result
}

// Err joins the problems into one error, or returns nil.
func (r LoadReport) Err() error { return stderrors.Join(r.Problems...) }

// DeserializeDiagram replaces the diagram with a saved one. Records that
// cannot be restored (unknown node type, missing node or port, rejected
// connection) are reported and skipped while the rest loads. Propagation is
// suppressed while loading; one pass from the propagation sources runs at
// the end. The history starts empty.
func (e *Editor) DeserializeDiagram(save dataflow.DiagramSave) LoadReport {
	e.ResetDataflow()
	e.diagram.SetName(save.DiagramName)
	e.diagram.SetDeserializing(true)

	var report LoadReport
	problem := func(err error) {
		report.Problems = append(report.Problems, err)
		e.msg.Error(errors.UserMessage(err))
	}

	maxLayer := 0
	for _, ns := range save.Nodes {
		if _, err := e.createNode(ns); err != nil {
			problem(err)
			continue
		}
		report.Nodes++
		maxLayer = max(maxLayer, ns.Layer)
	}
	e.DeactivateAll()
	e.diagram.SetNumLayers(maxLayer)

	for _, es := range save.Edges {
		if _, err := e.createEdge(es.Source(), es.Target(), true); err != nil {
			problem(errors.Wrap(errors.GetCode(err), err, "edge %s -> %s", es.Source(), es.Target()))
			continue
		}
		report.Edges++
	}

	e.diagram.SetDeserializing(false)
	report.Propagation = e.engine.PropagateSources()
	if report.Propagation.Cycle {
		e.msg.Warn("diagram contains a cycle")
	}
	e.history.Clear()
	e.logger.Info("diagram loaded", "name", e.diagram.Name(),
		"nodes", report.Nodes, "edges", report.Edges, "problems", len(report.Problems))
	return report
}
