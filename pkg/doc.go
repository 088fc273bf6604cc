// Package pkg provides the core libraries for the visflow dataflow editor.
//
// # Overview
//
// Visflow edits directed graphs of typed computation nodes. Values flow from
// output ports along edges to input ports, and every change to the graph
// recomputes the nodes downstream of it. The pkg directory is organized into
// three main areas:
//
//  1. Domain model: [dataflow] (nodes, ports, edges, connectivity) and
//     [nodetype] (the registry of node types and their computations)
//  2. Editing: [editor] (graph mutations), [propagate] (value propagation),
//     [history] (undo/redo), [interaction] (pointer and keyboard gestures)
//     and [canvas] (node geometry and hit testing)
//  3. Infrastructure: [io] (JSON and TOML documents), [store] (named
//     diagrams), [cache] (rendered output), [render] (Graphviz diagrams),
//     [config], [errors] and [observability]
//
// # Architecture
//
// The typical data flow through visflow:
//
//	diagram document (JSON / TOML)
//	         ↓
//	    [io] package (decode)
//	         ↓
//	    [editor] package (deserialize, mutate, record history)
//	         ↓
//	    [propagate] package (recompute downstream nodes)
//	         ↓
//	    [render] package (DOT / SVG output), terminal editor, HTTP preview
//
// # Quick Start
//
// Load a diagram, recompute it and read an output:
//
//	import (
//	    "github.com/matzehuels/visflow/pkg/editor"
//	    pkgio "github.com/matzehuels/visflow/pkg/io"
//	    "github.com/matzehuels/visflow/pkg/nodetype/builtin"
//	)
//
//	save, _ := pkgio.Import("sum.json")
//	ed := editor.New(editor.Options{Registry: builtin.NewRegistry()})
//	report := ed.DeserializeDiagram(save)
//	if err := report.Err(); err != nil {
//	    // Some nodes or edges were skipped
//	}
//	v, _ := ed.NodeValue(dataflow.PortRef{Node: "node-3", Port: "out"})
//
// # Error Handling
//
// Fallible operations return coded errors from [errors]; lookup failures are
// reported to the editor's messenger and skipped rather than aborting a load.
package pkg
