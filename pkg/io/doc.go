// Package io reads and writes diagram documents.
//
// # JSON Format
//
// A document names the diagram and lists its nodes and edges:
//
//	{
//	  "diagramName": "pipeline",
//	  "nodes": [
//	    {"id": "node-1", "type": "range", "layer": 1, "x": 0, "y": 0, "end": 5},
//	    {"id": "node-2", "type": "sum", "layer": 2, "x": 30, "y": 0}
//	  ],
//	  "edges": [
//	    {"sourceNodeId": "node-1", "sourcePortId": "out",
//	     "targetNodeId": "node-2", "targetPortId": "in"}
//	  ]
//	}
//
// Node records carry the common fields id, type, layer, x and y. Every other
// key is type-specific state ("end" above) and is handed to the node type
// when the node is rebuilt.
//
// # TOML Format
//
// The same document can be written as TOML, which is easier to edit by hand:
//
//	diagramName = "pipeline"
//
//	[[nodes]]
//	id = "node-1"
//	type = "range"
//	end = 5.0
//
//	[[edges]]
//	sourceNodeId = "node-1"
//	sourcePortId = "out"
//	targetNodeId = "node-2"
//	targetPortId = "in"
//
// # Import and Export
//
// [Import] and [Export] pick the format from the file extension (.json or
// .toml). [ReadJSON], [ReadTOML], [WriteJSON] and [WriteTOML] work on any
// reader or writer. Decoding does not check that node types exist or that
// edges resolve; the editor reports those problems when it loads the
// document.
package io
