// Package dataflow provides the graph model behind the visual pipeline editor:
// nodes with typed input and output ports, directed edges between ports, and
// the diagram that owns them.
//
// # Overview
//
// A [Diagram] is an arena. It holds every [Node] in an indexed table, and
// each node exclusively owns its [Port] values. Cross references are ids,
// never ownership pointers:
//
//   - a port refers to its owning node by [NodeID]
//   - an edge refers to its endpoints by [PortRef]
//   - a port keeps the ids of its incident edges
//
// References are resolved through the diagram at use time, which keeps the
// structure free of ownership cycles while still giving O(1) traversal.
//
// # Basic Usage
//
//	d := dataflow.New("example")
//	d.AddNode(dataflow.NewNode("node-1", "constant", nil, []dataflow.PortSpec{{ID: "out", Type: "number"}}))
//	d.AddNode(dataflow.NewNode("node-2", "inspect", []dataflow.PortSpec{{ID: "in", Type: "any"}}, nil))
//	d.AddEdge(dataflow.PortRef{Node: "node-1", Port: "out"}, dataflow.PortRef{Node: "node-2", Port: "in"})
//
// [Diagram.AddEdge] only links ports; it does not decide whether the link
// makes sense. That is the job of [CheckConnectivity], a pure function the
// editor runs before every edge it creates.
//
// # Edges
//
// Edges are always stored source to target, where the source is an output
// port and the target is an input port. Edges are discoverable through port
// incidence; the diagram additionally caches them in an index keyed by
// [EdgeID] for constant-time lookup.
//
// # Layers
//
// Every node carries a layer. Layers give the z-order for rendering and a
// deterministic tie-break for propagation order. [Diagram.NumLayers] is kept
// at or above the highest layer of any node.
//
// # Concurrency
//
// Diagram instances are not safe for concurrent use. The editor mutates a
// diagram from a single event-processing goroutine only.
package dataflow
