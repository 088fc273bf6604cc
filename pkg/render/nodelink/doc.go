// Package nodelink renders dataflow diagrams as node-link diagrams.
//
// # Usage
//
// Convert a diagram to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Layout
//
// The generated DOT lays the graph out left to right (rankdir=LR). Each node
// is a record: input ports on the left, the node id and type in the middle,
// output ports on the right. Edges attach to the port fields, so a node
// with two inputs shows which edge feeds which port.
//
// # Options
//
//   - Detailed: the middle field also lists the node's state and the last
//     value of each output port
//
// Nodes whose last computation failed are outlined in red; selected nodes
// are filled.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
