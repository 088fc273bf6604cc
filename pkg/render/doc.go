// Package render groups the diagram renderers.
//
// The [nodelink] subpackage draws a diagram as a Graphviz graph: nodes are
// records with one field per port and edges run from output fields to input
// fields.
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/matzehuels/visflow/pkg/render/nodelink
package render
