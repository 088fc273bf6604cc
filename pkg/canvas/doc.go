// Package canvas keeps the geometry of a diagram's rendering surface.
//
// The editor tells a [Canvas] whenever the model changes shape (nodes and
// edges added or removed). The canvas answers the spatial questions the
// interaction layer asks: which nodes a selection rectangle covers, where a
// port sits on screen, and what lies under the pointer.
//
// # Layout
//
// A node is a box whose top-left corner is its position. Input ports sit on
// the left border and output ports on the right border, one every
// [Config.PortSpacing] units starting one spacing below the top. A node
// grows taller when it has more ports than fit its configured height.
//
// Units are abstract. The terminal editor uses one unit per character cell;
// other front ends may use pixels.
package canvas
