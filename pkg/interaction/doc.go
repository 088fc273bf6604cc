// Package interaction turns pointer and keyboard events into editor
// operations.
//
// A [Machine] holds exactly one [Mode] at a time:
//
//	none       idle
//	pan        background drag with ctrl held; every node follows the pointer
//	selectbox  background drag; a rectangle hovers the nodes it covers
//	node       node pressed; a drag moves the selection
//	port       port dragged; a preview arrow follows the pointer
//
// Events carry a [Target] telling what the pointer was over. Front ends
// translate their native events (browser drag and drop, terminal mouse
// reports) into the Machine's methods and draw the [Overlay] it exposes.
//
// # Modifiers
//
// Shift makes selection additive. Ctrl turns background drags into pans and
// lowers the visualization shield so pans reach through embedded panes.
// Both are released on every pointer-up, whether or not a key-up was seen,
// so a lost key-up cannot leave the machine stuck in a modifier mode.
//
// # Drags
//
// Movement is measured from the last pointer position on every step, never
// from where the drag began. A node drag is recorded in the history once,
// as the total displacement, when the drag stops.
package interaction
