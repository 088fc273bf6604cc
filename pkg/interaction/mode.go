package interaction

import "github.com/matzehuels/visflow/pkg/dataflow"

// Mode is the current pointer gesture.
type Mode int

const (
	ModeNone Mode = iota
	ModePan
	ModeSelectBox
	ModeNode
	ModePort
)

var modeNames = [...]string{"none", "pan", "selectbox", "node", "port"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Kind tells what an event's pointer was over.
type Kind int

const (
	OnBackground Kind = iota
	OnNode
	OnPort
)

func (k Kind) String() string {
	switch k {
	case OnBackground:
		return "background"
	case OnNode:
		return "node"
	case OnPort:
		return "port"
	}
	return "unknown"
}

// Target is the thing under the pointer.
type Target struct {
	Kind Kind
	Node dataflow.NodeID
	Port dataflow.PortID
}

// Background targets the empty canvas.
func Background() Target { return Target{Kind: OnBackground} }

// Node targets a node body.
func Node(id dataflow.NodeID) Target { return Target{Kind: OnNode, Node: id} }

// Port targets a port.
func Port(ref dataflow.PortRef) Target { return Target{Kind: OnPort, Node: ref.Node, Port: ref.Port} }

// Ref returns the port address of a port target.
func (t Target) Ref() dataflow.PortRef { return dataflow.PortRef{Node: t.Node, Port: t.Port} }

// Key is a modifier key the machine tracks.
type Key int

const (
	KeyShift Key = iota
	KeyCtrl
)

// Cursor is the pointer affordance front ends should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorGrab
)

func (c Cursor) String() string {
	switch c {
	case CursorCrosshair:
		return "crosshair"
	case CursorGrab:
		return "grab"
	}
	return "default"
}
