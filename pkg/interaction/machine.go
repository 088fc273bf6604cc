package interaction

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/editor"
)

// Editor is what the machine needs from the graph mutator. *editor.Editor
// implements it.
type Editor interface {
	Diagram() *dataflow.Diagram
	NodesInBox(box dataflow.Box) []dataflow.NodeID
	SetHovered(ids []dataflow.NodeID)
	HoveredIDs() []dataflow.NodeID
	SelectNodes(ids []dataflow.NodeID, additive bool)
	ClearSelection()
	IsSelected(id dataflow.NodeID) bool
	SelectedIDs() []dataflow.NodeID
	NudgeNodes(ids []dataflow.NodeID, delta dataflow.Point)
	RecordMove(ids []dataflow.NodeID, total dataflow.Point)
	TranslateAll(delta dataflow.Point)
	CreateEdge(source, target dataflow.PortRef, opts editor.EdgeOptions) (*dataflow.Edge, error)
}

// Geometry locates ports on the rendering surface. *canvas.Canvas
// implements it.
type Geometry interface {
	PortCenter(ref dataflow.PortRef) (dataflow.Point, bool)
}

// Machine is the interaction state machine. It is not safe for concurrent
// use; events are handled one at a time to completion.
type Machine struct {
	editor Editor
	geom   Geometry
	logger *log.Logger

	mode    Mode
	shifted bool
	ctrled  bool

	down  dataflow.Point // pointer-down position
	last  dataflow.Point // previous pointer position
	moved bool

	pressed dataflow.NodeID // node under pointer-down in ModeNode

	dragNodes []dataflow.NodeID
	dragTotal dataflow.Point

	origin    dataflow.PortRef // port a drag started at
	fromInput bool
	canDrop   bool
	overlay   Overlay
}

// New creates a machine driving ed. A nil logger uses log.Default().
func New(ed Editor, geom Geometry, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.Default()
	}
	return &Machine{editor: ed, geom: geom, logger: logger}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Shifted reports whether shift is held.
func (m *Machine) Shifted() bool { return m.shifted }

// Ctrled reports whether ctrl is held.
func (m *Machine) Ctrled() bool { return m.ctrled }

// Overlay returns the transient drawing state.
func (m *Machine) Overlay() Overlay { return m.overlay }

// Cursor returns the pointer affordance for the held modifier.
func (m *Machine) Cursor() Cursor {
	switch {
	case m.ctrled:
		return CursorGrab
	case m.shifted:
		return CursorCrosshair
	}
	return CursorDefault
}

// Shielded reports whether embedded visualization panes should capture the
// pointer. Holding ctrl lowers the shield so a pan can start over them.
func (m *Machine) Shielded() bool { return !m.ctrled }

func (m *Machine) setMode(mode Mode) {
	if m.mode != mode {
		m.logger.Debug("interaction mode", "from", m.mode, "to", mode)
	}
	m.mode = mode
}

// KeyDown holds a modifier. Only one modifier is meaningful at a time, so
// holding one releases the other.
func (m *Machine) KeyDown(k Key) {
	switch k {
	case KeyShift:
		m.shifted, m.ctrled = true, false
	case KeyCtrl:
		m.ctrled, m.shifted = true, false
	}
}

// KeyUp releases a modifier.
func (m *Machine) KeyUp(k Key) {
	switch k {
	case KeyShift:
		m.shifted = false
	case KeyCtrl:
		m.ctrled = false
	}
}

func (m *Machine) releaseModifiers() {
	m.shifted = false
	m.ctrled = false
}

// MouseDown starts a gesture. On the background it starts a pan when ctrl
// is held and a selection rectangle otherwise. On a node it enters node
// mode; the drag itself begins with DragStart.
func (m *Machine) MouseDown(t Target, p dataflow.Point) {
	m.down, m.last, m.moved = p, p, false
	switch t.Kind {
	case OnBackground:
		if m.ctrled {
			m.setMode(ModePan)
			return
		}
		m.overlay.ShowBox = true
		m.overlay.Box = dataflow.BoxFrom(p, p)
		m.setMode(ModeSelectBox)
	case OnNode:
		m.pressed = t.Node
		m.setMode(ModeNode)
	}
}

// MouseMove pans or resizes the selection rectangle.
func (m *Machine) MouseMove(p dataflow.Point) {
	switch m.mode {
	case ModePan:
		m.editor.TranslateAll(p.Sub(m.last))
	case ModeSelectBox:
		m.overlay.Box = dataflow.BoxFrom(m.down, p)
		m.editor.SetHovered(m.editor.NodesInBox(m.overlay.Box))
	default:
		return
	}
	if p != m.down {
		m.moved = true
	}
	m.last = p
}

// MouseUp ends a gesture. A selection rectangle that never moved is an
// empty click and clears the selection; otherwise the hovered nodes replace
// the selection, or join it with shift held. A node released without
// moving is a click on that node. Modifiers are released afterwards.
func (m *Machine) MouseUp(t Target, p dataflow.Point) {
	switch m.mode {
	case ModeSelectBox:
		switch {
		case !m.moved:
			m.editor.ClearSelection()
		case !m.ctrled:
			m.editor.SelectNodes(m.editor.HoveredIDs(), m.shifted)
		}
		m.editor.SetHovered(nil)
		m.overlay.ShowBox = false
	case ModeNode:
		if !m.moved {
			id := m.pressed
			if t.Kind == OnNode {
				id = t.Node
			}
			m.editor.SelectNodes([]dataflow.NodeID{id}, m.shifted)
		}
	}
	m.pressed = ""
	m.setMode(ModeNone)
	m.releaseModifiers()
}

// DragStart begins dragging a node or drawing an edge from a port.
//
// Dragging a node that is not selected selects only that node first; the
// whole selection then moves together.
func (m *Machine) DragStart(t Target, p dataflow.Point) {
	switch t.Kind {
	case OnNode:
		if !m.editor.IsSelected(t.Node) {
			m.editor.SelectNodes([]dataflow.NodeID{t.Node}, false)
		}
		m.dragNodes = m.editor.SelectedIDs()
		m.dragTotal = dataflow.Point{}
		m.last = p
		m.pressed = t.Node
		m.setMode(ModeNode)
	case OnPort:
		ref := t.Ref()
		anchor, ok := m.geom.PortCenter(ref)
		if !ok {
			anchor = p
		}
		port, err := m.editor.Diagram().Port(ref)
		m.fromInput = err == nil && port.IsInput()
		m.origin = ref
		m.canDrop = true
		m.overlay.Preview = Preview{Visible: true, From: anchor, To: anchor}
		m.setMode(ModePort)
	}
}

// DragMove moves the dragged nodes by the pointer's step, or follows the
// pointer with the edge preview.
func (m *Machine) DragMove(t Target, p dataflow.Point) {
	switch m.mode {
	case ModeNode:
		delta := p.Sub(m.last)
		m.editor.NudgeNodes(m.dragNodes, delta)
		m.dragTotal = m.dragTotal.Add(delta)
		if !delta.IsZero() {
			m.moved = true
		}
		m.last = p
	case ModePort:
		m.overlay.Preview.update(p, m.fromInput)
	}
}

// DragStop ends a drag. A node drag records its total displacement. A port
// drag hides the preview and returns to idle whether or not a drop
// happened.
func (m *Machine) DragStop(t Target, p dataflow.Point) {
	switch m.mode {
	case ModeNode:
		m.editor.RecordMove(m.dragNodes, m.dragTotal)
		m.dragNodes = nil
		m.dragTotal = dataflow.Point{}
	case ModePort:
		m.overlay.Preview = Preview{}
		m.canDrop = false
		m.setMode(ModeNone)
	}
}

// Drop connects the port the drag started at to the port t. Only the first
// drop of a drag counts. The edge always runs from output to input.
func (m *Machine) Drop(t Target) (*dataflow.Edge, error) {
	if !m.canDrop || t.Kind != OnPort {
		return nil, nil
	}
	m.canDrop = false

	source, target := m.origin, t.Ref()
	if m.fromInput {
		source, target = target, source
	}
	edge, err := m.editor.CreateEdge(source, target, editor.EdgeOptions{Propagate: true})
	if err != nil {
		m.logger.Debug("drop rejected", "source", source, "target", target, "err", err)
		return nil, err
	}
	return edge, nil
}
