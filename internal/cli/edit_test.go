package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

func newTestEditModel(t *testing.T) *editModel {
	t.Helper()
	c := testCLI(t)
	path := writeDiagram(t, "sum.json", sumSave(false))
	m, err := c.newEditModel(path)
	if err != nil {
		t.Fatalf("newEditModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// sendMouse sends a left-button event at a diagram position.
func sendMouse(m *editModel, action tea.MouseAction, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y + headerRows, Action: action, Button: tea.MouseButtonLeft})
}

func sendKey(m *editModel, k string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return cmd
}

func TestEditConnectPorts(t *testing.T) {
	m := newTestEditModel(t)

	// node-1.out sits at (17, 1); node-3.a at (30, 3).
	sendMouse(m, tea.MouseActionPress, 17, 1)
	sendMouse(m, tea.MouseActionMotion, 24, 2)
	if !m.mc.Overlay().Preview.Visible {
		t.Fatal("dragging from a port should show the preview")
	}
	sendMouse(m, tea.MouseActionRelease, 30, 3)

	d := m.ed.Diagram()
	if d.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", d.EdgeCount())
	}
	e := d.Edges()[0]
	if e.Source != (dataflow.PortRef{Node: "node-1", Port: "out"}) || e.Target != (dataflow.PortRef{Node: "node-3", Port: "a"}) {
		t.Errorf("edge = %s -> %s", e.Source, e.Target)
	}
	if m.mc.Overlay().Preview.Visible {
		t.Error("preview should be hidden after the drop")
	}

	sendKey(m, "u")
	if d.EdgeCount() != 0 {
		t.Errorf("EdgeCount() after undo = %d, want 0", d.EdgeCount())
	}
	sendKey(m, "r")
	if d.EdgeCount() != 1 {
		t.Errorf("EdgeCount() after redo = %d, want 1", d.EdgeCount())
	}
}

func TestEditDragNode(t *testing.T) {
	m := newTestEditModel(t)

	sendMouse(m, tea.MouseActionPress, 5, 9)
	sendMouse(m, tea.MouseActionMotion, 6, 9)
	sendMouse(m, tea.MouseActionMotion, 7, 10)
	sendMouse(m, tea.MouseActionRelease, 7, 10)

	n, _ := m.ed.Diagram().Node("node-2")
	if n.Position != (dataflow.Point{X: 2, Y: 9}) {
		t.Errorf("node-2 position = %v, want (2, 9)", n.Position)
	}
	if !n.Selected {
		t.Error("dragged node should be selected")
	}

	sendKey(m, "u")
	if n.Position != (dataflow.Point{X: 0, Y: 8}) {
		t.Errorf("node-2 position after undo = %v, want (0, 8)", n.Position)
	}
}

func TestEditClickSelects(t *testing.T) {
	m := newTestEditModel(t)

	sendMouse(m, tea.MouseActionPress, 5, 2)
	sendMouse(m, tea.MouseActionRelease, 5, 2)
	if got := m.ed.SelectedIDs(); len(got) != 1 || got[0] != "node-1" {
		t.Errorf("SelectedIDs() = %v, want [node-1]", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if got := m.ed.SelectedIDs(); len(got) != 0 {
		t.Errorf("SelectedIDs() after esc = %v, want none", got)
	}
}

func TestEditBoxSelectAndDelete(t *testing.T) {
	m := newTestEditModel(t)

	sendMouse(m, tea.MouseActionPress, 60, 15)
	sendMouse(m, tea.MouseActionMotion, 2, 1)
	if !m.mc.Overlay().ShowBox {
		t.Fatal("dragging the background should show the selection box")
	}
	sendMouse(m, tea.MouseActionRelease, 2, 1)

	if got := len(m.ed.SelectedIDs()); got != 3 {
		t.Fatalf("selected %d nodes, want 3", got)
	}
	sendKey(m, "x")
	if got := m.ed.Diagram().NodeCount(); got != 0 {
		t.Errorf("NodeCount() after delete = %d, want 0", got)
	}
}

func TestEditAddNode(t *testing.T) {
	m := newTestEditModel(t)

	m.Update(tea.MouseMsg{X: 50, Y: 16, Action: tea.MouseActionMotion})
	sendKey(m, "2")

	d := m.ed.Diagram()
	if d.NodeCount() != 4 {
		t.Fatalf("NodeCount() = %d, want 4", d.NodeCount())
	}
	n, ok := d.Node("node-4")
	if !ok || n.Type != m.types[1].Name {
		t.Fatalf("node-4 = %+v, want a %s", n, m.types[1].Name)
	}
	if n.Position != (dataflow.Point{X: 50, Y: 15}) {
		t.Errorf("node-4 position = %v, want (50, 15)", n.Position)
	}
}

func TestEditModifierToggles(t *testing.T) {
	m := newTestEditModel(t)

	sendKey(m, "c")
	if !m.mc.Ctrled() {
		t.Fatal("c should hold ctrl")
	}
	if !strings.Contains(m.View(), "grab") {
		t.Error("view should show the grab cursor while ctrl is held")
	}

	// ctrl+drag on the background pans every node.
	sendMouse(m, tea.MouseActionPress, 60, 15)
	sendMouse(m, tea.MouseActionMotion, 63, 16)
	sendMouse(m, tea.MouseActionRelease, 63, 16)
	n, _ := m.ed.Diagram().Node("node-1")
	if n.Position != (dataflow.Point{X: 3, Y: 1}) {
		t.Errorf("node-1 position after pan = %v, want (3, 1)", n.Position)
	}
	if m.mc.Ctrled() {
		t.Error("modifiers are released when the gesture ends")
	}
}

func TestEditWriteAndQuit(t *testing.T) {
	m := newTestEditModel(t)
	sendKey(m, "w")
	if !strings.Contains(m.status.text, "wrote") {
		t.Errorf("status = %q after write", m.status.text)
	}
	if cmd := sendKey(m, "q"); cmd == nil {
		t.Error("q should quit")
	}
}

func TestEditNewFile(t *testing.T) {
	c := testCLI(t)
	m, err := c.newEditModel(t.TempDir() + "/fresh.toml")
	if err != nil {
		t.Fatal(err)
	}
	if name := m.ed.Diagram().Name(); name != "fresh" {
		t.Errorf("Name() = %q, want fresh", name)
	}
}

func TestEditView(t *testing.T) {
	m := newTestEditModel(t)
	view := m.View()
	for _, want := range []string{"sum", "node-1", "node-3", "add", "1 add"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
