package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visflow/pkg/canvas"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/editor"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/interaction"
	pkgio "github.com/matzehuels/visflow/pkg/io"
	"github.com/matzehuels/visflow/pkg/nodetype"
)

// headerRows is the number of screen rows above the canvas.
const headerRows = 1

// editCommand creates the edit command: an interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a diagram in the terminal",
		Long: `Edit a diagram in the terminal. A missing file starts an empty diagram.

Mouse:
  drag background     select nodes in a rectangle
  drag node           move the selection
  drag port to port   connect
  click node          select it (with shift: add to the selection)

Keys:
  s / c     hold shift / ctrl for the next gesture (ctrl+drag pans)
  1-9       add a node of the listed type at the pointer
  x         delete the selected nodes
  p         propagate every node
  u / r     undo / redo
  w         write the file
  esc       clear the selection
  q         quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.newEditModel(args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			return err
		},
	}
}

// =============================================================================
// Edit Model
// =============================================================================

// editModel is the bubbletea model of the terminal editor. Mouse events are
// translated into the interaction machine's gestures; a press followed by
// motion becomes a drag, a press without motion stays a click.
type editModel struct {
	path   string
	ed     *editor.Editor
	cv     *canvas.Canvas
	mc     *interaction.Machine
	types  []nodetype.Type
	status *statusMessenger

	width, height int

	pointer  dataflow.Point
	down     bool
	dragging bool
	press    interaction.Target
	pressAt  dataflow.Point
}

func (c *CLI) newEditModel(path string) (*editModel, error) {
	m := &editModel{
		path:   path,
		cv:     canvas.New(c.Config.Canvas),
		status: &statusMessenger{},
		width:  80,
		height: 24,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		m.ed = c.newEditor(m.cv, m.status)
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		m.ed.DeserializeDiagram(dataflow.DiagramSave{DiagramName: name})
		m.status.Info("new diagram " + name)
	} else {
		ed, report, err := c.loadEditor(path, m.cv, m.status)
		if err != nil {
			return nil, err
		}
		m.ed = ed
		if len(report.Problems) == 0 {
			m.status.Info(fmt.Sprintf("loaded %d nodes, %d edges", report.Nodes, report.Edges))
		}
	}

	m.mc = interaction.New(m.ed, m.cv, c.Logger)
	m.types = m.ed.Registry().Types()
	return m, nil
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *editModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "s":
		m.toggle(interaction.KeyShift, m.mc.Shifted())
	case "c":
		m.toggle(interaction.KeyCtrl, m.mc.Ctrled())
	case "esc":
		m.ed.ClearSelection()
	case "x", "delete":
		r := m.ed.RemoveSelectedNodes()
		if len(r.Nodes) > 0 {
			m.status.Info(fmt.Sprintf("removed %d nodes", len(r.Nodes)))
		}
	case "p":
		res := m.ed.PropagateAll()
		m.status.Info(fmt.Sprintf("propagated %d nodes, %d failed", len(res.Processed), len(res.Failed)))
	case "u":
		if ev, err := m.ed.Undo(); err != nil {
			m.status.Warn(errors.UserMessage(err))
		} else {
			m.status.Info("undo " + ev.Message)
		}
	case "r":
		if ev, err := m.ed.Redo(); err != nil {
			m.status.Warn(errors.UserMessage(err))
		} else {
			m.status.Info("redo " + ev.Message)
		}
	case "w":
		if err := pkgio.Export(m.ed.SerializeDiagram(), m.path); err != nil {
			m.status.Error(errors.UserMessage(err))
		} else {
			m.status.Info("wrote " + m.path)
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.addNode(int(key[0] - '1'))
		}
	}
	return nil
}

func (m *editModel) toggle(k interaction.Key, held bool) {
	if held {
		m.mc.KeyUp(k)
	} else {
		m.mc.KeyDown(k)
	}
}

func (m *editModel) addNode(i int) {
	if i >= len(m.types) {
		return
	}
	n, err := m.ed.CreateNode(editor.NodeOptions{
		Type:     m.types[i].Name,
		Position: m.pointer,
		Activate: true,
	})
	if err == nil {
		m.status.Info("created " + nodeLabel(n))
	}
}

func (m *editModel) handleMouse(msg tea.MouseMsg) {
	p := dataflow.Point{X: float64(msg.X), Y: float64(msg.Y - headerRows)}
	m.pointer = p

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if msg.Shift && !m.mc.Shifted() {
			m.mc.KeyDown(interaction.KeyShift)
		}
		if msg.Ctrl && !m.mc.Ctrled() {
			m.mc.KeyDown(interaction.KeyCtrl)
		}
		m.down, m.dragging = true, false
		m.press, m.pressAt = m.targetAt(p), p
		m.mc.MouseDown(m.press, p)

	case tea.MouseActionMotion:
		if !m.down {
			return
		}
		if m.press.Kind == interaction.OnBackground {
			m.mc.MouseMove(p)
			return
		}
		if !m.dragging {
			m.dragging = true
			m.mc.DragStart(m.press, m.pressAt)
		}
		m.mc.DragMove(m.targetAt(p), p)

	case tea.MouseActionRelease:
		if !m.down {
			return
		}
		t := m.targetAt(p)
		if m.dragging {
			if m.press.Kind == interaction.OnPort {
				if e, err := m.mc.Drop(t); e != nil {
					m.status.Info(fmt.Sprintf("connected %s -> %s", e.Source, e.Target))
				} else if err != nil && !errors.Is(err, errors.ErrCodeNotConnectable) {
					m.status.Warn(errors.UserMessage(err))
				}
			}
			m.mc.DragStop(t, p)
		}
		m.mc.MouseUp(t, p)
		m.down, m.dragging = false, false
	}
}

// targetAt hit-tests the canvas.
func (m *editModel) targetAt(p dataflow.Point) interaction.Target {
	hit := m.cv.HitTest(p)
	switch {
	case hit.IsBackground():
		return interaction.Background()
	case hit.IsPort():
		return interaction.Port(hit.PortRef())
	}
	return interaction.Node(hit.Node)
}

func (m *editModel) View() string {
	var b strings.Builder

	d := m.ed.Diagram()
	header := StyleTitle.Render(d.Name()) + StyleDim.Render(fmt.Sprintf("  %d nodes · %d edges · %s", d.NodeCount(), d.EdgeCount(), m.mc.Mode()))
	if m.mc.Shifted() || m.mc.Ctrled() {
		header += "  " + StyleWarning.Render("["+m.mc.Cursor().String()+"]")
	}
	b.WriteString(header)
	b.WriteString("\n")

	g := newGrid(m.width, m.height-headerRows-2)
	drawDiagram(g, m.cv, m.mc.Overlay())
	b.WriteString(g.String())
	b.WriteString("\n")

	b.WriteString(m.status.render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.typeHelp() + "  x delete  u/r undo/redo  w write  q quit"))
	return b.String()
}

func (m *editModel) typeHelp() string {
	parts := make([]string, 0, min(len(m.types), 9))
	for i, t := range m.types {
		if i == 9 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d %s", i+1, t.Name))
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// Status Line
// =============================================================================

// statusMessenger shows the latest editor advisory in the status line.
type statusMessenger struct {
	text string
	kind ink
}

func (s *statusMessenger) Info(msg string)  { s.text, s.kind = msg, inkText }
func (s *statusMessenger) Warn(msg string)  { s.text, s.kind = msg, inkHovered }
func (s *statusMessenger) Error(msg string) { s.text, s.kind = msg, inkFailed }

func (s *statusMessenger) render() string {
	icon := iconInfo
	switch s.kind {
	case inkHovered:
		icon = iconWarning
	case inkFailed:
		icon = iconError
	}
	style := inkStyles[s.kind]
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(icon), " ", style.Render(s.text))
}
