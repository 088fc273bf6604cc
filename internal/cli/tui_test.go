package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/visflow/pkg/canvas"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/interaction"
)

// runes returns row y of g without styling.
func (g *grid) runes(y int) string {
	var b strings.Builder
	for _, c := range g.cells[y*g.w : (y+1)*g.w] {
		b.WriteRune(c.r)
	}
	return b.String()
}

func TestGridClipsWrites(t *testing.T) {
	g := newGrid(4, 2)
	g.set(-1, 0, 'x', inkNode)
	g.set(4, 0, 'x', inkNode)
	g.set(0, 2, 'x', inkNode)
	g.text(2, 1, "hello", 10, inkText)

	if got := g.runes(0); got != "    " {
		t.Errorf("row 0 = %q, want blank", got)
	}
	if got := g.runes(1); got != "  he" {
		t.Errorf("row 1 = %q, want %q", got, "  he")
	}
}

func TestGridFrame(t *testing.T) {
	g := newGrid(5, 3)
	g.frame(0, 0, 4, 2, inkNode, false)
	want := []string{"╭───╮", "│   │", "╰───╯"}
	for y, w := range want {
		if got := g.runes(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}

	g = newGrid(3, 3)
	g.frame(0, 0, 2, 2, inkBox, true)
	if got := g.runes(1); got != "╎ ╎" {
		t.Errorf("dashed row = %q", got)
	}
}

func TestGridLine(t *testing.T) {
	g := newGrid(4, 4)
	g.line(0, 0, 3, 3, '*', inkPreview)
	for i := 0; i < 4; i++ {
		if g.cells[i*4+i].r != '*' {
			t.Errorf("cell (%d, %d) not plotted", i, i)
		}
	}
}

func TestDrawEdge(t *testing.T) {
	g := newGrid(12, 4)
	drawEdge(g, 2, 1, 10, 3)

	if got := g.runes(1); got != "   ───╮     " {
		t.Errorf("row 1 = %q", got)
	}
	if got := g.runes(2); got != "      │     " {
		t.Errorf("row 2 = %q", got)
	}
	if got := g.runes(3); got != "      ╰──▸  " {
		t.Errorf("row 3 = %q", got)
	}
}

func TestDrawDiagram(t *testing.T) {
	cv := canvas.New(canvas.DefaultConfig())
	src := dataflow.NewNode("node-1", "constant", nil, []dataflow.PortSpec{{ID: "out", Type: "number"}})
	dst := dataflow.NewNode("node-2", "inspect", []dataflow.PortSpec{{ID: "in", Type: "any"}}, nil)
	dst.Position = dataflow.Point{X: 30, Y: 0}
	d := dataflow.New("t")
	for _, n := range []*dataflow.Node{src, dst} {
		if err := d.AddNode(n); err != nil {
			t.Fatal(err)
		}
		cv.AddNode(n)
	}
	e, err := d.AddEdge(dataflow.PortRef{Node: "node-1", Port: "out"}, dataflow.PortRef{Node: "node-2", Port: "in"})
	if err != nil {
		t.Fatal(err)
	}
	cv.AddEdge(e)

	g := newGrid(50, 6)
	drawDiagram(g, cv, interaction.Overlay{})

	top := g.runes(0)
	if !strings.Contains(top, " node-1 ") || !strings.Contains(top, " node-2 ") {
		t.Errorf("top row %q should carry the node ids", top)
	}
	row := g.runes(1)
	if !strings.Contains(row, "constant") || !strings.Contains(row, "inspect") {
		t.Errorf("row 1 %q should carry the node types", row)
	}
	if []rune(row)[17] != '●' || []rune(row)[30] != '●' {
		t.Errorf("connected ports should be filled: %q", row)
	}
	if !strings.Contains(row, "─▸") {
		t.Errorf("row 1 %q should carry the edge", row)
	}
}

func TestDrawDiagramOverlay(t *testing.T) {
	cv := canvas.New(canvas.DefaultConfig())
	g := newGrid(20, 10)
	drawDiagram(g, cv, interaction.Overlay{
		ShowBox: true,
		Box:     dataflow.Box{X: 1, Y: 1, Width: 5, Height: 3},
		Preview: interaction.Preview{Visible: true, From: dataflow.Point{X: 10, Y: 8}, To: dataflow.Point{X: 15, Y: 8}},
	})

	if got := []rune(g.runes(1))[1]; got != '╭' {
		t.Errorf("box corner = %c, want ╭", got)
	}
	row := []rune(g.runes(8))
	if row[10] != '∙' || row[15] != '→' {
		t.Errorf("preview row = %q", string(row))
	}
}

func TestArrowFor(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{-math.Pi / 2, '↑'},
		{3 * math.Pi / 2, '↑'},
		{math.Pi / 4, '↘'},
	}
	for _, tt := range tests {
		if got := arrowFor(tt.angle); got != tt.want {
			t.Errorf("arrowFor(%v) = %c, want %c", tt.angle, got, tt.want)
		}
	}
}
