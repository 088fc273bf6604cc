package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/visflow/pkg/canvas"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/interaction"
)

// =============================================================================
// Cell Grid
// =============================================================================

// ink selects the style of a grid cell.
type ink int

const (
	inkBlank ink = iota
	inkEdge
	inkNode
	inkSelected
	inkHovered
	inkFailed
	inkPort
	inkText
	inkPreview
	inkBox
)

var inkStyles = map[ink]lipgloss.Style{
	inkBlank:    lipgloss.NewStyle(),
	inkEdge:     lipgloss.NewStyle().Foreground(colorGray),
	inkNode:     lipgloss.NewStyle().Foreground(colorWhite),
	inkSelected: lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	inkHovered:  lipgloss.NewStyle().Foreground(colorYellow),
	inkFailed:   lipgloss.NewStyle().Foreground(colorRed),
	inkPort:     lipgloss.NewStyle().Foreground(colorGreen),
	inkText:     lipgloss.NewStyle().Foreground(colorDim),
	inkPreview:  lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	inkBox:      lipgloss.NewStyle().Foreground(colorBlue),
}

type cell struct {
	r rune
	k ink
}

// grid is a fixed-size character surface. Writes outside it are dropped.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: max(w, 0), h: max(h, 0)}
	g.cells = make([]cell, g.w*g.h)
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
	return g
}

func (g *grid) set(x, y int, r rune, k ink) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = cell{r: r, k: k}
}

// text writes s from (x, y), cut to at most n cells.
func (g *grid) text(x, y int, s string, n int, k ink) {
	i := 0
	for _, r := range s {
		if i >= n {
			return
		}
		g.set(x+i, y, r, k)
		i++
	}
}

func (g *grid) hline(x0, x1, y int, k ink) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		g.set(x, y, '─', k)
	}
}

func (g *grid) vline(x, y0, y1 int, k ink) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		g.set(x, y, '│', k)
	}
}

// frame draws a rectangle outline covering columns x0..x1 and rows y0..y1.
func (g *grid) frame(x0, y0, x1, y1 int, k ink, dashed bool) {
	h, v := '─', '│'
	if dashed {
		h, v = '╌', '╎'
	}
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, h, k)
		g.set(x, y1, h, k)
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, v, k)
		g.set(x1, y, v, k)
	}
	g.set(x0, y0, '╭', k)
	g.set(x1, y0, '╮', k)
	g.set(x0, y1, '╰', k)
	g.set(x1, y1, '╯', k)
}

// line plots a straight segment with Bresenham's algorithm.
func (g *grid) line(x0, y0, x1, y1 int, r rune, k ink) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for {
		g.set(x0, y0, r, k)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid, styling runs of equal ink together.
func (g *grid) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		row := g.cells[y*g.w : (y+1)*g.w]
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].k == row[i].k {
				run.WriteRune(row[j].r)
				j++
			}
			if row[i].k == inkBlank {
				b.WriteString(run.String())
			} else {
				b.WriteString(inkStyles[row[i].k].Render(run.String()))
			}
			i = j
		}
		if y < g.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// =============================================================================
// Diagram Drawing
// =============================================================================

// drawDiagram paints edges, then nodes back to front, then the overlay.
func drawDiagram(g *grid, cv *canvas.Canvas, ov interaction.Overlay) {
	for _, e := range cv.Edges() {
		a, okA := cv.PortCenter(e.Source)
		b, okB := cv.PortCenter(e.Target)
		if okA && okB {
			ax, ay := cell2(a)
			bx, by := cell2(b)
			drawEdge(g, ax, ay, bx, by)
		}
	}
	for _, n := range cv.Nodes() {
		drawNode(g, cv, n)
	}
	if ov.ShowBox {
		x0, y0 := cell2(dataflow.Point{X: ov.Box.X, Y: ov.Box.Y})
		x1, y1 := cell2(dataflow.Point{X: ov.Box.X + ov.Box.Width, Y: ov.Box.Y + ov.Box.Height})
		if x1 > x0 && y1 > y0 {
			g.frame(x0, y0, x1, y1, inkBox, true)
		}
	}
	if ov.Preview.Visible {
		fx, fy := cell2(ov.Preview.From)
		tx, ty := cell2(ov.Preview.To)
		g.line(fx, fy, tx, ty, '∙', inkPreview)
		g.set(tx, ty, arrowFor(ov.Preview.Angle), inkPreview)
	}
}

// drawEdge routes an edge as a horizontal-vertical-horizontal path from the
// output port at a to the input port at b.
func drawEdge(g *grid, ax, ay, bx, by int) {
	mx := (ax + bx) / 2
	g.hline(ax+1, mx, ay, inkEdge)
	g.hline(mx, bx-1, by, inkEdge)
	if ay != by {
		g.vline(mx, ay, by, inkEdge)
		if by > ay {
			g.set(mx, ay, '╮', inkEdge)
			g.set(mx, by, '╰', inkEdge)
		} else {
			g.set(mx, ay, '╯', inkEdge)
			g.set(mx, by, '╭', inkEdge)
		}
	}
	g.set(bx-1, by, '▸', inkEdge)
}

func drawNode(g *grid, cv *canvas.Canvas, n *dataflow.Node) {
	box := cv.NodeBox(n)
	x0, y0 := cell2(dataflow.Point{X: box.X, Y: box.Y})
	x1, y1 := x0+int(box.Width)-1, y0+int(box.Height)-1

	k := inkNode
	switch {
	case n.Err != nil:
		k = inkFailed
	case n.Selected:
		k = inkSelected
	case n.Hovered:
		k = inkHovered
	}

	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			g.set(x, y, ' ', inkBlank)
		}
	}
	g.frame(x0, y0, x1, y1, k, false)

	inner := x1 - x0 - 3
	g.text(x0+2, y0, " "+string(n.ID)+" ", inner, k)
	g.text(x0+2, y0+1, n.Type, inner, inkText)
	if len(n.Outputs) > 0 && y1-y0 > 2 {
		g.text(x0+2, y1-1, "= "+formatValue(n.Outputs[0].Value), inner, inkText)
	}

	for _, ports := range [][]*dataflow.Port{n.Inputs, n.Outputs} {
		for _, p := range ports {
			c, ok := cv.PortCenter(p.Ref())
			if !ok {
				continue
			}
			px, py := cell2(c)
			glyph := '○'
			if p.Connected() {
				glyph = '●'
			}
			g.set(px, py, glyph, inkPort)
		}
	}
}

// arrowFor picks the arrow glyph closest to angle (radians, y down).
func arrowFor(angle float64) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	i := int(math.Round(angle / (math.Pi / 4)))
	return arrows[((i%8)+8)%8]
}

func cell2(p dataflow.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
