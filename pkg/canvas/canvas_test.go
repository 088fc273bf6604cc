package canvas

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/editor"
)

var _ editor.Canvas = (*Canvas)(nil)

func testNode(id dataflow.NodeID, x, y float64, layer int) *dataflow.Node {
	n := dataflow.NewNode(id, "test",
		[]dataflow.PortSpec{{ID: "a", Type: "number"}, {ID: "b", Type: "number"}},
		[]dataflow.PortSpec{{ID: "out", Type: "number"}},
	)
	n.Position = dataflow.Point{X: x, Y: y}
	n.Layer = layer
	return n
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Config{NodeWidth: 30})
	got := c.Config()
	if got.NodeWidth != 30 {
		t.Errorf("NodeWidth = %v, want 30", got.NodeWidth)
	}
	if got.NodeHeight != DefaultConfig().NodeHeight || got.PortRadius != DefaultConfig().PortRadius {
		t.Errorf("zero fields should take defaults, got %+v", got)
	}
}

func TestNodeBoxGrowsWithPorts(t *testing.T) {
	c := New(DefaultConfig())
	small := testNode("s", 0, 0, 1)
	if got := c.NodeBox(small).Height; got != 4 {
		t.Errorf("Height = %v, want 4", got)
	}

	var specs []dataflow.PortSpec
	for _, id := range []dataflow.PortID{"p1", "p2", "p3", "p4", "p5"} {
		specs = append(specs, dataflow.PortSpec{ID: id})
	}
	tall := dataflow.NewNode("t", "test", specs, nil)
	if got := c.NodeBox(tall).Height; got != 6 {
		t.Errorf("Height = %v, want 6 for five ports", got)
	}
}

func TestNodesInBox(t *testing.T) {
	c := New(DefaultConfig())
	c.AddNode(testNode("near", 20, 20, 1))
	c.AddNode(testNode("far", 100, 100, 2))
	c.AddNode(testNode("edge", 45, 48, 3))

	got := c.NodesInBox(dataflow.BoxFrom(dataflow.Point{X: 10, Y: 10}, dataflow.Point{X: 50, Y: 50}))
	if diff := cmp.Diff([]dataflow.NodeID{"near", "edge"}, got); diff != "" {
		t.Errorf("NodesInBox mismatch (-want +got):\n%s", diff)
	}

	c.RemoveNode("near")
	got = c.NodesInBox(dataflow.BoxFrom(dataflow.Point{X: 10, Y: 10}, dataflow.Point{X: 50, Y: 50}))
	if diff := cmp.Diff([]dataflow.NodeID{"edge"}, got); diff != "" {
		t.Errorf("NodesInBox after removal (-want +got):\n%s", diff)
	}
}

func TestPortCenter(t *testing.T) {
	c := New(DefaultConfig())
	c.AddNode(testNode("n", 10, 5, 1))

	tests := []struct {
		port dataflow.PortID
		want dataflow.Point
		ok   bool
	}{
		{"a", dataflow.Point{X: 10, Y: 6}, true},
		{"b", dataflow.Point{X: 10, Y: 7}, true},
		{"out", dataflow.Point{X: 27, Y: 6}, true},
		{"nope", dataflow.Point{}, false},
	}
	for _, tt := range tests {
		got, ok := c.PortCenter(dataflow.PortRef{Node: "n", Port: tt.port})
		if got != tt.want || ok != tt.ok {
			t.Errorf("PortCenter(%s) = %v, %v, want %v, %v", tt.port, got, ok, tt.want, tt.ok)
		}
	}
	if _, ok := c.PortCenter(dataflow.PortRef{Node: "ghost", Port: "a"}); ok {
		t.Error("PortCenter on a missing node should fail")
	}
}

func TestHitTest(t *testing.T) {
	c := New(DefaultConfig())
	c.AddNode(testNode("back", 0, 0, 1))
	c.AddNode(testNode("front", 10, 0, 2))

	tests := []struct {
		name string
		at   dataflow.Point
		want Hit
	}{
		{"input port", dataflow.Point{X: 0, Y: 1}, Hit{Node: "back", Port: "a"}},
		{"near input port", dataflow.Point{X: -0.5, Y: 2}, Hit{Node: "back", Port: "b"}},
		{"body", dataflow.Point{X: 5, Y: 3}, Hit{Node: "back"}},
		{"overlap picks front", dataflow.Point{X: 14, Y: 3}, Hit{Node: "front"}},
		{"output port", dataflow.Point{X: 27, Y: 1}, Hit{Node: "front", Port: "out"}},
		{"background", dataflow.Point{X: 50, Y: 50}, Hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HitTest(tt.at); got != tt.want {
				t.Errorf("HitTest(%v) = %+v, want %+v", tt.at, got, tt.want)
			}
		})
	}
}

func TestHitKinds(t *testing.T) {
	if !(Hit{}).IsBackground() {
		t.Error("zero Hit should be background")
	}
	h := Hit{Node: "n", Port: "p"}
	if h.IsBackground() || !h.IsPort() || h.PortRef() != (dataflow.PortRef{Node: "n", Port: "p"}) {
		t.Errorf("port hit = %+v", h)
	}
}

func TestNodesOrderedByLayer(t *testing.T) {
	c := New(DefaultConfig())
	c.AddNode(testNode("x", 0, 0, 3))
	c.AddNode(testNode("y", 0, 0, 1))
	c.AddNode(testNode("z", 0, 0, 2))

	var got []dataflow.NodeID
	for _, n := range c.Nodes() {
		got = append(got, n.ID)
	}
	if diff := cmp.Diff([]dataflow.NodeID{"y", "z", "x"}, got); diff != "" {
		t.Errorf("Nodes() order (-want +got):\n%s", diff)
	}
}

func TestEdges(t *testing.T) {
	c := New(DefaultConfig())
	e2 := &dataflow.Edge{ID: "edge-2"}
	e10 := &dataflow.Edge{ID: "edge-10"}
	c.AddEdge(e10)
	c.AddEdge(e2)

	got := c.Edges()
	if len(got) != 2 || got[0] != e2 || got[1] != e10 {
		t.Errorf("Edges() = %v, want edge-2 before edge-10", got)
	}
	c.RemoveEdge(e2)
	if len(c.Edges()) != 1 {
		t.Error("RemoveEdge should drop the edge")
	}
}
