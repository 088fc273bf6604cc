package editor_test

import (
	"fmt"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/editor"
	"github.com/matzehuels/visflow/pkg/nodetype/builtin"
)

func ExampleEditor_CreateEdge() {
	// Wire two constants into an adder: 3 + 4
	ed := editor.New(editor.Options{Registry: builtin.NewRegistry(), Name: "sum"})
	a, _ := ed.CreateNode(editor.NodeOptions{Type: "constant", State: dataflow.Metadata{"value": 3.0}})
	b, _ := ed.CreateNode(editor.NodeOptions{Type: "constant", State: dataflow.Metadata{"value": 4.0}})
	add, _ := ed.CreateNode(editor.NodeOptions{Type: "add"})

	out := func(id dataflow.NodeID) dataflow.PortRef { return dataflow.PortRef{Node: id, Port: "out"} }
	_, _ = ed.CreateEdge(out(a.ID), dataflow.PortRef{Node: add.ID, Port: "a"}, editor.EdgeOptions{Propagate: true})
	_, _ = ed.CreateEdge(out(b.ID), dataflow.PortRef{Node: add.ID, Port: "b"}, editor.EdgeOptions{Propagate: true})

	v, _ := ed.NodeValue(out(add.ID))
	fmt.Println("Edges:", ed.Diagram().EdgeCount())
	fmt.Println("Sum:", v)
	// Output:
	// Edges: 2
	// Sum: 7
}

func ExampleEditor_Undo() {
	ed := editor.New(editor.Options{Registry: builtin.NewRegistry()})
	n, _ := ed.CreateNode(editor.NodeOptions{Type: "constant", State: dataflow.Metadata{"value": 1.0}})
	_ = ed.SetNodeOption(n.ID, "value", 5.0)

	v, _ := ed.NodeValue(dataflow.PortRef{Node: n.ID, Port: "out"})
	fmt.Println("After set:", v)

	_, _ = ed.Undo()
	v, _ = ed.NodeValue(dataflow.PortRef{Node: n.ID, Port: "out"})
	fmt.Println("After undo:", v)
	// Output:
	// After set: 5
	// After undo: 1
}
