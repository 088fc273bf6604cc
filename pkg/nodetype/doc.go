// Package nodetype holds the registry of node types a diagram can contain.
//
// A node type is a tag (such as "constant" or "filter"), the port layout of
// its nodes, default state and a [dataflow.Processor] that computes outputs.
// The editor resolves tags through a [Registry] when it creates nodes, both
// interactively and while loading a saved diagram.
//
//	reg := nodetype.NewRegistry()
//	builtin.Register(reg)
//	typ, err := reg.Lookup("constant")
//	node := typ.New("node-1", nil)
package nodetype
