package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
)

// WriteJSON encodes a diagram as indented JSON and writes it to w.
func WriteJSON(save dataflow.DiagramSave, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(save); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteTOML encodes a diagram as TOML and writes it to w. Nil state values
// have no TOML form and are left out.
func WriteTOML(save dataflow.DiagramSave, w io.Writer) error {
	doc := tomlDiagram{DiagramName: save.DiagramName}
	for _, n := range save.Nodes {
		doc.Nodes = append(doc.Nodes, nodeTable(n))
	}
	for _, e := range save.Edges {
		doc.Edges = append(doc.Edges, tomlEdge(e))
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

func nodeTable(n dataflow.NodeSave) map[string]any {
	m := make(map[string]any, len(n.State)+5)
	for k, v := range n.State {
		if v != nil {
			m[k] = v
		}
	}
	m["id"] = string(n.ID)
	m["type"] = n.Type
	m["layer"] = n.Layer
	m["x"] = n.X
	m["y"] = n.Y
	return m
}

// Export writes a diagram to path in the format its extension names.
func Export(save dataflow.DiagramSave, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()

	if format == FormatTOML {
		return WriteTOML(save, f)
	}
	return WriteJSON(save, f)
}
