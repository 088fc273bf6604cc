package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
)

type tomlDiagram struct {
	DiagramName string           `toml:"diagramName"`
	Nodes       []map[string]any `toml:"nodes"`
	Edges       []tomlEdge       `toml:"edges"`
}

type tomlEdge struct {
	SourceNodeID dataflow.NodeID `toml:"sourceNodeId"`
	SourcePortID dataflow.PortID `toml:"sourcePortId"`
	TargetNodeID dataflow.NodeID `toml:"targetNodeId"`
	TargetPortID dataflow.PortID `toml:"targetPortId"`
}

// ReadJSON decodes a JSON diagram document from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (dataflow.DiagramSave, error) {
	var save dataflow.DiagramSave
	if err := json.NewDecoder(r).Decode(&save); err != nil {
		return dataflow.DiagramSave{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return normalize(save), nil
}

// ReadTOML decodes a TOML diagram document from r. ReadTOML does not close r.
func ReadTOML(r io.Reader) (dataflow.DiagramSave, error) {
	var doc tomlDiagram
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return dataflow.DiagramSave{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}

	save := dataflow.DiagramSave{DiagramName: doc.DiagramName}
	for i, table := range doc.Nodes {
		n, err := nodeFromTable(table)
		if err != nil {
			return dataflow.DiagramSave{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %d", i)
		}
		save.Nodes = append(save.Nodes, n)
	}
	for _, e := range doc.Edges {
		save.Edges = append(save.Edges, dataflow.EdgeSave(e))
	}
	return normalize(save), nil
}

func nodeFromTable(m map[string]any) (dataflow.NodeSave, error) {
	var n dataflow.NodeSave
	id, ok := m["id"].(string)
	if !ok || id == "" {
		return n, fmt.Errorf("missing id")
	}
	n.ID = dataflow.NodeID(id)
	if n.Type, ok = m["type"].(string); !ok {
		return n, fmt.Errorf("node %s: missing type", id)
	}

	var err error
	if n.Layer, err = intField(m, "layer"); err != nil {
		return n, fmt.Errorf("node %s: %w", id, err)
	}
	if n.X, err = floatField(m, "x"); err != nil {
		return n, fmt.Errorf("node %s: %w", id, err)
	}
	if n.Y, err = floatField(m, "y"); err != nil {
		return n, fmt.Errorf("node %s: %w", id, err)
	}

	n.State = make(dataflow.Metadata, len(m))
	for k, v := range m {
		switch k {
		case "id", "type", "layer", "x", "y":
		default:
			n.State[k] = v
		}
	}
	return n, nil
}

func intField(m map[string]any, key string) (int, error) {
	switch v := m[key].(type) {
	case nil:
		return 0, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: want integer, got %T", key, v)
	}
}

func floatField(m map[string]any, key string) (float64, error) {
	switch v := m[key].(type) {
	case nil:
		return 0, nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%s: want number, got %T", key, v)
	}
}

// normalize replaces nil lists with empty ones so documents without edges
// compare equal however they were decoded.
func normalize(save dataflow.DiagramSave) dataflow.DiagramSave {
	if save.Nodes == nil {
		save.Nodes = []dataflow.NodeSave{}
	}
	if save.Edges == nil {
		save.Edges = []dataflow.EdgeSave{}
	}
	return save
}

// Import reads the document at path in the format its extension names.
func Import(path string) (dataflow.DiagramSave, error) {
	format, err := FormatFor(path)
	if err != nil {
		return dataflow.DiagramSave{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return dataflow.DiagramSave{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	if format == FormatTOML {
		return ReadTOML(f)
	}
	return ReadJSON(f)
}
