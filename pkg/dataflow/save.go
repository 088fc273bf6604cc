package dataflow

import (
	"encoding/json"
	"fmt"
)

// NodeSave is the persisted record of a node. Type-specific state is
// flattened into the record next to the common fields.
type NodeSave struct {
	ID    NodeID
	Type  string
	Layer int
	X, Y  float64
	State Metadata
}

// EdgeSave is the persisted record of an edge.
type EdgeSave struct {
	SourceNodeID NodeID `json:"sourceNodeId"`
	SourcePortID PortID `json:"sourcePortId"`
	TargetNodeID NodeID `json:"targetNodeId"`
	TargetPortID PortID `json:"targetPortId"`
}

// Source returns the source port address.
func (e EdgeSave) Source() PortRef { return PortRef{Node: e.SourceNodeID, Port: e.SourcePortID} }

// Target returns the target port address.
func (e EdgeSave) Target() PortRef { return PortRef{Node: e.TargetNodeID, Port: e.TargetPortID} }

// DiagramSave is the persisted form of a whole diagram.
type DiagramSave struct {
	DiagramName string     `json:"diagramName"`
	Nodes       []NodeSave `json:"nodes"`
	Edges       []EdgeSave `json:"edges"`
}

// reserved keys of a node record; state may not shadow them.
var reservedNodeKeys = []string{"id", "type", "layer", "x", "y"}

// MarshalJSON writes the common fields and the flattened state.
func (s NodeSave) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.State)+len(reservedNodeKeys))
	for k, v := range s.State {
		m[k] = v
	}
	m["id"] = s.ID
	m["type"] = s.Type
	m["layer"] = s.Layer
	m["x"] = s.X
	m["y"] = s.Y
	return json.Marshal(m)
}

// UnmarshalJSON reads the common fields; every other key becomes state.
func (s *NodeSave) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out NodeSave
	fields := map[string]any{"id": &out.ID, "type": &out.Type, "layer": &out.Layer, "x": &out.X, "y": &out.Y}
	for key, dst := range fields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("node field %q: %w", key, err)
		}
		delete(raw, key)
	}
	if out.ID == "" {
		return fmt.Errorf("node record: %w", ErrInvalidNodeID)
	}
	out.State = make(Metadata, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("node %s field %q: %w", out.ID, k, err)
		}
		out.State[k] = val
	}
	*s = out
	return nil
}

// Save returns the persisted record of n.
func (n *Node) Save() NodeSave {
	return NodeSave{
		ID:    n.ID,
		Type:  n.Type,
		Layer: n.Layer,
		X:     n.Position.X,
		Y:     n.Position.Y,
		State: n.State.Clone(),
	}
}

// Save returns the persisted record of e.
func (e *Edge) Save() EdgeSave {
	return EdgeSave{
		SourceNodeID: e.Source.Node,
		SourcePortID: e.Source.Port,
		TargetNodeID: e.Target.Node,
		TargetPortID: e.Target.Port,
	}
}
