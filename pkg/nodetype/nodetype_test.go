package nodetype

import (
	"testing"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
)

func passthrough() dataflow.Processor {
	return dataflow.ProcessorFunc(func(_ dataflow.Metadata, in dataflow.Inputs) (dataflow.Outputs, error) {
		return dataflow.Outputs{"out": in.First("in")}, nil
	})
}

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	typ := Type{
		Name:      "relay",
		Inputs:    []dataflow.PortSpec{{ID: "in", Type: dataflow.AnyType}},
		Outputs:   []dataflow.PortSpec{{ID: "out", Type: dataflow.AnyType}},
		Processor: passthrough(),
	}
	if err := reg.Register(typ); err != nil {
		t.Fatalf("Register() = %v", err)
	}

	got, err := reg.Lookup("relay")
	if err != nil {
		t.Fatalf("Lookup() = %v", err)
	}
	if got.Name != "relay" {
		t.Errorf("Name = %q, want relay", got.Name)
	}

	if err := reg.Register(typ); !errors.Is(err, errors.ErrCodeDuplicateNodeType) {
		t.Errorf("Register(dup) = %v, want DUPLICATE_NODE_TYPE", err)
	}
	if _, err := reg.Lookup("nope"); !errors.Is(err, errors.ErrCodeUnknownNodeType) {
		t.Errorf("Lookup(nope) = %v, want UNKNOWN_NODE_TYPE", err)
	}
}

func TestRegisterRejectsBadTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
	}{
		{"bad tag", Type{Name: "Bad Tag"}},
		{"empty port", Type{Name: "x", Inputs: []dataflow.PortSpec{{ID: ""}}}},
		{"duplicate port", Type{
			Name:    "x",
			Inputs:  []dataflow.PortSpec{{ID: "p"}},
			Outputs: []dataflow.PortSpec{{ID: "p"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewRegistry().Register(tt.typ); err == nil {
				t.Error("Register() should fail")
			}
		})
	}
}

func TestTypesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		reg.MustRegister(Type{Name: name})
	}
	types := reg.Types()
	if len(types) != 3 || types[0].Name != "alpha" || types[2].Name != "zeta" {
		t.Errorf("Types() = %v, want sorted by name", types)
	}
}

func TestNewLayersStateOverDefaults(t *testing.T) {
	typ := Type{
		Name:              "src",
		Outputs:           []dataflow.PortSpec{{ID: "out", Type: "number"}},
		PropagationSource: true,
		Defaults:          dataflow.Metadata{"value": 1.0, "label": "one"},
		Processor:         passthrough(),
	}

	n := typ.New("node-1", dataflow.Metadata{"value": 2.0})
	if n.State["value"] != 2.0 || n.State["label"] != "one" {
		t.Errorf("State = %v, want saved value over defaults", n.State)
	}
	if !n.PropagationSource || n.Processor == nil {
		t.Error("New should carry PropagationSource and Processor")
	}

	n.State["label"] = "changed"
	if typ.Defaults["label"] != "one" {
		t.Error("node state must not alias type defaults")
	}
}
