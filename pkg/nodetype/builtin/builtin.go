// Package builtin provides the node types that ship with visflow.
//
// The built-in set is small but enough to run real pipelines: sources
// (constant, range), arithmetic (add, multiply), list processing (filter,
// sum) and a pass-through inspect node for looking at intermediate values.
package builtin

import (
	"fmt"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/nodetype"
)

// Port type tags used by the built-in types.
const (
	Number = "number"
	List   = "list"
)

// Types returns the built-in node types.
func Types() []nodetype.Type {
	return []nodetype.Type{
		{
			Name:              "constant",
			Description:       "Emits the number stored in its value option",
			Outputs:           []dataflow.PortSpec{{ID: "out", Type: Number}},
			PropagationSource: true,
			Defaults:          dataflow.Metadata{"value": 0.0},
			Processor:         dataflow.ProcessorFunc(constant),
		},
		{
			Name:              "range",
			Description:       "Emits the list of numbers from start up to end",
			Outputs:           []dataflow.PortSpec{{ID: "out", Type: List}},
			PropagationSource: true,
			Defaults:          dataflow.Metadata{"start": 0.0, "end": 10.0, "step": 1.0},
			Processor:         dataflow.ProcessorFunc(numberRange),
		},
		{
			Name:        "add",
			Description: "Adds two numbers",
			Inputs:      binaryInputs,
			Outputs:     []dataflow.PortSpec{{ID: "out", Type: Number}},
			Processor:   arithmetic(func(a, b float64) float64 { return a + b }),
		},
		{
			Name:        "multiply",
			Description: "Multiplies two numbers",
			Inputs:      binaryInputs,
			Outputs:     []dataflow.PortSpec{{ID: "out", Type: Number}},
			Processor:   arithmetic(func(a, b float64) float64 { return a * b }),
		},
		{
			Name:        "filter",
			Description: "Keeps list items greater than threshold",
			Inputs:      []dataflow.PortSpec{{ID: "in", Type: List, Required: true}},
			Outputs:     []dataflow.PortSpec{{ID: "out", Type: List}},
			Defaults:    dataflow.Metadata{"threshold": 0.0},
			Processor:   dataflow.ProcessorFunc(filter),
		},
		{
			Name:        "sum",
			Description: "Sums a list of numbers",
			Inputs:      []dataflow.PortSpec{{ID: "in", Type: List, Required: true}},
			Outputs:     []dataflow.PortSpec{{ID: "out", Type: Number}},
			Processor:   dataflow.ProcessorFunc(sum),
		},
		{
			Name:        "inspect",
			Description: "Passes its input through unchanged",
			Inputs:      []dataflow.PortSpec{{ID: "in", Type: dataflow.AnyType, Required: true}},
			Outputs:     []dataflow.PortSpec{{ID: "out", Type: dataflow.AnyType}},
			Processor:   dataflow.ProcessorFunc(inspect),
		},
	}
}

// Register adds every built-in type to reg.
func Register(reg *nodetype.Registry) error {
	for _, t := range Types() {
		if err := reg.Register(t); err != nil {
			return fmt.Errorf("register %s: %w", t.Name, err)
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in types.
func NewRegistry() *nodetype.Registry {
	reg := nodetype.NewRegistry()
	for _, t := range Types() {
		reg.MustRegister(t)
	}
	return reg
}

var binaryInputs = []dataflow.PortSpec{
	{ID: "a", Type: Number, Required: true},
	{ID: "b", Type: Number, Required: true},
}
