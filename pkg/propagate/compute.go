package propagate

import (
	"fmt"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

type outcome int

const (
	outcomeOK outcome = iota
	outcomeFailed
	outcomeSkipped
)

// compute recomputes n from the current values on its input edges.
func (e *Engine) compute(n *dataflow.Node) outcome {
	in, ok := e.gather(n)
	if !ok {
		clearOutputs(n)
		n.Err = nil
		return outcomeSkipped
	}
	if n.Processor == nil {
		clearOutputs(n)
		n.Err = nil
		return outcomeOK
	}

	out, err := process(n, in)
	if err != nil {
		clearOutputs(n)
		n.Err = err
		return outcomeFailed
	}
	for _, p := range n.Outputs {
		p.Value = out[p.ID]
	}
	n.Err = nil
	return outcomeOK
}

// gather collects the values arriving on n's inputs. It reports false when a
// required input has no edge or only empty values.
func (e *Engine) gather(n *dataflow.Node) (dataflow.Inputs, bool) {
	in := make(dataflow.Inputs, len(n.Inputs))
	for _, p := range n.Inputs {
		var values []dataflow.Value
		for _, edge := range e.diagram.PortEdges(p.Ref()) {
			src, err := e.diagram.Port(edge.Source)
			if err != nil || src.Value == nil {
				continue
			}
			values = append(values, src.Value)
		}
		if len(values) == 0 {
			if p.Required {
				return nil, false
			}
			continue
		}
		in[p.ID] = values
	}
	return in, true
}

// process calls the node's processor on a copy of its state and turns a
// panic into an error so one broken node cannot abort the pass.
func process(n *dataflow.Node, in dataflow.Inputs) (out dataflow.Outputs, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processor panicked: %v", r)
		}
	}()
	return n.Processor.Process(n.State.Clone(), in)
}

func clearOutputs(n *dataflow.Node) {
	for _, p := range n.Outputs {
		p.Value = nil
	}
}
