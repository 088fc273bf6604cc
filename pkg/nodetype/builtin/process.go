package builtin

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

// maxRangeLen bounds the lists a range node will build.
const maxRangeLen = 1 << 20

func constant(state dataflow.Metadata, _ dataflow.Inputs) (dataflow.Outputs, error) {
	v, err := toNumber(state["value"])
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	return dataflow.Outputs{"out": v}, nil
}

func numberRange(state dataflow.Metadata, _ dataflow.Inputs) (dataflow.Outputs, error) {
	start, err := toNumber(state["start"])
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := toNumber(state["end"])
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	step, err := toNumber(state["step"])
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	if (end-start)/step > maxRangeLen {
		return nil, fmt.Errorf("range too long (max %d items)", maxRangeLen)
	}

	out := make([]any, 0, max(0, int((end-start)/step)+1))
	for x := start; x < end; x += step {
		out = append(out, x)
	}
	return dataflow.Outputs{"out": out}, nil
}

func arithmetic(op func(a, b float64) float64) dataflow.Processor {
	return dataflow.ProcessorFunc(func(_ dataflow.Metadata, in dataflow.Inputs) (dataflow.Outputs, error) {
		a, err := toNumber(in.First("a"))
		if err != nil {
			return nil, fmt.Errorf("a: %w", err)
		}
		b, err := toNumber(in.First("b"))
		if err != nil {
			return nil, fmt.Errorf("b: %w", err)
		}
		return dataflow.Outputs{"out": op(a, b)}, nil
	})
}

func filter(state dataflow.Metadata, in dataflow.Inputs) (dataflow.Outputs, error) {
	threshold, err := toNumber(state["threshold"])
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	items, err := toList(in.First("in"))
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		x, err := toNumber(item)
		if err != nil {
			return nil, err
		}
		if x > threshold {
			out = append(out, x)
		}
	}
	return dataflow.Outputs{"out": out}, nil
}

func sum(_ dataflow.Metadata, in dataflow.Inputs) (dataflow.Outputs, error) {
	items, err := toList(in.First("in"))
	if err != nil {
		return nil, err
	}
	var total float64
	for _, item := range items {
		x, err := toNumber(item)
		if err != nil {
			return nil, err
		}
		total += x
	}
	return dataflow.Outputs{"out": total}, nil
}

func inspect(_ dataflow.Metadata, in dataflow.Inputs) (dataflow.Outputs, error) {
	return dataflow.Outputs{"out": in.First("in")}, nil
}

// toNumber converts decoded JSON and TOML scalars to float64.
func toNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case nil:
		return 0, fmt.Errorf("missing number")
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func toList(v any) ([]any, error) {
	switch x := v.(type) {
	case []any:
		return x, nil
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = f
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("missing list")
	default:
		return nil, fmt.Errorf("not a list: %T", v)
	}
}
