package builtin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matzehuels/visflow/pkg/dataflow"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"constant", "range", "add", "multiply", "filter", "sum", "inspect"} {
		if !reg.Has(name) {
			t.Errorf("registry missing %q", name)
		}
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := NewRegistry()
	if err := Register(reg); err == nil {
		t.Error("Register() on a populated registry should fail")
	}
}

func TestProcessors(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name    string
		typ     string
		state   dataflow.Metadata
		in      dataflow.Inputs
		want    dataflow.Outputs
		wantErr bool
	}{
		{
			name:  "constant",
			typ:   "constant",
			state: dataflow.Metadata{"value": 4.0},
			want:  dataflow.Outputs{"out": 4.0},
		},
		{
			name:  "constant from toml int",
			typ:   "constant",
			state: dataflow.Metadata{"value": int64(3)},
			want:  dataflow.Outputs{"out": 3.0},
		},
		{
			name:    "constant not a number",
			typ:     "constant",
			state:   dataflow.Metadata{"value": "x"},
			wantErr: true,
		},
		{
			name:  "range",
			typ:   "range",
			state: dataflow.Metadata{"start": 1.0, "end": 4.0, "step": 1.0},
			want:  dataflow.Outputs{"out": []any{1.0, 2.0, 3.0}},
		},
		{
			name:  "empty range",
			typ:   "range",
			state: dataflow.Metadata{"start": 5.0, "end": 1.0, "step": 1.0},
			want:  dataflow.Outputs{"out": []any{}},
		},
		{
			name:    "range zero step",
			typ:     "range",
			state:   dataflow.Metadata{"start": 0.0, "end": 1.0, "step": 0.0},
			wantErr: true,
		},
		{
			name: "add",
			typ:  "add",
			in:   dataflow.Inputs{"a": {2.0}, "b": {3.0}},
			want: dataflow.Outputs{"out": 5.0},
		},
		{
			name:    "add missing input",
			typ:     "add",
			in:      dataflow.Inputs{"a": {2.0}},
			wantErr: true,
		},
		{
			name: "multiply",
			typ:  "multiply",
			in:   dataflow.Inputs{"a": {2.0}, "b": {3.0}},
			want: dataflow.Outputs{"out": 6.0},
		},
		{
			name:  "filter",
			typ:   "filter",
			state: dataflow.Metadata{"threshold": 2.0},
			in:    dataflow.Inputs{"in": {[]any{1.0, 2.0, 3.0, 4.0}}},
			want:  dataflow.Outputs{"out": []any{3.0, 4.0}},
		},
		{
			name:    "filter not a list",
			typ:     "filter",
			state:   dataflow.Metadata{"threshold": 2.0},
			in:      dataflow.Inputs{"in": {1.0}},
			wantErr: true,
		},
		{
			name: "sum",
			typ:  "sum",
			in:   dataflow.Inputs{"in": {[]any{1.0, 2.0, 3.5}}},
			want: dataflow.Outputs{"out": 6.5},
		},
		{
			name: "inspect",
			typ:  "inspect",
			in:   dataflow.Inputs{"in": {"hello"}},
			want: dataflow.Outputs{"out": "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := reg.Lookup(tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			n := typ.New("n", tt.state)
			got, err := n.Processor.Process(n.State, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Process() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Process() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
