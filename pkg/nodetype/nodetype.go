package nodetype

import (
	"slices"
	"sort"
	"sync"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
)

// Type describes a kind of node.
type Type struct {
	Name        string
	Description string
	Inputs      []dataflow.PortSpec
	Outputs     []dataflow.PortSpec

	// PropagationSource marks types that compute without upstream input.
	PropagationSource bool

	// Defaults seeds the state of new nodes. Saved state overrides it key
	// by key.
	Defaults dataflow.Metadata

	Processor dataflow.Processor
}

// New instantiates a node of this type. State from a saved record, if any,
// is layered over the type defaults.
func (t Type) New(id dataflow.NodeID, state dataflow.Metadata) *dataflow.Node {
	n := dataflow.NewNode(id, t.Name, t.Inputs, t.Outputs)
	n.State = t.Defaults.Clone()
	for k, v := range state {
		n.State[k] = v
	}
	n.PropagationSource = t.PropagationSource
	n.Processor = t.Processor
	return n
}

// Registry maps type tags to node types. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Register adds t to the registry. The tag must be valid and unused.
func (r *Registry) Register(t Type) error {
	if err := errors.ValidateNodeType(t.Name); err != nil {
		return err
	}
	if err := checkPorts(t); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.Name]; exists {
		return errors.New(errors.ErrCodeDuplicateNodeType, "node type %q already registered", t.Name)
	}
	r.types[t.Name] = t
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level registration of built-in types.
func (r *Registry) MustRegister(t Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Lookup returns the type registered under tag.
func (r *Registry) Lookup(tag string) (Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[tag]
	if !ok {
		return Type{}, errors.New(errors.ErrCodeUnknownNodeType, "unknown node type %q", tag)
	}
	return t, nil
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[tag]
	return ok
}

// Types returns all registered types sorted by name.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func checkPorts(t Type) error {
	var seen []dataflow.PortID
	for _, p := range slices.Concat(t.Inputs, t.Outputs) {
		if p.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node type %q: empty port id", t.Name)
		}
		if slices.Contains(seen, p.ID) {
			return errors.New(errors.ErrCodeInvalidInput, "node type %q: duplicate port %q", t.Name, p.ID)
		}
		seen = append(seen, p.ID)
	}
	return nil
}
