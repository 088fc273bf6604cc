package cache

import (
	"encoding/json"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

// Keyer generates cache keys.
type Keyer interface {
	// RenderKey is the key of a rendered artifact of the diagram whose
	// content hash is diagramHash.
	RenderKey(diagramHash string, opts RenderKeyOpts) string

	// DocumentKey is the key of a stored diagram document.
	DocumentKey(name string) string
}

// RenderKeyOpts are the render options that change the output.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey hashes the diagram hash together with the options.
func (DefaultKeyer) RenderKey(diagramHash string, opts RenderKeyOpts) string {
	return hashKey("render", diagramHash, opts)
}

// DocumentKey returns "doc:<name>".
func (DefaultKeyer) DocumentKey(name string) string {
	return "doc:" + name
}

// DiagramHash returns the content hash of a diagram document. Node state is
// encoded with sorted keys, so equal documents hash equally.
func DiagramHash(save dataflow.DiagramSave) string {
	data, err := json.Marshal(save)
	if err != nil {
		return ""
	}
	return Hash(data)
}
