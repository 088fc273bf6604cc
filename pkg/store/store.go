// Package store keeps named diagram documents.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON file per document in a local directory (CLI)
//   - [RedisStore]: documents in redis, shared between processes
//
// Documents are addressed by diagram name. Names are validated with
// [errors.ValidateDiagramName] before they reach a file path or redis key.
// Each document also gets a random UUID on first save, which survives later
// saves under the same name.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
)

// Document is a stored diagram.
type Document struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Diagram   dataflow.DiagramSave `json:"diagram"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Summary describes a stored document without its content.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary returns the listing entry for d.
func (d *Document) Summary() Summary {
	return Summary{
		ID:        d.ID,
		Name:      d.Name,
		Nodes:     len(d.Diagram.Nodes),
		Edges:     len(d.Diagram.Edges),
		UpdatedAt: d.UpdatedAt,
	}
}

// Store is the interface for document storage backends.
type Store interface {
	// Save creates or replaces the document called name.
	Save(ctx context.Context, name string, diagram dataflow.DiagramSave) (*Document, error)

	// Load returns the document called name, or a DIAGRAM_NOT_FOUND error.
	Load(ctx context.Context, name string) (*Document, error)

	// List returns every document ordered by name.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes the document called name, or returns a
	// DIAGRAM_NOT_FOUND error.
	Delete(ctx context.Context, name string) error

	// Close releases the backend.
	Close() error
}

// revise builds the document to write for name, keeping the identity and
// creation time of prev when there is one.
func revise(prev *Document, name string, diagram dataflow.DiagramSave) *Document {
	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Diagram:   diagram,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev != nil {
		doc.ID = prev.ID
		doc.CreatedAt = prev.CreatedAt
	}
	doc.Diagram.DiagramName = name
	return doc
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeDiagramNotFound, "diagram %q not found", name)
}
