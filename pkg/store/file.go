package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
)

// FileStore keeps each document as <name>.json in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store in baseDir, creating the directory if
// needed. If baseDir is empty, defaults to ~/.config/visflow/diagrams/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "visflow", "diagrams")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create diagram dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory documents are kept in.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) docPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Save creates or replaces a document.
func (s *FileStore) Save(ctx context.Context, name string, diagram dataflow.DiagramSave) (*Document, error) {
	if err := errors.ValidateDiagramName(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.read(name)
	if err != nil && !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		return nil, err
	}
	doc := revise(prev, name, diagram)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", name)
	}
	tmp := s.docPath(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", name)
	}
	if err := os.Rename(tmp, s.docPath(name)); err != nil {
		_ = os.Remove(tmp)
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", name)
	}
	return doc, nil
}

// Load reads a document.
func (s *FileStore) Load(ctx context.Context, name string) (*Document, error) {
	if err := errors.ValidateDiagramName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(name)
}

func (s *FileStore) read(name string) (*Document, error) {
	data, err := os.ReadFile(s.docPath(name))
	if os.IsNotExist(err) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", name)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", name)
	}
	return &doc, nil
}

// List returns every readable document ordered by name. Unreadable files
// are skipped.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read diagram dir")
	}
	out := []Summary{}
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		doc, err := s.read(name)
		if err != nil {
			continue
		}
		out = append(out, doc.Summary())
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// Delete removes a document.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDiagramName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.docPath(name))
	if os.IsNotExist(err) {
		return notFound(name)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "delete %s", name)
	}
	return nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
