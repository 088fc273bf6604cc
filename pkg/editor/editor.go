package editor

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/history"
	"github.com/matzehuels/visflow/pkg/nodetype"
	"github.com/matzehuels/visflow/pkg/propagate"
)

// Canvas is the rendering surface. The editor keeps it in step with the
// model and asks it for hit tests during box selection.
type Canvas interface {
	AddNode(n *dataflow.Node)
	RemoveNode(id dataflow.NodeID)
	AddEdge(e *dataflow.Edge)
	RemoveEdge(e *dataflow.Edge)
	NodesInBox(box dataflow.Box) []dataflow.NodeID
}

// Messenger surfaces advisory messages to the user. Messages never block.
type Messenger interface {
	Warn(msg string)
	Error(msg string)
}

// logMessenger writes advisories to a logger.
type logMessenger struct {
	logger *log.Logger
}

func (m logMessenger) Warn(msg string)  { m.logger.Warn(msg) }
func (m logMessenger) Error(msg string) { m.logger.Error(msg) }

// nopCanvas is used when no canvas is attached.
type nopCanvas struct{}

func (nopCanvas) AddNode(*dataflow.Node)                    {}
func (nopCanvas) RemoveNode(dataflow.NodeID)                {}
func (nopCanvas) AddEdge(*dataflow.Edge)                    {}
func (nopCanvas) RemoveEdge(*dataflow.Edge)                 {}
func (nopCanvas) NodesInBox(dataflow.Box) []dataflow.NodeID { return nil }

// Options configures an Editor. Registry is required.
type Options struct {
	Registry  *nodetype.Registry
	Canvas    Canvas    // nil means no rendering surface
	Messenger Messenger // nil logs advisories through Logger
	Logger    *log.Logger

	// Name of the initial diagram.
	Name string

	// HistoryLimit caps the undo stack. Zero means unlimited.
	HistoryLimit int
}

// Editor owns a diagram and every mutation of it.
type Editor struct {
	diagram  *dataflow.Diagram
	registry *nodetype.Registry
	canvas   Canvas
	engine   *propagate.Engine
	history  *history.Recorder
	msg      Messenger
	logger   *log.Logger
}

// New creates an editor with an empty diagram.
func New(opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	e := &Editor{
		diagram:  dataflow.New(opts.Name),
		registry: opts.Registry,
		canvas:   opts.Canvas,
		msg:      opts.Messenger,
		logger:   logger,
		history:  history.NewRecorder(opts.HistoryLimit, logger),
	}
	if e.registry == nil {
		e.registry = nodetype.NewRegistry()
	}
	if e.canvas == nil {
		e.canvas = nopCanvas{}
	}
	if e.msg == nil {
		e.msg = logMessenger{logger: logger}
	}
	e.engine = propagate.New(e.diagram, logger)
	return e
}

// Diagram returns the edited diagram. Callers must not mutate it directly.
func (e *Editor) Diagram() *dataflow.Diagram { return e.diagram }

// Registry returns the node-type registry.
func (e *Editor) Registry() *nodetype.Registry { return e.registry }

// History returns the undo/redo recorder.
func (e *Editor) History() *history.Recorder { return e.history }

// Engine returns the propagation engine.
func (e *Editor) Engine() *propagate.Engine { return e.engine }

// Propagate recomputes the given nodes and everything downstream.
func (e *Editor) Propagate(ids ...dataflow.NodeID) propagate.Result {
	res := e.engine.Propagate(ids...)
	if res.Cycle {
		e.msg.Warn("diagram contains a cycle")
	}
	return res
}

// PropagateAll recomputes every node.
func (e *Editor) PropagateAll() propagate.Result {
	return e.Propagate(e.diagram.NodeIDs()...)
}

func (e *Editor) propagatePort(ref dataflow.PortRef) propagate.Result {
	res := e.engine.PropagatePort(ref)
	if res.Cycle {
		e.msg.Warn("diagram contains a cycle")
	}
	return res
}

func (e *Editor) record(level history.Level, typ, icon string, op history.Op, format string, args ...any) {
	e.history.Record(history.Event{
		Level:   level,
		Type:    typ,
		Message: fmt.Sprintf(format, args...),
		Op:      op,
		Icon:    icon,
	})
}

// lookupError converts a model lookup error into a coded error.
func lookupError(err error, format string, args ...any) error {
	code := errors.ErrCodeInternal
	switch {
	case stderrors.Is(err, dataflow.ErrUnknownNode):
		code = errors.ErrCodeNodeNotFound
	case stderrors.Is(err, dataflow.ErrUnknownPort):
		code = errors.ErrCodePortNotFound
	case stderrors.Is(err, dataflow.ErrUnknownEdge):
		code = errors.ErrCodeEdgeNotFound
	}
	return errors.Wrap(code, err, format, args...)
}
