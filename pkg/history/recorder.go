package history

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/observability"
)

// Applier applies ops to a diagram without recording them.
type Applier interface {
	Apply(op Op) error
}

// Recorder holds the undo and redo stacks.
type Recorder struct {
	undo   []Event
	redo   []Event
	limit  int
	logger *log.Logger
}

// NewRecorder creates an empty recorder. A limit above zero caps the undo
// stack, dropping the oldest events first. A nil logger uses log.Default().
func NewRecorder(limit int, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{limit: limit, logger: logger}
}

// Record pushes ev onto the undo stack and clears the redo stack.
func (r *Recorder) Record(ev Event) {
	r.undo = append(r.undo, ev)
	if r.limit > 0 && len(r.undo) > r.limit {
		r.undo = r.undo[len(r.undo)-r.limit:]
	}
	r.redo = nil
	r.logger.Debug("recorded", "type", ev.Type, "level", ev.Level, "message", ev.Message)
	observability.History().OnRecord(ev.Type, len(r.undo))
}

// Undo reverts the most recent event. If applying the inverse fails the
// event stays on the undo stack.
func (r *Recorder) Undo(a Applier) (Event, error) {
	if len(r.undo) == 0 {
		return Event{}, errors.New(errors.ErrCodeNothingToUndo, "nothing to undo")
	}
	ev := r.undo[len(r.undo)-1]
	if err := a.Apply(Invert(ev.Op)); err != nil {
		return ev, errors.Wrap(errors.ErrCodeInternal, err, "undo %s", ev.Type)
	}
	r.undo = r.undo[:len(r.undo)-1]
	r.redo = append(r.redo, ev)
	r.logger.Debug("undo", "type", ev.Type)
	observability.History().OnUndo(ev.Type)
	return ev, nil
}

// Redo re-applies the most recently undone event.
func (r *Recorder) Redo(a Applier) (Event, error) {
	if len(r.redo) == 0 {
		return Event{}, errors.New(errors.ErrCodeNothingToRedo, "nothing to redo")
	}
	ev := r.redo[len(r.redo)-1]
	if err := a.Apply(ev.Op); err != nil {
		return ev, errors.Wrap(errors.ErrCodeInternal, err, "redo %s", ev.Type)
	}
	r.redo = r.redo[:len(r.redo)-1]
	r.undo = append(r.undo, ev)
	r.logger.Debug("redo", "type", ev.Type)
	observability.History().OnRedo(ev.Type)
	return ev, nil
}

// CanUndo reports whether there is an event to undo.
func (r *Recorder) CanUndo() bool { return len(r.undo) > 0 }

// CanRedo reports whether there is an event to redo.
func (r *Recorder) CanRedo() bool { return len(r.redo) > 0 }

// UndoStack returns a copy of the undo stack, oldest first.
func (r *Recorder) UndoStack() []Event { return append([]Event(nil), r.undo...) }

// RedoStack returns a copy of the redo stack, oldest first.
func (r *Recorder) RedoStack() []Event { return append([]Event(nil), r.redo...) }

// Clear empties both stacks.
func (r *Recorder) Clear() {
	r.undo = nil
	r.redo = nil
}
