// Package editor mutates a dataflow diagram on behalf of the user.
//
// The [Editor] is the only component that changes a [dataflow.Diagram]. Each
// operation follows the same sequence: mutate the model, tell the canvas
// about the change, run one propagation pass over the affected nodes, then
// record a history event. Composite operations (removing a selection,
// inserting a node on an edge, loading a saved diagram) defer propagation
// and recording until the whole batch is done, so no observer ever sees a
// half-applied change.
//
// # Errors
//
// Failures follow three classes:
//   - Structural rejections (code NOT_CONNECTABLE) leave the graph unchanged
//     and are reported through the [Messenger] as warnings.
//   - Lookup failures (UNKNOWN_NODE_TYPE, NO_CONNECTABLE_PORT,
//     NODE_NOT_FOUND, ...) are reported as errors; within a batch the failing
//     step is skipped and the rest continues.
//   - INTERNAL_ERROR marks a broken invariant and indicates a bug.
//
// # Undo
//
// The editor implements [history.Applier]. Undo and redo apply op
// descriptors without recording them and propagate once afterwards over the
// union of the affected nodes.
package editor
