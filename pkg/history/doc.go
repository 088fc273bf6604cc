// Package history records editor mutations for undo and redo.
//
// Every user-visible mutation is described by an [Event] carrying an [Op].
// Ops are plain data: a small closed set of descriptors (create node, remove
// edge, set option, ...) that [Invert] turns into their structural inverse.
// Nothing captures closures, so a history survives being inspected, logged
// or compared in tests.
//
// The [Recorder] keeps a linear history. Recording a new event clears the
// redo stack. Undo pops an event, applies the inverse of its op through an
// [Applier] and moves the event to the redo stack; redo does the opposite.
//
// A [Batch] op is applied as one unit. The Applier is expected to defer
// propagation until the whole batch has been applied, using [Seeds] to find
// the nodes whose outputs need recomputing.
package history
