// Package propagate recomputes node outputs after the graph changes.
//
// Propagation is push-based and incremental. Given the nodes that changed,
// the [Engine] collects everything reachable from them along output edges
// and recomputes each of those nodes exactly once, upstream before
// downstream. A diamond-shaped graph therefore recomputes its join node a
// single time per pass.
//
// # Ordering
//
// Nodes are ordered with Kahn's algorithm restricted to the reachable set.
// Among nodes that are ready at the same time, lower layers go first, then
// diagram insertion order. This makes a pass deterministic.
//
// # Partial failures
//
// A node whose Process call fails keeps the error in [dataflow.Node.Err] and
// has its outputs cleared. Its consumers see no value on that port and are
// treated like nodes with an unconnected required input: their outputs are
// cleared and they are reported as skipped, not failed.
//
// # Cycles
//
// The connectivity check keeps diagrams acyclic, but a pass still terminates
// if a cycle slipped in. Nodes left over once no node is ready are computed
// once each in layer order and the [Result] reports the cycle.
//
// # Loading
//
// While the diagram is being deserialized every pass is a no-op. The loader
// runs one pass from the propagation sources once the graph is complete.
package propagate
