package propagate

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/observability"
)

// Result summarizes a propagation pass.
type Result struct {
	// Processed lists every node recomputed in the pass, in order.
	Processed []dataflow.NodeID

	// Failed lists nodes whose processor returned an error.
	Failed []dataflow.NodeID

	// Skipped lists nodes that could not run because a required input had
	// no edge or no value.
	Skipped []dataflow.NodeID

	// Cycle is set when the reachable subgraph was not acyclic.
	Cycle bool
}

// Engine recomputes node outputs over a diagram.
type Engine struct {
	diagram *dataflow.Diagram
	logger  *log.Logger
}

// New creates an engine over d. A nil logger uses log.Default().
func New(d *dataflow.Diagram, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{diagram: d, logger: logger}
}

// Propagate recomputes the given nodes and everything downstream of them.
// Unknown ids are ignored.
func (e *Engine) Propagate(seeds ...dataflow.NodeID) Result {
	if e.diagram.IsDeserializing() || len(seeds) == 0 {
		return Result{}
	}

	hooks := observability.Propagation()
	hooks.OnPropagateStart(len(seeds))
	start := time.Now()

	order, cycle := e.schedule(e.reachable(seeds))
	res := Result{Cycle: cycle}
	for _, id := range order {
		n, ok := e.diagram.Node(id)
		if !ok {
			continue
		}
		res.Processed = append(res.Processed, id)
		switch e.compute(n) {
		case outcomeFailed:
			res.Failed = append(res.Failed, id)
			hooks.OnNodeError(string(n.ID), n.Type, n.Err)
			e.logger.Warn("node failed", "node", n.ID, "type", n.Type, "err", n.Err)
		case outcomeSkipped:
			res.Skipped = append(res.Skipped, id)
		}
	}

	if cycle {
		e.logger.Warn("diagram contains a cycle", "nodes", len(order))
	}
	e.logger.Debug("propagated", "seeds", len(seeds), "nodes", len(res.Processed), "failed", len(res.Failed))
	hooks.OnPropagateComplete(len(res.Processed), len(res.Failed), cycle, time.Since(start))
	return res
}

// PropagatePort recomputes the nodes affected by a change on one port. For
// an output port that is every node it feeds, for an input port it is the
// port's own node.
func (e *Engine) PropagatePort(ref dataflow.PortRef) Result {
	p, err := e.diagram.Port(ref)
	if err != nil {
		return Result{}
	}
	if p.IsInput() {
		return e.Propagate(p.Node)
	}
	var seeds []dataflow.NodeID
	for _, edge := range e.diagram.PortEdges(ref) {
		if !slices.Contains(seeds, edge.Target.Node) {
			seeds = append(seeds, edge.Target.Node)
		}
	}
	return e.Propagate(seeds...)
}

// PropagateSources runs a pass seeded with every propagation source.
func (e *Engine) PropagateSources() Result {
	var seeds []dataflow.NodeID
	for _, n := range e.diagram.Nodes() {
		if n.PropagationSource {
			seeds = append(seeds, n.ID)
		}
	}
	return e.Propagate(seeds...)
}

// PropagateAll recomputes every node in the diagram.
func (e *Engine) PropagateAll() Result {
	return e.Propagate(e.diagram.NodeIDs()...)
}

// reachable returns the seeds and every node downstream of them, each once.
func (e *Engine) reachable(seeds []dataflow.NodeID) map[dataflow.NodeID]bool {
	seen := make(map[dataflow.NodeID]bool)
	var queue []dataflow.NodeID
	for _, id := range seeds {
		if _, ok := e.diagram.Node(id); ok && !seen[id] {
			seen[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range e.diagram.OutputNodes(curr) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// schedule orders the reachable set topologically. Nodes on a cycle are
// appended at the end and cycle is reported.
func (e *Engine) schedule(set map[dataflow.NodeID]bool) (order []dataflow.NodeID, cycle bool) {
	nodes := make([]*dataflow.Node, 0, len(set))
	rank := make(map[dataflow.NodeID]int, len(set))
	for i, n := range e.diagram.Nodes() {
		if set[n.ID] {
			nodes = append(nodes, n)
			rank[n.ID] = i
		}
	}
	less := func(a, b *dataflow.Node) int {
		if a.Layer != b.Layer {
			return a.Layer - b.Layer
		}
		return rank[a.ID] - rank[b.ID]
	}

	inDegree := make(map[dataflow.NodeID]int, len(nodes))
	for _, n := range nodes {
		for _, edge := range e.diagram.InputEdges(n.ID) {
			if set[edge.Source.Node] {
				inDegree[n.ID]++
			}
		}
	}

	var ready []*dataflow.Node
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			ready = append(ready, n)
		}
	}

	done := make(map[dataflow.NodeID]bool, len(nodes))
	for len(ready) > 0 {
		slices.SortStableFunc(ready, less)
		curr := ready[0]
		ready = ready[1:]
		order = append(order, curr.ID)
		done[curr.ID] = true

		for _, edge := range e.diagram.OutputEdges(curr.ID) {
			child := edge.Target.Node
			if !set[child] {
				continue
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				if n, ok := e.diagram.Node(child); ok {
					ready = append(ready, n)
				}
			}
		}
	}

	if len(order) == len(nodes) {
		return order, false
	}
	var rest []*dataflow.Node
	for _, n := range nodes {
		if !done[n.ID] {
			rest = append(rest, n)
		}
	}
	slices.SortStableFunc(rest, less)
	for _, n := range rest {
		order = append(order, n.ID)
	}
	return order, true
}
