package history

// Level groups events by what they change.
type Level int

const (
	// LevelDiagram events change the graph structure.
	LevelDiagram Level = iota
	// LevelNode events change a single node's options.
	LevelNode
	// LevelInteraction events change layout only.
	LevelInteraction
)

func (l Level) String() string {
	switch l {
	case LevelDiagram:
		return "diagram"
	case LevelNode:
		return "node"
	case LevelInteraction:
		return "interaction"
	default:
		return "unknown"
	}
}

// Event types recorded by the editor.
const (
	TypeCreateNode     = "createNode"
	TypeRemoveNode     = "removeNode"
	TypeRemoveNodes    = "removeNodes"
	TypeCreateEdge     = "createEdge"
	TypeRemoveEdge     = "removeEdge"
	TypeInsertNode     = "insertNodeOnEdge"
	TypeDisconnectPort = "disconnectPort"
	TypeNodeOption     = "nodeOption"
	TypeMoveNodes      = "moveNodes"
)

// Event is one entry of the undo or redo stack.
type Event struct {
	Level   Level
	Type    string
	Message string
	Op      Op
	Icon    string // optional display hint, e.g. "plus" or "trash"
}
