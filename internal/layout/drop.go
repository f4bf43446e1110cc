package layout

// Droppable container ids reported by the drag collaborator.
const (
	PaletteContainer = "component-library"
	CanvasContainer  = "canvas"
)

// Location is a position inside a droppable container.
type Location struct {
	ContainerID string `json:"droppable_id"`
	Index       int    `json:"index"`
}

// DropResult is the drag collaborator's report of a completed gesture. For
// palette drags DraggableID names the kind; for canvas drags it is the item id.
type DropResult struct {
	DraggableID string    `json:"draggable_id"`
	Source      Location  `json:"source"`
	Destination *Location `json:"destination,omitempty"`
}

// DropAction is what a drop did to the layout.
type DropAction string

const (
	DropInserted  DropAction = "inserted"
	DropMoved     DropAction = "moved"
	DropDiscarded DropAction = "discarded"
)

// DropOutcome reports the result of ApplyDrop. Item is set for inserts and moves.
type DropOutcome struct {
	Action DropAction `json:"action"`
	Item   *Item      `json:"item,omitempty"`
}

// ApplyDrop routes a drop by comparing source and destination containers:
// palette to canvas inserts, canvas to canvas reorders, anything else is discarded.
// The whole drop runs under the editor lock.
func (e *Editor) ApplyDrop(result DropResult) DropOutcome {
	if result.Destination == nil || result.Destination.ContainerID != CanvasContainer {
		return DropOutcome{Action: DropDiscarded}
	}
	dest := *result.Destination

	e.mu.Lock()
	defer e.mu.Unlock()

	switch result.Source.ContainerID {
	case PaletteContainer:
		kind, ok := ParseKind(result.DraggableID)
		if !ok {
			e.log("", "drop").Warn("layout.drop.unknown_kind", "draggable_id", result.DraggableID)
			return DropOutcome{Action: DropDiscarded}
		}
		item := e.insertLocked(kind, dest.Index)
		e.selectLocked(item.ID)
		return DropOutcome{Action: DropInserted, Item: &item}
	case CanvasContainer:
		if !e.reorderLocked(result.Source.Index, dest.Index) {
			return DropOutcome{Action: DropDiscarded}
		}
		item := e.items[dest.Index]
		return DropOutcome{Action: DropMoved, Item: &item}
	default:
		return DropOutcome{Action: DropDiscarded}
	}
}
