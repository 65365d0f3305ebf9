package interaction

// EventKind discriminates the events a boundary can deliver.
type EventKind string

const (
	EventPointerDown EventKind = "pointerdown"
	EventPointerMove EventKind = "pointermove"
	EventPointerUp   EventKind = "pointerup"
	EventKeyUp       EventKind = "keyup"
	EventDoubleClick EventKind = "dblclick"
	EventTouchMove   EventKind = "touchmove"
	// EventAddBlock asks for a new block without going through a pointer release.
	EventAddBlock EventKind = "addblock"
)

// Target describes the element an event hit, as observed by the boundary.
// The zero Target is "nothing interactive".
type Target struct {
	ID ElementID
	// Draggable reports whether the element carries the draggable marker.
	Draggable bool
	// Selected reports whether the element currently carries the selected flag.
	Selected bool
	// AddControl reports whether the element is the add-block control.
	AddControl bool
	// Origin is the element's computed left/top.
	Origin Point
	Size   Size
}

// Event is one input delivered to the machine.
type Event struct {
	Kind    EventKind
	Target  Target
	Pointer Point
	// Key is the key name for EventKeyUp, e.g. BackspaceKey.
	Key string
	// Viewport is the visible area at the time of the event.
	Viewport Size
}
