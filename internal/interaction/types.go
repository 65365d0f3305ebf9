// Package interaction implements the block board's interaction state machine.
//
// The machine is a pure function over a State, a Context and an Event. Boundaries
// (the browser, the terminal, tests) translate their native input into Event values
// and apply the returned effects to the document they own.
package interaction

const (
	// EdgeMargin is kept free between a dragged block and the trailing viewport edges.
	EdgeMargin = 16

	// BackspaceKey is the key name that deletes the selected block.
	BackspaceKey = "Backspace"

	// DefaultBlockLabel is the label given to synthesized blocks.
	DefaultBlockLabel = "New block"
	// DefaultBlockDuration is the duration, in minutes, given to synthesized blocks.
	DefaultBlockDuration = 30
)

// ElementID identifies a page element. The zero value means "no element".
type ElementID string

// Point is a pixel position.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a pixel extent.
type Size struct {
	Width  float64
	Height float64
}

// State is the machine's current mode.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
	StateEditing  State = "editing"
)

// Context is the transient state carried between events.
//
// Dragging is non-empty only while the machine is in StateDragging.
type Context struct {
	Selected ElementID
	Dragging ElementID
	// Offset is the pointer position minus the block origin at grab time.
	Offset Point
	// DragSize is the dragged block's layout size at grab time.
	DragSize Size
}

// BlockSpec is the content of a block synthesized by the add-block action.
type BlockSpec struct {
	Label    string
	Duration int
}

// DefaultBlock returns the content given to newly added blocks.
func DefaultBlock() BlockSpec {
	return BlockSpec{Label: DefaultBlockLabel, Duration: DefaultBlockDuration}
}
