// Package dom provides an in-memory element tree that stands in for the page.
// It implements interaction.Document and interaction.Modal and is what the
// terminal front-end, the desktop preview and the tests drive.
package dom

import (
	"github.com/google/uuid"

	"zone.digit.blockboard/internal/interaction"
)

const (
	// DefaultBlockWidth is the layout width of a synthesized block.
	DefaultBlockWidth = 160
	// DefaultBlockHeight is the layout height of a synthesized block.
	DefaultBlockHeight = 48
	// blockGap separates stacked blocks.
	blockGap = 8
)

// Element is one node on the board.
type Element struct {
	ID         interaction.ElementID
	Label      string
	Duration   int
	Draggable  bool
	Dragging   bool
	Selected   bool
	AddControl bool
	Left       float64
	Top        float64
	ZIndex     int
	Width      float64
	Height     float64
}

// Contains reports whether p lies inside the element's box.
func (e *Element) Contains(p interaction.Point) bool {
	return p.X >= e.Left && p.X < e.Left+e.Width &&
		p.Y >= e.Top && p.Y < e.Top+e.Height
}

// Origin returns the element's left/top.
func (e *Element) Origin() interaction.Point {
	return interaction.Point{X: e.Left, Y: e.Top}
}

// Modal is the singleton edit overlay.
type Modal struct {
	open bool
}

// SetOpen toggles the overlay.
func (m *Modal) SetOpen(open bool) {
	m.open = open
}

// Open reports whether the overlay is shown.
func (m *Modal) Open() bool {
	return m.open
}

// Document is an ordered element tree plus its modal.
// Like the page it models, it is not safe for concurrent use.
type Document struct {
	elements []*Element
	modal    *Modal
	newID    func() interaction.ElementID
}

// Option configures a Document.
type Option func(*Document)

// WithIDSource replaces the uuid generator used for appended blocks.
func WithIDSource(next func() interaction.ElementID) Option {
	return func(d *Document) {
		d.newID = next
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		modal: &Modal{},
		newID: func() interaction.ElementID {
			return interaction.ElementID(uuid.NewString())
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Modal returns the document's overlay.
func (d *Document) Modal() *Modal {
	return d.modal
}

// Add appends el to the tree.
func (d *Document) Add(el *Element) {
	d.elements = append(d.elements, el)
}

// Get returns the element with the given id, or nil.
func (d *Document) Get(id interaction.ElementID) *Element {
	if id == "" {
		return nil
	}
	for _, el := range d.elements {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// Elements returns the tree in document order.
func (d *Document) Elements() []*Element {
	out := make([]*Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Blocks returns the elements carrying the draggable marker, in document order.
func (d *Document) Blocks() []*Element {
	var out []*Element
	for _, el := range d.elements {
		if el.Draggable {
			out = append(out, el)
		}
	}
	return out
}

// Len returns the number of elements.
func (d *Document) Len() int {
	return len(d.elements)
}

// SetDragging implements interaction.Document.
func (d *Document) SetDragging(id interaction.ElementID, on bool) {
	if el := d.Get(id); el != nil {
		el.Dragging = on
	}
}

// SetSelected implements interaction.Document.
func (d *Document) SetSelected(id interaction.ElementID, on bool) {
	if el := d.Get(id); el != nil {
		el.Selected = on
	}
}

// BringToFront implements interaction.Document.
func (d *Document) BringToFront(id interaction.ElementID) {
	for _, el := range d.elements {
		if !el.Draggable {
			continue
		}
		if el.ID == id {
			el.ZIndex = 1
		} else {
			el.ZIndex = 0
		}
	}
}

// MoveTo implements interaction.Document.
func (d *Document) MoveTo(id interaction.ElementID, origin interaction.Point) {
	if el := d.Get(id); el != nil {
		el.Left = origin.X
		el.Top = origin.Y
	}
}

// Remove implements interaction.Document.
func (d *Document) Remove(id interaction.ElementID) {
	for i, el := range d.elements {
		if el.ID == id {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			return
		}
	}
}

// AppendBlock implements interaction.Document. The new block is stacked
// below the lowest existing block.
func (d *Document) AppendBlock(spec interaction.BlockSpec) interaction.ElementID {
	top := 0.0
	for _, el := range d.Blocks() {
		if bottom := el.Top + el.Height + blockGap; bottom > top {
			top = bottom
		}
	}

	el := &Element{
		ID:        d.newID(),
		Label:     spec.Label,
		Duration:  spec.Duration,
		Draggable: true,
		Top:       top,
		Width:     DefaultBlockWidth,
		Height:    DefaultBlockHeight,
	}
	d.Add(el)
	return el.ID
}

// HitTest returns the topmost element containing p: highest z-index first,
// later elements winning ties. It returns nil when nothing is hit.
func (d *Document) HitTest(p interaction.Point) *Element {
	var hit *Element
	for _, el := range d.elements {
		if !el.Contains(p) {
			continue
		}
		if hit == nil || el.ZIndex >= hit.ZIndex {
			hit = el
		}
	}
	return hit
}

// Target snapshots el for an interaction event. A nil element yields the zero Target.
func Target(el *Element) interaction.Target {
	if el == nil {
		return interaction.Target{}
	}
	return interaction.Target{
		ID:         el.ID,
		Draggable:  el.Draggable,
		Selected:   el.Selected,
		AddControl: el.AddControl,
		Origin:     el.Origin(),
		Size:       interaction.Size{Width: el.Width, Height: el.Height},
	}
}
