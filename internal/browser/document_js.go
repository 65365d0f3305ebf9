//go:build js && wasm

package browser

import (
	"errors"
	"strconv"
	"syscall/js"

	"github.com/google/uuid"

	"zone.digit.blockboard/internal/interaction"
)

// ErrNoBoard is returned when the page has no board container.
var ErrNoBoard = errors.New("board container not found")

// Document implements interaction.Document over the live DOM.
type Document struct {
	doc   js.Value
	board js.Value
}

// NewDocument binds to the board container of doc.
func NewDocument(doc js.Value) (*Document, error) {
	board := doc.Call("querySelector", BoardSelector)
	if board.IsNull() {
		return nil, ErrNoBoard
	}
	return &Document{doc: doc, board: board}, nil
}

// EnsureIDs gives every draggable element that lacks one a data-id and
// returns the number of blocks on the board.
func (d *Document) EnsureIDs() int {
	blocks := d.board.Call("querySelectorAll", "["+AttrDraggable+"]")
	n := blocks.Length()
	for i := 0; i < n; i++ {
		el := blocks.Index(i)
		if !el.Call("hasAttribute", AttrID).Bool() {
			el.Call("setAttribute", AttrID, uuid.NewString())
		}
	}
	return n
}

func (d *Document) element(id interaction.ElementID) (js.Value, bool) {
	if id == "" {
		return js.Null(), false
	}
	escaped := js.Global().Get("CSS").Call("escape", string(id)).String()
	el := d.doc.Call("querySelector", "["+AttrID+`="`+escaped+`"]`)
	return el, !el.IsNull()
}

// SetDragging implements interaction.Document.
func (d *Document) SetDragging(id interaction.ElementID, on bool) {
	if el, ok := d.element(id); ok {
		el.Call("setAttribute", AttrDragging, strconv.FormatBool(on))
	}
}

// SetSelected implements interaction.Document. The selected attribute is
// present only on the selected element.
func (d *Document) SetSelected(id interaction.ElementID, on bool) {
	el, ok := d.element(id)
	if !ok {
		return
	}
	if on {
		el.Call("setAttribute", AttrSelected, "")
	} else {
		el.Call("removeAttribute", AttrSelected)
	}
}

// BringToFront implements interaction.Document.
func (d *Document) BringToFront(id interaction.ElementID) {
	blocks := d.doc.Call("querySelectorAll", "["+AttrDraggable+"]")
	for i := 0; i < blocks.Length(); i++ {
		el := blocks.Index(i)
		z := "0"
		if el.Call("getAttribute", AttrID).String() == string(id) {
			z = "1"
		}
		el.Get("style").Set("zIndex", z)
	}
}

// MoveTo implements interaction.Document.
func (d *Document) MoveTo(id interaction.ElementID, origin interaction.Point) {
	if el, ok := d.element(id); ok {
		style := el.Get("style")
		style.Set("left", Pixels(origin.X))
		style.Set("top", Pixels(origin.Y))
	}
}

// Remove implements interaction.Document.
func (d *Document) Remove(id interaction.ElementID) {
	if el, ok := d.element(id); ok {
		el.Call("remove")
	}
}

// AppendBlock implements interaction.Document.
func (d *Document) AppendBlock(spec interaction.BlockSpec) interaction.ElementID {
	id := interaction.ElementID(uuid.NewString())
	markup, err := BlockMarkup(id, spec)
	if err != nil {
		return ""
	}
	d.board.Call("insertAdjacentHTML", "beforeend", markup)
	return id
}

// Modal implements interaction.Modal. The overlay is looked up on every
// toggle rather than cached.
type Modal struct {
	doc js.Value
}

// NewModal returns the modal handle for doc.
func NewModal(doc js.Value) *Modal {
	return &Modal{doc: doc}
}

// SetOpen implements interaction.Modal.
func (m *Modal) SetOpen(open bool) {
	el := m.doc.Call("querySelector", ModalSelector)
	if el.IsNull() {
		return
	}
	el.Call("toggleAttribute", AttrOpen, open)
}
