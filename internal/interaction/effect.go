package interaction

// EffectKind discriminates the side effects returned by Transition.
type EffectKind string

const (
	EffectSetDragging    EffectKind = "set-dragging"
	EffectSetSelected    EffectKind = "set-selected"
	EffectBringToFront   EffectKind = "bring-to-front"
	EffectMoveTo         EffectKind = "move-to"
	EffectRemove         EffectKind = "remove"
	EffectAppendBlock    EffectKind = "append-block"
	EffectOpenModal      EffectKind = "open-modal"
	EffectCloseModal     EffectKind = "close-modal"
	EffectPreventDefault EffectKind = "prevent-default"
)

// Effect is one mutation the boundary must perform. Which fields are
// meaningful depends on Kind.
type Effect struct {
	Kind     EffectKind
	Target   ElementID
	On       bool
	Position Point
	Block    BlockSpec
}

// Document is the element tree a controller mutates.
type Document interface {
	SetDragging(id ElementID, on bool)
	SetSelected(id ElementID, on bool)
	// BringToFront raises id to z-order 1 and resets every sibling block to 0.
	BringToFront(id ElementID)
	MoveTo(id ElementID, origin Point)
	Remove(id ElementID)
	AppendBlock(spec BlockSpec) ElementID
}

// Modal is the singleton edit overlay.
type Modal interface {
	SetOpen(open bool)
}

// Apply performs effects against doc and modal in order.
// EffectPreventDefault belongs to the boundary that owns the native event and is skipped.
func Apply(doc Document, modal Modal, effects []Effect) {
	for _, e := range effects {
		switch e.Kind {
		case EffectSetDragging:
			doc.SetDragging(e.Target, e.On)
		case EffectSetSelected:
			doc.SetSelected(e.Target, e.On)
		case EffectBringToFront:
			doc.BringToFront(e.Target)
		case EffectMoveTo:
			doc.MoveTo(e.Target, e.Position)
		case EffectRemove:
			doc.Remove(e.Target)
		case EffectAppendBlock:
			doc.AppendBlock(e.Block)
		case EffectOpenModal:
			if modal != nil {
				modal.SetOpen(true)
			}
		case EffectCloseModal:
			if modal != nil {
				modal.SetOpen(false)
			}
		}
	}
}

// Has reports whether effects contains an effect of the given kind.
func Has(effects []Effect, kind EffectKind) bool {
	for _, e := range effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
