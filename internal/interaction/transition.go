package interaction

// Transition advances the machine by one event. It never mutates anything:
// the returned effects describe what the boundary has to do.
//
// Events with no matching row, or whose guard fails, leave the state and
// context untouched and return no effects.
func Transition(s State, c Context, e Event) (State, Context, []Effect) {
	switch s {
	case StateIdle:
		return fromIdle(c, e)
	case StateDragging:
		return fromDragging(c, e)
	case StateEditing:
		return fromEditing(c, e)
	}
	return s, c, nil
}

func fromIdle(c Context, e Event) (State, Context, []Effect) {
	t := e.Target

	switch e.Kind {
	case EventPointerDown:
		if !t.Draggable || t.ID == "" {
			break
		}
		effects := []Effect{
			{Kind: EffectSetDragging, Target: t.ID, On: true},
			{Kind: EffectBringToFront, Target: t.ID},
		}
		c.Dragging = t.ID
		c.Offset = e.Pointer.Sub(t.Origin)
		c.DragSize = t.Size
		effects = append(effects, selectElement(&c, t.ID)...)
		return StateDragging, c, effects

	case EventPointerUp:
		var effects []Effect
		if c.Selected != "" && !t.Selected {
			effects = append(effects, Effect{Kind: EffectSetSelected, Target: c.Selected, On: false})
			c.Selected = ""
		}
		if t.AddControl {
			effects = append(effects, Effect{Kind: EffectAppendBlock, Block: DefaultBlock()})
		}
		return StateIdle, c, effects

	case EventAddBlock:
		return StateIdle, c, []Effect{{Kind: EffectAppendBlock, Block: DefaultBlock()}}

	case EventKeyUp:
		if e.Key != BackspaceKey || c.Selected == "" {
			break
		}
		removed := c.Selected
		c.Selected = ""
		return StateIdle, c, []Effect{{Kind: EffectRemove, Target: removed}}

	case EventDoubleClick:
		if !t.Draggable || t.ID == "" {
			break
		}
		effects := selectElement(&c, t.ID)
		effects = append(effects, Effect{Kind: EffectOpenModal})
		return StateEditing, c, effects
	}

	return StateIdle, c, nil
}

func fromDragging(c Context, e Event) (State, Context, []Effect) {
	switch e.Kind {
	case EventPointerMove:
		origin := Point{
			X: Clamp(e.Pointer.X-c.Offset.X, e.Viewport.Width, c.DragSize.Width),
			Y: Clamp(e.Pointer.Y-c.Offset.Y, e.Viewport.Height, c.DragSize.Height),
		}
		return StateDragging, c, []Effect{{Kind: EffectMoveTo, Target: c.Dragging, Position: origin}}

	case EventTouchMove:
		return StateDragging, c, []Effect{{Kind: EffectPreventDefault}}

	case EventPointerUp:
		released := c.Dragging
		c.Dragging = ""
		c.Offset = Point{}
		c.DragSize = Size{}
		return StateIdle, c, []Effect{{Kind: EffectSetDragging, Target: released, On: false}}
	}

	return StateDragging, c, nil
}

func fromEditing(c Context, e Event) (State, Context, []Effect) {
	if e.Kind == EventPointerUp {
		return StateIdle, c, []Effect{{Kind: EffectCloseModal}}
	}
	return StateEditing, c, nil
}

// selectElement makes id the selection, deselecting the previous one first.
func selectElement(c *Context, id ElementID) []Effect {
	var effects []Effect
	if c.Selected != "" && c.Selected != id {
		effects = append(effects, Effect{Kind: EffectSetSelected, Target: c.Selected, On: false})
	}
	c.Selected = id
	return append(effects, Effect{Kind: EffectSetSelected, Target: id, On: true})
}

// Clamp bounds v to [0, viewport-element-EdgeMargin]. When the element does not
// fit the upper bound is negative and the result is 0.
func Clamp(v, viewport, element float64) float64 {
	upper := viewport - element - EdgeMargin
	if v > upper {
		v = upper
	}
	if v < 0 {
		v = 0
	}
	return v
}
