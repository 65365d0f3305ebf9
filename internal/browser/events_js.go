//go:build js && wasm

package browser

import (
	"log/slog"
	"syscall/js"

	"zone.digit.blockboard/internal/interaction"
)

// Binding routes native page events into a controller.
type Binding struct {
	ctrl   *interaction.Controller
	window js.Value
	doc    js.Value
	logger *slog.Logger
	funcs  []js.Func
}

var listened = []struct {
	native string
	kind   interaction.EventKind
}{
	{"pointerdown", interaction.EventPointerDown},
	{"pointermove", interaction.EventPointerMove},
	{"pointerup", interaction.EventPointerUp},
	{"keyup", interaction.EventKeyUp},
	{"dblclick", interaction.EventDoubleClick},
	{"touchmove", interaction.EventTouchMove},
}

// Bind installs the listeners on window's document. The binding lives as
// long as the page; Release exists for tests and hot reloads.
func Bind(window js.Value, ctrl *interaction.Controller, logger *slog.Logger) *Binding {
	b := &Binding{
		ctrl:   ctrl,
		window: window,
		doc:    window.Get("document"),
		logger: logger,
	}

	for _, l := range listened {
		fn := b.handler(l.kind)
		b.funcs = append(b.funcs, fn)
		if l.native == "touchmove" {
			// preventDefault is ignored on passive listeners.
			opts := js.Global().Get("Object").New()
			opts.Set("passive", false)
			b.doc.Call("addEventListener", l.native, fn, opts)
			continue
		}
		b.doc.Call("addEventListener", l.native, fn)
	}
	return b
}

// Release removes the listeners and frees the callbacks.
func (b *Binding) Release() {
	for i, l := range listened {
		b.doc.Call("removeEventListener", l.native, b.funcs[i])
		b.funcs[i].Release()
	}
	b.funcs = nil
}

func (b *Binding) handler(kind interaction.EventKind) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		native := args[0]
		effects := b.ctrl.Dispatch(b.translate(kind, native))
		if interaction.Has(effects, interaction.EffectPreventDefault) {
			native.Call("preventDefault")
		}
		return nil
	})
}

// translate turns a native event into an interaction event. All DOM
// inspection happens here so the machine never looks at native values.
func (b *Binding) translate(kind interaction.EventKind, native js.Value) interaction.Event {
	e := interaction.Event{
		Kind: kind,
		Viewport: interaction.Size{
			Width:  b.window.Get("innerWidth").Float(),
			Height: b.window.Get("innerHeight").Float(),
		},
	}

	switch kind {
	case interaction.EventKeyUp:
		e.Key = native.Get("key").String()
	case interaction.EventTouchMove:
	default:
		e.Pointer = interaction.Point{
			X: native.Get("clientX").Float(),
			Y: native.Get("clientY").Float(),
		}
	}

	e.Target = b.target(native.Get("target"))
	return e
}

func (b *Binding) target(node js.Value) interaction.Target {
	if node.IsUndefined() || node.IsNull() || node.Get("closest").Type() != js.TypeFunction {
		return interaction.Target{}
	}

	el := node.Call("closest", "["+AttrDraggable+"]")
	if el.IsNull() {
		el = node.Call("closest", "["+AttrAddBlock+"]")
	}
	if el.IsNull() {
		return interaction.Target{}
	}

	style := b.window.Call("getComputedStyle", el)
	t := interaction.Target{
		Draggable:  el.Call("hasAttribute", AttrDraggable).Bool(),
		Selected:   el.Call("hasAttribute", AttrSelected).Bool(),
		AddControl: el.Call("hasAttribute", AttrAddBlock).Bool(),
		Origin: interaction.Point{
			X: ParsePixels(style.Get("left").String()),
			Y: ParsePixels(style.Get("top").String()),
		},
		Size: interaction.Size{
			Width:  el.Get("offsetWidth").Float(),
			Height: el.Get("offsetHeight").Float(),
		},
	}
	if id := el.Call("getAttribute", AttrID); !id.IsNull() {
		t.ID = interaction.ElementID(id.String())
	} else if t.Draggable {
		b.logger.Debug("draggable element has no id", "attr", AttrID)
	}
	return t
}
