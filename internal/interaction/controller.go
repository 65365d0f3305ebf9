package interaction

import "log/slog"

// Controller is the running machine for one board. It owns no elements: it
// holds the document and modal references it was built with and mutates them
// through the effects Transition returns.
//
// A Controller is not safe for concurrent use. The host event loop advances it
// one event at a time.
type Controller struct {
	state  State
	ctx    Context
	doc    Document
	modal  Modal
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates a controller in StateIdle.
func NewController(doc Document, modal Modal, opts ...Option) *Controller {
	c := &Controller{
		state:  StateIdle,
		doc:    doc,
		modal:  modal,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch feeds one event through the machine, applies the resulting effects
// and returns them so the boundary can act on the ones it owns.
func (c *Controller) Dispatch(e Event) []Effect {
	next, ctx, effects := Transition(c.state, c.ctx, e)
	if next != c.state {
		c.logger.Debug("interaction transition",
			"from", c.state,
			"to", next,
			"event", e.Kind,
			"target", e.Target.ID,
		)
	}
	c.state, c.ctx = next, ctx

	if c.doc != nil {
		Apply(c.doc, c.modal, effects)
	}
	return effects
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Context returns a copy of the current context.
func (c *Controller) Context() Context {
	return c.ctx
}
