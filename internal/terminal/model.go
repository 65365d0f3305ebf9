// Package terminal renders the board in a terminal and drives the same
// interaction controller the browser uses, with mouse and keyboard input
// translated from bubbletea messages.
package terminal

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zone.digit.blockboard/internal/dom"
	"zone.digit.blockboard/internal/interaction"
)

const (
	// CellWidth and CellHeight give the pixel size of one terminal cell, so the
	// board keeps the same geometry as the page.
	CellWidth  = 8
	CellHeight = 16

	// DoubleClickWindow is the longest gap between two presses on the same
	// cell that still counts as a double click.
	DoubleClickWindow = 400 * time.Millisecond

	defaultCols = 80
	defaultRows = 24

	statusRows = 1
)

type press struct {
	col, row int
	at       time.Time
}

// Model is the bubbletea model for the board.
type Model struct {
	doc  *dom.Document
	ctrl *interaction.Controller

	cols, rows int

	last        press
	doubleArmed bool

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now for double-click detection.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithLogger sets the logger handed to the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New builds a model over doc with a fresh controller.
func New(doc *dom.Document, opts ...Option) Model {
	m := Model{
		doc:    doc,
		cols:   defaultCols,
		rows:   defaultRows,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.ctrl = interaction.NewController(doc, doc.Modal(), interaction.WithLogger(m.logger))
	return m
}

// State returns the controller's current state.
func (m Model) State() interaction.State {
	return m.ctrl.State()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "backspace":
			m.ctrl.Dispatch(interaction.Event{
				Kind:     interaction.EventKeyUp,
				Key:      interaction.BackspaceKey,
				Viewport: m.viewport(),
			})
		case "a":
			m.ctrl.Dispatch(interaction.Event{
				Kind:     interaction.EventAddBlock,
				Viewport: m.viewport(),
			})
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	p := pointAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		now := m.now()
		m.doubleArmed = !m.last.at.IsZero() &&
			m.last.col == msg.X && m.last.row == msg.Y &&
			now.Sub(m.last.at) <= DoubleClickWindow
		m.last = press{col: msg.X, row: msg.Y, at: now}
		m.pointer(interaction.EventPointerDown, p)

	case tea.MouseActionMotion:
		m.pointer(interaction.EventPointerMove, p)

	case tea.MouseActionRelease:
		m.pointer(interaction.EventPointerUp, p)
		if m.doubleArmed {
			// The page sees dblclick after the second release.
			m.doubleArmed = false
			m.last = press{}
			m.pointer(interaction.EventDoubleClick, p)
		}
	}
	return m
}

func (m Model) pointer(kind interaction.EventKind, p interaction.Point) {
	m.ctrl.Dispatch(interaction.Event{
		Kind:     kind,
		Target:   dom.Target(m.doc.HitTest(p)),
		Pointer:  p,
		Viewport: m.viewport(),
	})
}

// pointAt converts a cell to the pixel at its top-left corner.
func pointAt(col, row int) interaction.Point {
	return interaction.Point{X: float64(col * CellWidth), Y: float64(row * CellHeight)}
}

func (m Model) boardRows() int {
	return max(m.rows-statusRows, 0)
}

func (m Model) viewport() interaction.Size {
	return interaction.Size{
		Width:  float64(m.cols * CellWidth),
		Height: float64(m.boardRows() * CellHeight),
	}
}

func (m Model) View() string {
	var board string
	if m.doc.Modal().Open() {
		board = lipgloss.Place(m.cols, m.boardRows(), lipgloss.Center, lipgloss.Center, m.renderModal())
	} else {
		board = m.renderBoard()
	}
	return lipgloss.JoinVertical(lipgloss.Left, board, m.renderStatus())
}

func (m Model) renderBoard() string {
	c := newCanvas(m.cols, m.boardRows())

	elements := m.doc.Elements()
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].ZIndex < elements[j].ZIndex
	})

	for _, el := range elements {
		x, y := int(el.Left)/CellWidth, int(el.Top)/CellHeight
		w, h := int(el.Width)/CellWidth, int(el.Height)/CellHeight

		if el.AddControl && !el.Draggable {
			c.text(x, y, "[ + add block ]", inkControl)
			continue
		}

		border, i := lipgloss.RoundedBorder(), inkBlock
		switch {
		case el.Dragging:
			i = inkDragging
		case el.Selected:
			border, i = lipgloss.ThickBorder(), inkSelected
		}
		c.box(x, y, w, h, border, i)
		c.text(x+1, y+h/2, truncate(blockText(el), w-2), i)
	}
	return c.String()
}

func (m Model) renderModal() string {
	label, duration := "", ""
	if el := m.doc.Get(m.ctrl.Context().Selected); el != nil {
		label, duration = el.Label, formatDuration(el.Duration)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render("Edit block"),
		"",
		"Type:     "+label,
		"Duration: "+duration,
		"",
		HintStyle.Render("click anywhere to close"),
	)
	return ModalStyle.Render(body)
}

func (m Model) renderStatus() string {
	selected := "none"
	if el := m.doc.Get(m.ctrl.Context().Selected); el != nil {
		selected = el.Label
	}
	text := fmt.Sprintf("%s | blocks: %d | selected: %s | a add  backspace delete  q quit",
		m.ctrl.State(), len(m.doc.Blocks()), selected)
	return StatusBarStyle.Width(max(m.cols, 0)).Render(text)
}

func blockText(el *dom.Element) string {
	return el.Label + "  " + formatDuration(el.Duration)
}

func formatDuration(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(rs[:width-1]) + "…"
}
