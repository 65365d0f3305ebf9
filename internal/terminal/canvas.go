package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r   rune
	ink ink
}

// canvas is a fixed grid of styled runes that elements are painted onto in
// z-order before the frame is flattened to a string.
type canvas struct {
	width, height int
	cells         [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, i ink) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, ink: i}
}

func (c *canvas) text(x, y int, s string, i ink) {
	for _, r := range s {
		c.set(x, y, r, i)
		x++
	}
}

// box paints a bordered rectangle and clears its interior.
func (c *canvas) box(x, y, w, h int, b lipgloss.Border, i ink) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1

	for yy := y + 1; yy < bottom; yy++ {
		for xx := x + 1; xx < right; xx++ {
			c.set(xx, yy, ' ', i)
		}
		c.set(x, yy, first(b.Left), i)
		c.set(right, yy, first(b.Right), i)
	}
	for xx := x + 1; xx < right; xx++ {
		c.set(xx, y, first(b.Top), i)
		c.set(xx, bottom, first(b.Bottom), i)
	}
	c.set(x, y, first(b.TopLeft), i)
	c.set(right, y, first(b.TopRight), i)
	c.set(x, bottom, first(b.BottomLeft), i)
	c.set(right, bottom, first(b.BottomRight), i)
}

func (c *canvas) String() string {
	var sb strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].ink == row[start].ink {
				continue
			}
			run := runes(row[start:x])
			if row[start].ink == inkNone {
				sb.WriteString(run)
			} else {
				sb.WriteString(styleFor(row[start].ink).Render(run))
			}
			start = x
		}
	}
	return sb.String()
}

func runes(cells []cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.r
	}
	return string(rs)
}

func first(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
