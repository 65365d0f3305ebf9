// Package browser binds the interaction controller to a live page when the
// module is compiled for js/wasm. The DOM contract (attribute names, block
// markup) lives in this file and builds on every platform.
package browser

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"zone.digit.blockboard/internal/interaction"
)

// DOM contract shared with index.html and styles.css.
const (
	AttrID        = "data-id"
	AttrDraggable = "data-draggable"
	AttrDragging  = "data-dragging"
	AttrSelected  = "data-selected"
	AttrAddBlock  = "data-add-block"
	AttrOpen      = "open"

	BoardSelector = "#board"
	ModalSelector = ".modal"

	BlockClass    = "block"
	TypeClass     = "block-type"
	DurationClass = "block-duration"
)

var blockTemplate = template.Must(template.New("block").Parse(
	`<div class="block" data-id="{{.ID}}" data-draggable data-dragging="false">` +
		`<span class="block-type">{{.Label}}</span>` +
		`<span class="block-duration">{{.Duration}}</span>` +
		`</div>`))

// BlockMarkup renders the markup of a new block.
func BlockMarkup(id interaction.ElementID, spec interaction.BlockSpec) (string, error) {
	var buf bytes.Buffer
	err := blockTemplate.Execute(&buf, struct {
		ID       string
		Label    string
		Duration string
	}{
		ID:       string(id),
		Label:    spec.Label,
		Duration: DurationLabel(spec.Duration),
	})
	if err != nil {
		return "", fmt.Errorf("render block %s: %w", id, err)
	}
	return buf.String(), nil
}

// DurationLabel formats a duration in minutes the way blocks display it.
func DurationLabel(minutes int) string {
	return strconv.Itoa(minutes) + " min"
}

// ParseDuration reads a duration label back into minutes.
func ParseDuration(label string) (int, bool) {
	s := strings.TrimSpace(label)
	s = strings.TrimSpace(strings.TrimSuffix(s, "min"))
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParsePixels parses a computed CSS length such as "90px". Anything that is
// not a pixel length ("auto", "") reads as 0.
func ParsePixels(v string) float64 {
	v = strings.TrimSpace(v)
	if !strings.HasSuffix(v, "px") {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 0
	}
	return f
}

// Pixels formats a position for an inline style.
func Pixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
