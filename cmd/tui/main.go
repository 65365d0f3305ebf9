// Package main runs the board in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"zone.digit.blockboard/internal/dom"
	"zone.digit.blockboard/internal/terminal"
)

func main() {
	logPath := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc := dom.New()
	seed(doc)

	p := tea.NewProgram(terminal.New(doc, terminal.WithLogger(logger)),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "blockboard: %v\n", err)
		os.Exit(1)
	}
}

// seed lays out the same starting board as the web page.
func seed(doc *dom.Document) {
	doc.Add(&dom.Element{
		ID: "intro", Label: "Planning", Duration: 30, Draggable: true,
		Left: 24, Top: 24, Width: dom.DefaultBlockWidth, Height: dom.DefaultBlockHeight,
	})
	doc.Add(&dom.Element{
		ID: "focus", Label: "Focus", Duration: 90, Draggable: true,
		Left: 24, Top: 96, Width: dom.DefaultBlockWidth, Height: dom.DefaultBlockHeight,
	})
	doc.Add(&dom.Element{
		ID: "add", AddControl: true,
		Left: 232, Top: 16, Width: 15 * terminal.CellWidth, Height: terminal.CellHeight,
	})
}
