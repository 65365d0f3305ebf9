//go:build js && wasm

// Package main is the in-page controller. It is compiled to main.wasm and
// loaded by boot.js from the served bundle.
package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"zone.digit.blockboard/internal/browser"
	"zone.digit.blockboard/internal/interaction"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	window := js.Global()
	document := window.Get("document")

	doc, err := browser.NewDocument(document)
	if err != nil {
		logger.Error("controller not started", "error", err)
		return
	}

	ctrl := interaction.NewController(doc, browser.NewModal(document), interaction.WithLogger(logger))
	browser.Bind(window, ctrl, logger)

	logger.Info("blockboard controller ready", "blocks", doc.EnsureIDs())

	// The controller lives as long as the page.
	select {}
}
