package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"zone.digit.blockboard/internal/static"
)

var version = "dev"

// App holds the window state and provides IPC bindings.
type App struct {
	ctx     context.Context
	logger  *slog.Logger
	handler http.Handler
}

// NewApp creates an App serving the embedded board bundle.
func NewApp(logger *slog.Logger) *App {
	return &App{
		logger: logger,
		handler: static.NewHandler(static.Bundle(),
			static.WithCache(static.NewCache()),
			static.WithLogger(logger),
		),
	}
}

// Handler serves the board's assets to the webview.
func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.logger.Info("blockboard desktop started", "version", version)
}

func (a *App) shutdown(ctx context.Context) {
	a.logger.Info("blockboard desktop closing")
}

// Version reports the build version to the page.
func (a *App) Version() string {
	return version
}

// Reload reloads the board page, discarding unsaved blocks.
func (a *App) Reload() {
	if a.ctx == nil {
		return
	}
	runtime.WindowReloadApp(a.ctx)
}
