package main

import (
	"log/slog"
	"os"
	goruntime "runtime"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	app := NewApp(logger)

	err := wails.Run(&options.App{
		Title:            "Blockboard",
		Width:            1024,
		Height:           768,
		MinWidth:         480,
		MinHeight:        360,
		BackgroundColour: &options.RGBA{R: 246, G: 246, B: 243, A: 1},
		Menu:             createMenu(app),
		AssetServer: &assetserver.Options{
			Handler: app.Handler(),
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []any{
			app,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   "Blockboard",
				Message: "Drag, select and edit time blocks.",
			},
		},
	})
	if err != nil {
		logger.Error("desktop shell failed", "error", err)
		os.Exit(1)
	}
}

func createMenu(app *App) *menu.Menu {
	appMenu := menu.NewMenu()

	if goruntime.GOOS == "darwin" {
		appMenu.Append(menu.AppMenu())
		appMenu.Append(menu.EditMenu())
	}

	viewMenu := appMenu.AddSubmenu("View")
	viewMenu.AddText("Reload Board", keys.CmdOrCtrl("r"), func(*menu.CallbackData) {
		app.Reload()
	})

	return appMenu
}
