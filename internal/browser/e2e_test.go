//go:build e2e

package browser_test

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"zone.digit.blockboard/internal/config"
	"zone.digit.blockboard/internal/server"
	"zone.digit.blockboard/internal/static"
)

// TestBoardInteractions needs the wasm controller in the bundle: run
// `make wasm` before `go test -tags e2e ./internal/browser`.
func TestBoardInteractions(t *testing.T) {
	bundle := static.Bundle()
	if _, err := fs.Stat(bundle, "main.wasm"); err != nil {
		t.Skip("main.wasm not built; run make wasm")
	}

	ctx, cancelServer := context.WithCancel(context.Background())
	defer cancelServer()
	router := server.NewRouter(ctx, config.Default(), static.NewHandler(bundle), slog.New(slog.DiscardHandler))
	ts := httptest.NewServer(router)
	defer ts.Close()

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ready := make(chan struct{}, 1)
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if ev, ok := ev.(*runtime.EventConsoleAPICalled); ok {
			for _, arg := range ev.Args {
				if strings.Contains(string(arg.Value), "controller ready") {
					select {
					case ready <- struct{}{}:
					default:
					}
				}
			}
		}
	})

	if err := chromedp.Run(ctx,
		chromedp.Navigate(ts.URL),
		chromedp.WaitVisible(`[data-id="intro"]`),
	); err != nil {
		t.Fatalf("load board: %v", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		t.Fatal("controller never reported ready")
	}

	t.Run("DragMovesBlock", func(t *testing.T) {
		var left, top string
		var selected bool
		err := chromedp.Run(ctx,
			input.DispatchMouseEvent(input.MousePressed, 34, 34).WithButton(input.Left).WithClickCount(1),
			input.DispatchMouseEvent(input.MouseMoved, 134, 84).WithButton(input.Left),
			input.DispatchMouseEvent(input.MouseReleased, 134, 84).WithButton(input.Left).WithClickCount(1),
			chromedp.Evaluate(`document.querySelector('[data-id="intro"]').style.left`, &left),
			chromedp.Evaluate(`document.querySelector('[data-id="intro"]').style.top`, &top),
			chromedp.Evaluate(`document.querySelector('[data-id="intro"]').hasAttribute('data-selected')`, &selected),
		)
		if err != nil {
			t.Fatalf("drag: %v", err)
		}
		if left != "124px" || top != "74px" {
			t.Errorf("origin: got %s,%s, want 124px,74px", left, top)
		}
		if !selected {
			t.Error("dragged block should be selected")
		}
	})

	t.Run("BackspaceRemovesSelected", func(t *testing.T) {
		var gone bool
		err := chromedp.Run(ctx,
			chromedp.KeyEvent(kb.Backspace),
			chromedp.Evaluate(`document.querySelector('[data-id="intro"]') === null`, &gone),
		)
		if err != nil {
			t.Fatalf("backspace: %v", err)
		}
		if !gone {
			t.Error("selected block should be removed")
		}
	})

	t.Run("AddControlAppendsBlock", func(t *testing.T) {
		var count int
		err := chromedp.Run(ctx,
			chromedp.Click(`[data-add-block]`, chromedp.ByQuery),
			chromedp.Evaluate(`document.querySelectorAll('[data-draggable]').length`, &count),
		)
		if err != nil {
			t.Fatalf("add block: %v", err)
		}
		if count != 2 {
			t.Errorf("blocks: got %d, want 2", count)
		}
	})
}
