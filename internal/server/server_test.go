package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zone.digit.blockboard/internal/config"
	"zone.digit.blockboard/internal/static"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testAssets() http.Handler {
	return static.NewHandler(fstest.MapFS{
		"index.html": {Data: []byte(`<main id="board"></main>`)},
		"boot.js":    {Data: []byte(`go.run()`)},
	}, static.WithCompression(false))
}

func TestRouterServesAssets(t *testing.T) {
	var logs bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRouter(ctx, config.Default(), testAssets(), testLogger(&logs))

	tests := []struct {
		method, target string
		code           int
		body           string
	}{
		{http.MethodGet, "/", http.StatusOK, `<main id="board"></main>`},
		{http.MethodGet, "/boot.js", http.StatusOK, "go.run()"},
		{http.MethodHead, "/boot.js", http.StatusOK, ""},
		{http.MethodGet, "/nope.css", http.StatusNotFound, ""},
		{http.MethodPost, "/", http.StatusMethodNotAllowed, ""},
		{http.MethodDelete, "/boot.js", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.code, rr.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rr.Body.String())
			}
		})
	}

	assert.Contains(t, logs.String(), "http request")
	assert.Contains(t, logs.String(), "path=/boot.js")
	assert.Contains(t, logs.String(), "status=405")
}

func TestLoggerCapturesStatus(t *testing.T) {
	var logs bytes.Buffer
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	rr := httptest.NewRecorder()
	Logger(testLogger(&logs))(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pot", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Contains(t, logs.String(), "status=418")
	assert.Contains(t, logs.String(), "bytes=15")
}

func TestRecoverer(t *testing.T) {
	var logs bytes.Buffer
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		Recoverer(testLogger(&logs))(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "boom")
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Default()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.01, Burst: 2}
	r := NewRouter(ctx, cfg, testAssets(), slog.New(slog.DiscardHandler))

	request := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, request("10.0.0.2:5000"), "buckets are per client")
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	r := NewRouter(context.Background(), config.Default(), testAssets(), slog.New(slog.DiscardHandler))
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestNewServer(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 4321
	h := http.NotFoundHandler()

	srv := New(cfg, h)
	assert.Equal(t, ":4321", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	assert.NotZero(t, srv.WriteTimeout)
	assert.NotNil(t, srv.Handler)
}
