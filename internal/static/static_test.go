package static

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	indexHTML = "<!doctype html><title>Blockboard</title>" + strings.Repeat("<!-- pad -->", 40)
	stylesCSS = strings.Repeat(".block { position: absolute; }\n", 20)
	wasmBytes = bytes.Repeat([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, 64)
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":      {Data: []byte(indexHTML)},
		"styles.css":      {Data: []byte(stylesCSS)},
		"main.wasm":       {Data: wasmBytes},
		"tiny.js":         {Data: []byte("go();")},
		"docs/index.html": {Data: []byte("<p>docs</p>")},
		"logo.png":        {Data: bytes.Repeat([]byte{0x89}, 1024)},
	}
}

func get(t *testing.T, h http.Handler, target, acceptEncoding string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRootServesIndexDocument(t *testing.T) {
	h := NewHandler(testFS(), WithCompression(false))

	rr := get(t, h, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, indexHTML, rr.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
}

func TestRelativePaths(t *testing.T) {
	h := NewHandler(testFS(), WithCompression(false))

	tests := []struct {
		target      string
		code        int
		contentType string
	}{
		{"/styles.css", http.StatusOK, "text/css; charset=utf-8"},
		{"/main.wasm", http.StatusOK, "application/wasm"},
		{"/logo.png", http.StatusOK, "image/png"},
		{"/docs/", http.StatusOK, "text/html; charset=utf-8"},
		{"/docs", http.StatusOK, "text/html; charset=utf-8"},
		{"/../styles.css", http.StatusOK, "text/css; charset=utf-8"},
		{"/missing.js", http.StatusNotFound, ""},
		{"/some/client/route", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rr := get(t, h, tt.target, "")
			assert.Equal(t, tt.code, rr.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHeadOmitsBody(t *testing.T) {
	h := NewHandler(testFS(), WithCompression(false))

	req := httptest.NewRequest(http.MethodHead, "/styles.css", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.Bytes())
	assert.Equal(t, strconv.Itoa(len(stylesCSS)), rr.Header().Get("Content-Length"))
}

func TestBrotliPreferred(t *testing.T) {
	h := NewHandler(testFS())

	rr := get(t, h, "/styles.css", "gzip, deflate, br")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "br", rr.Header().Get("Content-Encoding"))
	assert.Contains(t, rr.Header().Values("Vary"), "Accept-Encoding")

	plain, err := io.ReadAll(brotli.NewReader(rr.Body))
	require.NoError(t, err)
	assert.Equal(t, stylesCSS, string(plain))
}

func TestGzipFallback(t *testing.T) {
	h := NewHandler(testFS())

	rr := get(t, h, "/main.wasm", "gzip")
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, wasmBytes, plain)
}

func TestNoCompressionWhenNotWorthIt(t *testing.T) {
	h := NewHandler(testFS())

	tests := []struct {
		name, target, accept string
	}{
		{"small body", "/tiny.js", "br"},
		{"binary type", "/logo.png", "br"},
		{"client refuses", "/styles.css", "br;q=0, gzip;q=0"},
		{"no header", "/styles.css", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, h, tt.target, tt.accept)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Empty(t, rr.Header().Get("Content-Encoding"))
		})
	}
}

func TestCompressionDisabled(t *testing.T) {
	h := NewHandler(testFS(), WithCompression(false))

	rr := get(t, h, "/styles.css", "br, gzip")
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, stylesCSS, rr.Body.String())
}

func TestCacheReusesCompressedBodies(t *testing.T) {
	cache := NewCache()
	h := NewHandler(testFS(), WithCache(cache))

	first := get(t, h, "/styles.css", "br")
	assert.Equal(t, 1, cache.Len())

	body, ok := cache.Get("styles.css", EncodingBrotli)
	require.True(t, ok)
	assert.Equal(t, first.Body.Bytes(), body)

	get(t, h, "/styles.css", "gzip")
	assert.Equal(t, 2, cache.Len())

	assert.Equal(t, 2, cache.Invalidate("styles.css"))
	assert.Zero(t, cache.Len())
}

func TestPrecompressedSiblings(t *testing.T) {
	br, err := compress(wasmBytes, EncodingBrotli)
	require.NoError(t, err)
	gz, err := compress(wasmBytes, EncodingGzip)
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"index.html":   {Data: []byte(indexHTML)},
		"app.wasm":     {Data: wasmBytes},
		"app.wasm.br":  {Data: br},
		"only.wasm.gz": {Data: gz},
	}
	h := NewHandler(fsys, WithCompression(false))

	t.Run("sibling served as-is", func(t *testing.T) {
		rr := get(t, h, "/app.wasm", "br")
		assert.Equal(t, "br", rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "application/wasm", rr.Header().Get("Content-Type"))
		assert.Equal(t, br, rr.Body.Bytes())
	})

	t.Run("plain file when sibling not accepted", func(t *testing.T) {
		rr := get(t, h, "/app.wasm", "gzip")
		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, wasmBytes, rr.Body.Bytes())
	})

	t.Run("only sibling, accepted", func(t *testing.T) {
		rr := get(t, h, "/only.wasm", "gzip")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
		assert.Equal(t, gz, rr.Body.Bytes())
	})

	t.Run("only sibling, decoded for identity clients", func(t *testing.T) {
		rr := get(t, h, "/only.wasm", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, wasmBytes, rr.Body.Bytes())
	})
}

func TestCorruptSiblingIsServerError(t *testing.T) {
	fsys := fstest.MapFS{"broken.js.gz": {Data: []byte("not gzip")}}
	h := NewHandler(fsys)

	rr := get(t, h, "/broken.js", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestParseAcceptEncoding(t *testing.T) {
	tests := []struct {
		header    string
		preferred string
	}{
		{"", ""},
		{"identity", ""},
		{"gzip", "gzip"},
		{"gzip, br", "br"},
		{"BR;q=0.5, gzip;q=1.0", "br"},
		{"br;q=0", ""},
		{"*", "br"},
		{"*, br;q=0", "gzip"},
		{"deflate", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.preferred, parseAcceptEncoding(tt.header).preferred(), "header %q", tt.header)
	}
}

func TestDecompressRoundTrip(t *testing.T) {
	for _, enc := range []string{EncodingBrotli, EncodingGzip} {
		packed, err := compress([]byte(stylesCSS), enc)
		require.NoError(t, err)
		plain, err := decompress(packed, enc)
		require.NoError(t, err)
		assert.Equal(t, stylesCSS, string(plain), enc)
	}

	_, err := compress([]byte("x"), "zstd")
	assert.Error(t, err)

	same, err := decompress([]byte("raw"), "identity")
	require.NoError(t, err)
	assert.Equal(t, "raw", string(same))
}

func TestEmbeddedBundle(t *testing.T) {
	h := NewHandler(Bundle())

	rr := get(t, h, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `id="board"`)

	rr = get(t, h, "/boot.js", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "main.wasm")
}

func TestWatchInvalidatesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "styles.css")
	require.NoError(t, os.WriteFile(file, []byte(stylesCSS), 0o644))

	cache := NewCache()
	h := NewHandler(os.DirFS(dir), WithCache(cache))
	get(t, h, "/styles.css", "br")
	require.Equal(t, 1, cache.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done, err := Watch(ctx, dir, cache, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(file, []byte(stylesCSS+"/* changed */\n"), 0o644))

	assert.Eventually(t, func() bool { return cache.Len() == 0 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), NewCache(), nil)
	assert.Error(t, err)
}
