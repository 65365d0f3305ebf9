package static

import (
	"errors"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
)

const (
	indexDocument = "index.html"

	documentCacheControl = "no-cache"
	assetCacheControl    = "public, max-age=300"

	// Bodies smaller than this are not worth compressing.
	minCompressSize = 256
)

// explicit MIME types for extensions the platform table may not know.
var mimeTypes = map[string]string{
	".wasm": "application/wasm",
	".js":   "text/javascript; charset=utf-8",
	".mjs":  "text/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".svg":  "image/svg+xml",
	".json": "application/json",
}

// Handler serves files from a bundle root.
type Handler struct {
	fs       fs.FS
	compress bool
	cache    *Cache
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithCompression enables or disables on-the-fly compression. Precompressed
// siblings are honored either way.
func WithCompression(on bool) Option {
	return func(h *Handler) {
		h.compress = on
	}
}

// WithCache keeps compressed bodies in c instead of recompressing per request.
func WithCache(c *Cache) Option {
	return func(h *Handler) {
		h.cache = c
	}
}

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler creates a handler serving fsys. Compression is on by default.
func NewHandler(fsys fs.FS, opts ...Option) *Handler {
	h := &Handler{
		fs:       fsys,
		compress: true,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, ok := assetName(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	accepted := parseAcceptEncoding(r.Header.Get("Accept-Encoding"))

	name, content, err := h.read(name)
	if err == nil {
		h.serve(w, r, name, content, accepted)
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		h.logger.Error("read asset", "path", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The bundle may ship only a compressed sibling, e.g. main.wasm.br.
	if h.servePrecompressedOnly(w, r, name, accepted) {
		return
	}

	http.NotFound(w, r)
}

// assetName maps a URL path to a bundle-relative file name.
func assetName(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return indexDocument, true
	}
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

// read loads name, resolving directories to their index document.
func (h *Handler) read(name string) (string, []byte, error) {
	info, err := fs.Stat(h.fs, name)
	if err != nil {
		return name, nil, err
	}
	if info.IsDir() {
		name = path.Join(name, indexDocument)
	}
	content, err := fs.ReadFile(h.fs, name)
	return name, content, err
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, name string, content []byte, accepted acceptSet) {
	contentType := mimeType(name)
	body := content
	applied := ""

	if pre, enc, ok := h.precompressed(name, accepted); ok {
		body, applied = pre, enc
		w.Header().Add("Vary", "Accept-Encoding")
	} else if h.compress && compressible(contentType) && len(content) >= minCompressSize {
		w.Header().Add("Vary", "Accept-Encoding")
		if encoding := accepted.preferred(); encoding != "" {
			compressed, err := h.compressed(name, encoding, content)
			if err != nil {
				h.logger.Warn("compress asset", "path", name, "encoding", encoding, "error", err)
			} else {
				body, applied = compressed, encoding
			}
		}
	}

	h.write(w, r, name, contentType, body, applied)
}

// servePrecompressedOnly serves name from a compressed sibling when the plain
// file is absent, decoding it for clients that do not accept the encoding.
func (h *Handler) servePrecompressedOnly(w http.ResponseWriter, r *http.Request, name string, accepted acceptSet) bool {
	for _, sib := range siblings {
		data, err := fs.ReadFile(h.fs, name+sib.ext)
		if err != nil {
			continue
		}

		w.Header().Add("Vary", "Accept-Encoding")
		if accepted[sib.encoding] {
			h.write(w, r, name, mimeType(name), data, sib.encoding)
			return true
		}

		plain, err := decompress(data, sib.encoding)
		if err != nil {
			h.logger.Error("decode precompressed asset", "path", name+sib.ext, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return true
		}
		h.write(w, r, name, mimeType(name), plain, "")
		return true
	}
	return false
}

// precompressed returns a sibling of name already encoded the way the client wants.
func (h *Handler) precompressed(name string, accepted acceptSet) ([]byte, string, bool) {
	for _, sib := range siblings {
		if !accepted[sib.encoding] {
			continue
		}
		if data, err := fs.ReadFile(h.fs, name+sib.ext); err == nil {
			return data, sib.encoding, true
		}
	}
	return nil, "", false
}

func (h *Handler) compressed(name, encoding string, content []byte) ([]byte, error) {
	if h.cache != nil {
		if body, ok := h.cache.Get(name, encoding); ok {
			return body, nil
		}
	}
	body, err := compress(content, encoding)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		h.cache.Put(name, encoding, body)
	}
	return body, nil
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, name, contentType string, body []byte, encoding string) {
	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Length", strconv.Itoa(len(body)))
	header.Set("X-Content-Type-Options", "nosniff")
	if path.Base(name) == indexDocument {
		header.Set("Cache-Control", documentCacheControl)
	} else {
		header.Set("Cache-Control", assetCacheControl)
	}
	if encoding != "" {
		header.Set("Content-Encoding", encoding)
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	w.Write(body)
}

func mimeType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if t, ok := mimeTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func compressible(contentType string) bool {
	ct := strings.ToLower(contentType)
	if strings.HasPrefix(ct, "text/") {
		return true
	}
	for _, t := range []string{"javascript", "json", "svg", "wasm", "xml"} {
		if strings.Contains(ct, t) {
			return true
		}
	}
	return false
}
