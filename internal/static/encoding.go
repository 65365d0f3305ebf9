package static

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
)

// Content codings the server produces.
const (
	EncodingBrotli = "br"
	EncodingGzip   = "gzip"
)

// siblings lists precompressed file suffixes in order of preference.
var siblings = []struct {
	ext      string
	encoding string
}{
	{".br", EncodingBrotli},
	{".gz", EncodingGzip},
}

// acceptSet holds the content codings a client accepts.
type acceptSet map[string]bool

// parseAcceptEncoding reads an Accept-Encoding header. Codings listed with
// q=0 are refused; "*" stands for every coding not listed explicitly.
func parseAcceptEncoding(header string) acceptSet {
	set := acceptSet{}
	refused := map[string]bool{}
	wildcard := false

	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		coding := strings.ToLower(strings.TrimSpace(fields[0]))
		if coding == "" {
			continue
		}

		q := 1.0
		for _, param := range fields[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
			if ok && strings.EqualFold(k, "q") {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					q = f
				}
			}
		}

		switch {
		case q <= 0:
			refused[coding] = true
		case coding == "*":
			wildcard = true
		default:
			set[coding] = true
		}
	}

	if wildcard {
		for _, coding := range []string{EncodingBrotli, EncodingGzip} {
			if !refused[coding] {
				set[coding] = true
			}
		}
	}
	for coding := range refused {
		delete(set, coding)
	}
	return set
}

// preferred returns the coding the server should apply, brotli first.
func (a acceptSet) preferred() string {
	switch {
	case a[EncodingBrotli]:
		return EncodingBrotli
	case a[EncodingGzip]:
		return EncodingGzip
	}
	return ""
}

// gzipWriterPool reuses gzip writers to reduce GC pressure
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// compress encodes data with the given coding.
func compress(data []byte, encoding string) ([]byte, error) {
	var buf bytes.Buffer

	switch encoding {
	case EncodingBrotli:
		bw := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := bw.Write(data); err != nil {
			return nil, fmt.Errorf("brotli write: %w", err)
		}
		if err := bw.Close(); err != nil {
			return nil, fmt.Errorf("brotli close: %w", err)
		}
	case EncodingGzip:
		gz := gzipWriterPool.Get().(*gzip.Writer)
		defer func() {
			gz.Reset(io.Discard)
			gzipWriterPool.Put(gz)
		}()
		gz.Reset(&buf)
		if _, err := gz.Write(data); err != nil {
			return nil, fmt.Errorf("gzip write: %w", err)
		}
		if err := gz.Close(); err != nil {
			return nil, fmt.Errorf("gzip close: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	return buf.Bytes(), nil
}

// decompress undoes a content coding.
func decompress(data []byte, encoding string) ([]byte, error) {
	var reader io.Reader

	switch encoding {
	case EncodingBrotli:
		reader = brotli.NewReader(bytes.NewReader(data))
	case EncodingGzip:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip header: %w", err)
		}
		defer gz.Close()
		reader = gz
	default:
		return data, nil
	}

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", encoding, err)
	}
	return decompressed, nil
}
