// Package static serves the client bundle: the root document for "/", every
// other file by its path relative to the bundle root.
package static

import (
	"embed"
	"io/fs"
)

// Frontend contains the built client bundle. index.html, styles.css and
// boot.js are checked in; main.wasm and wasm_exec.js are produced by `make wasm`.
//
//go:embed frontend/*
var Frontend embed.FS

// Bundle returns the embedded bundle rooted at its frontend directory.
func Bundle() fs.FS {
	fsys, err := fs.Sub(Frontend, "frontend")
	if err != nil {
		// Fallback to the root if frontend subdirectory doesn't exist
		return Frontend
	}
	return fsys
}
