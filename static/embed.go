// Package staticfiles embeds the admin page's css and js so the compiled
// server binary is self-contained. Hosts can swap in a disk-backed handler
// during development.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}
