// Package web embeds the server-rendered page templates.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates
var templateFS embed.FS

// Templates returns the page templates rooted at the templates directory.
func Templates() http.FileSystem {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
