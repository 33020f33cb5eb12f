// Package static provides the embedded chat frontend.
package static

import (
	"embed"
	"net/http"
)

//go:embed index.html app.js style.css
var assetsFS embed.FS

// Handler serves the embedded assets; mount it behind /static/.
func Handler() http.Handler {
	return http.FileServer(http.FS(assetsFS))
}

// Index is the UI entrypoint, served at / and /ui.
func Index() []byte {
	b, _ := assetsFS.ReadFile("index.html")
	return b
}
