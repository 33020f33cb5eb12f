package routes

import (
	"beedu/beedu/static"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterUI attaches the embedded chat frontend to the root router.
func RegisterUI(r chi.Router) {
	index := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(static.Index())
	}
	r.Get("/", index)
	r.Get("/ui", index)
	r.Handle("/static/*", http.StripPrefix("/static/", static.Handler()))
}
