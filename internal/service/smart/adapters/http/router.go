package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Router(srv *Server) http.Handler {
	r := chi.NewRouter()

	r.Post("/records/{recordID}/export", srv.ExportRecord)
	r.Get("/formats", srv.ListFormats)
	r.Get("/health", srv.GetHealthStatus)

	return r
}
