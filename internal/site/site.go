// Package site serves the generated report pages for local preview.
package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
)

// NewRouter creates a read-only static file router over the docs directory.
func NewRouter(docsDir string, allowOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5)) // gzip

	c := corslib.New(corslib.Options{
		AllowedOrigins:   allowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Cache-Control"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	fs := http.FileServer(http.Dir(docsDir))
	r.Handle("/*", fs)
	return r
}
