// internal/httpapi/router.go
//
// Route table and middleware chain for the portfolio API.
//
// Context
// -------
// One router serves three surfaces:
//
//   - GET  /                          – liveness probe for uptime monitors,
//   - GET  /metrics                   – Prometheus scrape endpoint,
//   - /api/contact, /api/admin/…      – the JSON API proper.
//
// Middleware order matters: redirect-to-HTTPS (optional) runs first so
// nothing else sees plain-HTTP traffic, then CORS and security headers,
// then request enrichment, then routing.  StripSlashes keeps the frontend's
// trailing-slash URLs (`/api/contact/`) landing on the same handlers.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abasuthakur/portfolio-api/internal/auth"
	"github.com/abasuthakur/portfolio-api/internal/config"
	"github.com/abasuthakur/portfolio-api/internal/middleware"
	"github.com/abasuthakur/portfolio-api/internal/requestinfo"
)

// NewRouter assembles the full handler chain.
func NewRouter(cfg *config.Config, contactH *ContactHandler, adminH *AdminHandler, signer *auth.Signer) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)
	r.Use(chimw.Recoverer)

	// Liveness probe.
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Portfolio API is running",
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/contact", contactH.handleSubmit)

		api.Route("/admin", func(adm chi.Router) {
			adm.Post("/login", adminH.handleLogin)

			adm.Group(func(protected chi.Router) {
				protected.Use(signer.Require)
				protected.Get("/contact-messages", adminH.handleList)
				protected.Get("/contact-messages/{id}", adminH.handleGet)
				protected.Put("/contact-messages/{id}", adminH.handleUpdate)
				protected.Delete("/contact-messages/{id}", adminH.handleDelete)
			})
		})
	})

	var h http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		h = middleware.ForceHTTPS(h)
	}
	return h
}
