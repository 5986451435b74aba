package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/shopsight/internal/http/admin"
	"github.com/MrJamesThe3rd/shopsight/internal/http/analytics"
	"github.com/MrJamesThe3rd/shopsight/internal/http/auth"
	"github.com/MrJamesThe3rd/shopsight/internal/http/records"
)

func New(
	tokens *auth.TokenManager,
	authV1 *auth.Handler,
	recordsV1 *records.Handler,
	analyticsV1 *analytics.Handler,
	adminV1 *admin.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(tokens.Require)

			r.Route("/records", recordsV1.Routes)

			analyticsV1.Routes(r)

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				adminV1.Routes(r)
			})
		})
	})

	return router
}
