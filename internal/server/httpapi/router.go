package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the API surface. Everything is public for now; token
// checks belong to the callers consuming the access token, not this service.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/challenge", h.Challenge)
		r.Post("/login", h.Login)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.CreateAccount)
		r.Get("/{id}", h.GetAccount)
		r.Delete("/{id}", h.DeleteAccount)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Post("/", h.CreateTeam)
		r.Get("/{id}", h.GetTeam)
		r.Delete("/{id}", h.DeleteTeam)
		r.Route("/{id}/members", func(r chi.Router) {
			r.Get("/", h.ListMembers)
			r.Post("/", h.AddMember)
			r.Delete("/{accountID}", h.RemoveMember)
		})
	})

	return r
}
