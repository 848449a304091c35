package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forumhub/forum-api/internal/middleware"
)

// Routes returns report router mounted under /reports
func (h *Handler) Routes(authMiddleware, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.With(rateLimit).Post("/", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireStaff())
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/resolve", h.Resolve)
		r.Post("/{id}/dismiss", h.Dismiss)
	})

	return r
}
