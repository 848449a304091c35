package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forumhub/forum-api/internal/middleware"
)

// Routes returns post router mounted under /posts
func (h *Handler) Routes(authMiddleware, optionalAuth, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads, viewer-aware when a token is present
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})

	// Authenticated writes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(rateLimit)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	// Staff actions
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireStaff())
		r.Delete("/{id}/moderate", h.ModerateDelete)
		r.Post("/{id}/pin", h.Pin)
		r.Delete("/{id}/pin", h.Unpin)
	})

	return r
}
