package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forumhub/forum-api/internal/middleware"
)

// PostRoutes returns the routes nested under /posts/{id}/comments
func (h *Handler) PostRoutes(authMiddleware, optionalAuth, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth).Get("/", h.ListForPost)
	r.With(authMiddleware, rateLimit).Post("/", h.Create)

	return r
}

// Routes returns comment router mounted under /comments
func (h *Handler) Routes(authMiddleware, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(rateLimit).Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireStaff())
		r.Delete("/{id}/moderate", h.ModerateDelete)
	})

	return r
}
