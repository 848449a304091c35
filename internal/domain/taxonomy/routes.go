package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forumhub/forum-api/internal/middleware"
)

// CategoryRoutes returns router mounted under /categories
func (h *Handler) CategoryRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.Get("/{slug}", h.GetCategory)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireStaff())
		r.Post("/", h.CreateCategory)
	})

	return r
}

// TagRoutes returns router mounted under /tags
func (h *Handler) TagRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListTags)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireStaff())
		r.Post("/", h.CreateTag)
	})

	return r
}
