package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PostRoutes registers the like toggle on the posts router
func (h *Handler) PostRoutes(r chi.Router, authMiddleware, rateLimit func(http.Handler) http.Handler) {
	r.With(authMiddleware, rateLimit).Post("/{id}/like", h.TogglePost)
}

// CommentRoutes registers the like toggle on the comments router
func (h *Handler) CommentRoutes(r chi.Router, authMiddleware, rateLimit func(http.Handler) http.Handler) {
	r.With(authMiddleware, rateLimit).Post("/{id}/like", h.ToggleComment)
}
