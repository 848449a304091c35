package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers follow endpoints on the users router
func (h *Handler) Routes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Post("/{id}/follow", h.Toggle)
	r.Get("/{id}/followers", h.Followers)
	r.Get("/{id}/following", h.Following)
}
