package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forumhub/forum-api/internal/middleware"
)

// Routes returns stats router mounted under /stats
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())
	r.Get("/", h.Overview)

	return r
}
