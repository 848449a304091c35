package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forumhub/forum-api/internal/middleware"
)

// Routes returns profile router mounted under /users
func (h *Handler) Routes(authMiddleware, optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth).Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireStaff())
		r.Get("/{id}/ban", h.GetBanState)
		r.Post("/{id}/ban", h.Ban)
		r.Post("/{id}/unban", h.Unban)
	})

	return r
}

// SelfRoutes returns router for the authenticated user's own profile,
// mounted under /profile
func (h *Handler) SelfRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Patch("/", h.Update)
	r.Post("/avatar", h.UploadAvatar)

	return r
}
