package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns message router mounted under /messages
func (h *Handler) Routes(authMiddleware, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.Conversations)
	r.Get("/unread", h.UnreadCount)
	r.Get("/{userID}", h.Conversation)
	r.With(rateLimit).Post("/{userID}", h.Send)

	return r
}
