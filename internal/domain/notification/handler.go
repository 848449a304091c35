package notification

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/middleware"
	"github.com/forumhub/forum-api/internal/pkg/response"
)

// Handler handles notification HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /notifications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.service.List(r.Context(), userID, unreadOnly, page, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list notifications")
		response.InternalError(w)
		return
	}

	response.OK(w, notifications)
}

// UnreadCount handles GET /notifications/unread
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to count unread notifications")
		response.InternalError(w)
		return
	}

	response.OK(w, UnreadCountResponse{UnreadCount: count})
}

// MarkRead handles POST /notifications/{id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := h.service.MarkAsRead(r.Context(), userID, id); err != nil {
		switch err {
		case ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		case ErrNotRecipient:
			response.Forbidden(w, "Not your notification")
		default:
			log.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// MarkAllRead handles POST /notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	marked, err := h.service.MarkAllAsRead(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to mark all notifications read")
		response.InternalError(w)
		return
	}

	response.OK(w, MarkAllReadResponse{Marked: marked})
}
