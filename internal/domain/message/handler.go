package message

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/middleware"
	"github.com/forumhub/forum-api/internal/pkg/response"
	"github.com/forumhub/forum-api/internal/pkg/validator"
)

// Handler handles private message HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates message handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Send handles POST /messages/{userID}
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	recipientID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	senderID := middleware.GetUserID(r.Context())

	m, err := h.service.Send(r.Context(), senderID, recipientID, &req)
	if err != nil {
		switch err {
		case ErrCannotMessageSelf:
			response.BadRequest(w, "You cannot message yourself")
		case ErrRecipientNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().
				Err(err).
				Str("recipient_id", recipientID.String()).
				Msg("failed to send message")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewMessageResponse(m))
}

// Conversations handles GET /messages
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.service.Conversations(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list conversations")
		response.InternalError(w)
		return
	}

	items := make([]ConversationResponse, 0, len(summaries))
	for _, c := range summaries {
		items = append(items, NewConversationResponse(c))
	}

	response.OK(w, items)
}

// Conversation handles GET /messages/{userID}
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	peerID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	userID := middleware.GetUserID(r.Context())

	messages, err := h.service.Conversation(r.Context(), userID, peerID, limit, offset)
	if err != nil {
		switch err {
		case ErrRecipientNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().
				Err(err).
				Str("peer_id", peerID.String()).
				Msg("failed to load conversation")
			response.InternalError(w)
		}
		return
	}

	items := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, NewMessageResponse(m))
	}

	response.OK(w, items)
}

// UnreadCount handles GET /messages/unread
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to count unread messages")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]int{"unread_count": count})
}
