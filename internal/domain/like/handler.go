package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/middleware"
	"github.com/forumhub/forum-api/internal/pkg/response"
)

// Handler handles like HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates like handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// TogglePost handles POST /posts/{id}/like
func (h *Handler) TogglePost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	result, err := h.service.TogglePost(r.Context(), userID, postID)
	if err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		default:
			log.Error().Err(err).Str("post_id", postID.String()).Msg("failed to toggle post like")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// ToggleComment handles POST /comments/{id}/like
func (h *Handler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	result, err := h.service.ToggleComment(r.Context(), userID, commentID)
	if err != nil {
		switch err {
		case ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		default:
			log.Error().Err(err).Str("comment_id", commentID.String()).Msg("failed to toggle comment like")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}
