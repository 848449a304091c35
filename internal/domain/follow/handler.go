package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/middleware"
	"github.com/forumhub/forum-api/internal/pkg/response"
)

// Handler handles follow HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates follow handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Toggle handles POST /users/{id}/follow
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	followeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	followerID := middleware.GetUserID(r.Context())

	result, err := h.service.Toggle(r.Context(), followerID, followeeID)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		case ErrCannotFollowSelf:
			response.BadRequest(w, "You cannot follow yourself")
		default:
			log.Error().Err(err).Str("followee_id", followeeID.String()).Msg("failed to toggle follow")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Followers handles GET /users/{id}/followers
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	followers, err := h.service.Followers(r.Context(), userID)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list followers")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, followers)
}

// Following handles GET /users/{id}/following
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	following, err := h.service.Following(r.Context(), userID)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list following")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, following)
}
