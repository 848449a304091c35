package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/middleware"
	"github.com/forumhub/forum-api/internal/pkg/response"
	"github.com/forumhub/forum-api/internal/pkg/validator"
)

// Handler handles profile HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates profile handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	viewerIsStaff := middleware.GetRole(r.Context()) == "moderator" || middleware.GetRole(r.Context()) == "admin"

	profile, err := h.service.GetProfile(r.Context(), targetID, viewerID, viewerIsStaff)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", targetID.String()).Msg("failed to load profile")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, profile)
}

// Update handles PATCH /profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update profile")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, profile)
}

// UploadAvatar handles POST /profile/avatar
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Missing avatar file")
		return
	}
	defer file.Close()

	userID := middleware.GetUserID(r.Context())

	result, err := h.service.UploadAvatar(r.Context(), userID, file)
	if err != nil {
		switch err {
		case ErrInvalidAvatar:
			response.BadRequest(w, "File must be a valid image under 5MB")
		case ErrProfileNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to upload avatar")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Ban handles POST /users/{id}/ban (staff only)
func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	actorID := middleware.GetUserID(r.Context())

	if err := h.service.Ban(r.Context(), actorID, targetID, &req); err != nil {
		switch err {
		case ErrProfileNotFound:
			response.NotFound(w, "User not found")
		case ErrCannotBanSelf:
			response.BadRequest(w, "You cannot ban yourself")
		case ErrCannotBanStaff:
			response.Forbidden(w, "Staff members cannot be banned")
		case ErrInvalidBanKind:
			response.BadRequest(w, "Ban kind must be 'temporary' or 'permanent'")
		case ErrInvalidBanDuration:
			response.BadRequest(w, "Duration must be 1, 3, 7, 30 or 90 days")
		case ErrBanReasonRequired:
			response.BadRequest(w, "Ban reason is required")
		default:
			log.Error().Err(err).
				Str("target_id", targetID.String()).
				Str("actor_id", actorID.String()).
				Msg("failed to ban user")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Unban handles POST /users/{id}/unban (staff only)
func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())

	if err := h.service.Unban(r.Context(), actorID, targetID); err != nil {
		switch err {
		case ErrProfileNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).
				Str("target_id", targetID.String()).
				Str("actor_id", actorID.String()).
				Msg("failed to unban user")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// GetBanState handles GET /users/{id}/ban (staff only)
func (h *Handler) GetBanState(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	state, err := h.service.GetBanState(r.Context(), targetID)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", targetID.String()).Msg("failed to load ban state")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, state)
}
