package comment

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

// Handler handles comment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates comment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func isStaff(r *http.Request) bool {
	role := middleware.GetRole(r.Context())
	return role == "moderator" || role == "admin"
}

// Create handles POST /posts/{id}/comments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	authorID := middleware.GetUserID(r.Context())

	result, err := h.service.Create(r.Context(), authorID, postID, &req)
	if err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrParentNotFound:
			response.BadRequest(w, "Parent comment not found")
		case ErrParentWrongPost:
			response.BadRequest(w, "Parent comment belongs to another post")
		case ErrNestingTooDeep:
			response.BadRequest(w, "Replies to replies are not allowed")
		default:
			log.Error().Err(err).Str("post_id", postID.String()).Msg("failed to create comment")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// ListForPost handles GET /posts/{id}/comments
func (h *Handler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	result, err := h.service.ListForPost(r.Context(), postID, isStaff(r))
	if err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		default:
			log.Error().Err(err).Str("post_id", postID.String()).Msg("failed to list comments")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Update handles PATCH /comments/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())

	result, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		switch err {
		case ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case ErrNotCommentAuthor:
			response.Forbidden(w, "Only the author can edit this comment")
		case ErrAlreadyDeleted:
			response.Conflict(w, "Deleted comments cannot be edited")
		default:
			log.Error().Err(err).Str("comment_id", id.String()).Msg("failed to update comment")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Delete handles DELETE /comments/{id} (author, within the grace window)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		switch err {
		case ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case ErrNotCommentAuthor:
			response.Forbidden(w, "Only the author can delete this comment")
		case ErrAlreadyDeleted:
			response.Conflict(w, "Comment is already deleted")
		case ErrDeleteWindowExpired:
			response.Forbidden(w, "Comments can only be self-deleted within 5 minutes of creation")
		default:
			log.Error().Err(err).Str("comment_id", id.String()).Msg("failed to delete comment")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// ModerateDelete handles DELETE /comments/{id}/moderate (staff only)
func (h *Handler) ModerateDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	var req ModerateDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	staffID := middleware.GetUserID(r.Context())

	if err := h.service.ModerateDelete(r.Context(), staffID, id, &req); err != nil {
		switch err {
		case ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case ErrAlreadyDeleted:
			response.Conflict(w, "Comment is already deleted")
		case ErrDeleteReasonRequired:
			response.BadRequest(w, "A reason is required to remove a comment")
		default:
			log.Error().Err(err).Str("comment_id", id.String()).Msg("failed to moderate comment")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
