package post

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

// Handler handles post HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates post handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func isStaff(r *http.Request) bool {
	role := middleware.GetRole(r.Context())
	return role == "moderator" || role == "admin"
}

// Create handles POST /posts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	authorID := middleware.GetUserID(r.Context())

	result, err := h.service.Create(r.Context(), authorID, &req)
	if err != nil {
		switch err {
		case ErrCategoryNotFound:
			response.BadRequest(w, "Category does not exist")
		case ErrTagNotFound:
			response.BadRequest(w, "One or more tags do not exist")
		default:
			log.Error().Err(err).Str("author_id", authorID.String()).Msg("failed to create post")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Get handles GET /posts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	result, err := h.service.Get(r.Context(), id, isStaff(r))
	if err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		default:
			log.Error().Err(err).Str("post_id", id.String()).Msg("failed to load post")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// List handles GET /posts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &ListFilter{
		CategorySlug: r.URL.Query().Get("category"),
		TagSlug:      r.URL.Query().Get("tag"),
		Search:       r.URL.Query().Get("q"),
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if author := r.URL.Query().Get("author_id"); author != "" {
		if id, err := uuid.Parse(author); err == nil {
			filter.AuthorID = id
		}
	}

	posts, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list posts")
		response.InternalError(w)
		return
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	response.WithMeta(w, posts, response.Meta{
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Pages:   pages,
		HasNext: filter.Page < pages,
		HasPrev: filter.Page > 1,
	})
}

// Update handles PATCH /posts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req UpdatePostRequest
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
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrNotPostAuthor:
			response.Forbidden(w, "Only the author can edit this post")
		case ErrPostNotActive:
			response.Conflict(w, "Deleted posts cannot be edited")
		case ErrTagNotFound:
			response.BadRequest(w, "One or more tags do not exist")
		default:
			log.Error().Err(err).Str("post_id", id.String()).Msg("failed to update post")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Delete handles DELETE /posts/{id} (author, within the grace window)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrNotPostAuthor:
			response.Forbidden(w, "Only the author can delete this post")
		case ErrAlreadyDeleted:
			response.Conflict(w, "Post is already deleted")
		case ErrDeleteWindowExpired:
			response.Forbidden(w, "Posts can only be self-deleted within 5 minutes of creation")
		default:
			log.Error().Err(err).Str("post_id", id.String()).Msg("failed to delete post")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// ModerateDelete handles DELETE /posts/{id}/moderate (staff only)
func (h *Handler) ModerateDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
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
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrAlreadyDeleted:
			response.Conflict(w, "Post is already deleted")
		case ErrDeleteReasonRequired:
			response.BadRequest(w, "A reason is required to remove a post")
		default:
			log.Error().Err(err).Str("post_id", id.String()).Msg("failed to moderate post")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Pin handles POST /posts/{id}/pin (staff only)
func (h *Handler) Pin(w http.ResponseWriter, r *http.Request) {
	h.setPinned(w, r, true)
}

// Unpin handles DELETE /posts/{id}/pin (staff only)
func (h *Handler) Unpin(w http.ResponseWriter, r *http.Request) {
	h.setPinned(w, r, false)
}

func (h *Handler) setPinned(w http.ResponseWriter, r *http.Request, pinned bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	if err := h.service.SetPinned(r.Context(), id, pinned); err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrPostNotActive:
			response.Conflict(w, "Deleted posts cannot be pinned")
		default:
			log.Error().Err(err).Str("post_id", id.String()).Msg("failed to toggle pin")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
