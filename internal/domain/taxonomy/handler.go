package taxonomy

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/pkg/response"
	"github.com/forumhub/forum-api/internal/pkg/validator"
)

// Handler handles taxonomy HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates taxonomy handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		response.InternalError(w)
		return
	}

	response.OK(w, categories)
}

// GetCategory handles GET /categories/{slug}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := h.service.GetCategory(r.Context(), slug)
	if err != nil {
		switch err {
		case ErrCategoryNotFound:
			response.NotFound(w, "Category not found")
		default:
			log.Error().Err(err).Str("slug", slug).Msg("failed to load category")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, category)
}

// CreateCategory handles POST /categories (staff only)
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrSlugTaken:
			response.Conflict(w, "A category with this name already exists")
		default:
			log.Error().Err(err).Str("name", req.Name).Msg("failed to create category")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, category)
}

// ListTags handles GET /tags
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list tags")
		response.InternalError(w)
		return
	}

	response.OK(w, tags)
}

// CreateTag handles POST /tags (staff only)
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	tag, err := h.service.CreateTag(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrSlugTaken:
			response.Conflict(w, "A tag with this name already exists")
		default:
			log.Error().Err(err).Str("name", req.Name).Msg("failed to create tag")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, tag)
}
