package report

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

// Handler handles report HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates report handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /reports
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	reporterID := middleware.GetUserID(r.Context())

	rep, err := h.service.Create(r.Context(), reporterID, &req)
	if err != nil {
		switch err {
		case ErrTargetRequired:
			response.BadRequest(w, "Provide exactly one of post_id and comment_id")
		case ErrTargetNotFound:
			response.NotFound(w, "Reported content not found")
		case ErrCannotReportOwn:
			response.BadRequest(w, "You cannot report your own content")
		case ErrAlreadyReported:
			response.Conflict(w, "You already reported this content")
		default:
			log.Error().Err(err).Msg("failed to create report")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewReportResponse(rep))
}

// List handles GET /reports (staff only)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := &ListFilter{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Limit:  limit,
	}

	reports, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reports")
		response.InternalError(w)
		return
	}

	items := make([]ReportResponse, 0, len(reports))
	for _, rep := range reports {
		items = append(items, NewReportResponse(rep))
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	response.WithMeta(w, items, response.Meta{
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Pages:   pages,
		HasNext: filter.Page < pages,
		HasPrev: filter.Page > 1,
	})
}

// Get handles GET /reports/{id} (staff only)
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	rep, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		default:
			log.Error().Err(err).Str("report_id", id.String()).Msg("failed to get report")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewReportResponse(rep))
}

// Resolve handles POST /reports/{id}/resolve (staff only)
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	h.closeReport(w, r, StatusResolved)
}

// Dismiss handles POST /reports/{id}/dismiss (staff only)
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.closeReport(w, r, StatusDismissed)
}

func (h *Handler) closeReport(w http.ResponseWriter, r *http.Request, status Status) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ResolveReportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return
		}
		if errors := validator.Validate(&req); errors != nil {
			response.ValidationError(w, errors)
			return
		}
	}

	staffID := middleware.GetUserID(r.Context())

	var rep *Report
	if status == StatusResolved {
		rep, err = h.service.Resolve(r.Context(), staffID, id, &req)
	} else {
		rep, err = h.service.Dismiss(r.Context(), staffID, id, &req)
	}
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case ErrAlreadyResolved:
			response.Conflict(w, "Report has already been handled")
		default:
			log.Error().Err(err).Str("report_id", id.String()).Msg("failed to close report")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewReportResponse(rep))
}
