package stats

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/pkg/response"
)

// Handler handles statistics HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates stats handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Overview handles GET /stats (staff only)
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load stats overview")
		response.InternalError(w)
		return
	}

	response.OK(w, overview)
}
