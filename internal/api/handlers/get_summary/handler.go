package get_summary

import (
	"net/http"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
)

type Handler struct {
	service LeadsService
	logger  Logger
}

func NewHandler(service LeadsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/stats/summary
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("GET /stats/summary - Failed to build summary: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
