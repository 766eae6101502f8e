package list_leads

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
	leadsService "github.com/jals-dev/JALS-LeadService/internal/service/leads"
	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

const (
	msgInvalidPage  = "invalid page parameter"
	msgInvalidLimit = "invalid limit parameter"
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

// Handle GET /api/leads?status=&search=&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &models.ListLeadsRequest{}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	if search := q.Get("search"); search != "" {
		req.Search = &search
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			handlers.RespondBadRequest(w, msgInvalidPage)
			return
		}
		req.Page = page
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, leadsService.ErrInvalidStatus),
			errors.Is(err, leadsService.ErrInvalidInput):
			h.logger.Warn("GET /leads - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /leads - Failed to list leads: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
