package create_lead

import (
	"errors"
	"net/http"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
	leadsService "github.com/jals-dev/JALS-LeadService/internal/service/leads"
	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
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

// Handle POST /api/leads
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /leads - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, leadsService.ErrInvalidInput):
			h.logger.Warn("POST /leads - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /leads - Failed to create lead: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /leads - Lead created: lead_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, LeadEnvelope{Lead: result})
}
