package update_lead

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
	leadsService "github.com/jals-dev/JALS-LeadService/internal/service/leads"
	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidLeadID      = "invalid lead id"
	msgLeadNotFound       = "lead not found"
)

// LeadEnvelope HTTP response model
type LeadEnvelope struct {
	Lead *models.LeadResponse `json:"lead"`
}

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

// Handle PATCH /api/leads/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || leadID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLeadID)
		return
	}

	var req models.UpdateLeadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /leads/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), leadID, &req)
	if err != nil {
		switch {
		case errors.Is(err, leadsService.ErrLeadNotFound):
			h.logger.Warn("PATCH /leads/{id} - Lead not found: lead_id=%d", leadID)
			handlers.RespondNotFound(w, msgLeadNotFound)

		case errors.Is(err, leadsService.ErrInvalidStatus),
			errors.Is(err, leadsService.ErrInvalidInput):
			h.logger.Warn("PATCH /leads/{id} - Validation failed: lead_id=%d: %v", leadID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /leads/{id} - Failed to update lead: lead_id=%d, error=%v", leadID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /leads/{id} - Lead updated: lead_id=%d", leadID)
	handlers.RespondJSON(w, http.StatusOK, LeadEnvelope{Lead: result})
}
