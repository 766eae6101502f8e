package get_lead

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
	msgInvalidLeadID = "invalid lead id"
	msgLeadNotFound  = "lead not found"
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

// Handle GET /api/leads/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || leadID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLeadID)
		return
	}

	result, err := h.service.GetByID(r.Context(), leadID)
	if err != nil {
		switch {
		case errors.Is(err, leadsService.ErrLeadNotFound):
			h.logger.Warn("GET /leads/{id} - Lead not found: lead_id=%d", leadID)
			handlers.RespondNotFound(w, msgLeadNotFound)

		default:
			h.logger.Error("GET /leads/{id} - Failed to get lead: lead_id=%d, error=%v", leadID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, LeadEnvelope{Lead: result})
}
