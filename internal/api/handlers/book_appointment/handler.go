package book_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
	bookAppointment "github.com/jals-dev/JALS-LeadService/internal/usecase/book_appointment"
	"github.com/jals-dev/JALS-LeadService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidLeadID      = "invalid lead id"
	msgLeadNotFound       = "lead not found"
	msgMissingContactInfo = "lead has no contact information"
	msgInvalidPhone       = "lead phone number is not a valid phone number"
	msgInvalidTime        = "invalid appointment time"
	msgDuplicateBooking   = "an active booking already exists for this client"
	msgSlotConflict       = "this slot has just been booked, please pick another"
)

type Handler struct {
	useCase BookAppointmentUseCase
	metrics *metrics.Metrics // может быть nil
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/leads/{id}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || leadID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLeadID)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /leads/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bookAppointment.Request{
		LeadID:          leadID,
		AppointmentTime: req.AppointmentTime,
		ClientTimezone:  req.ClientTimezone,
		ContactMethod:   req.ContactMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrLeadNotFound):
			h.logger.Warn("POST /leads/{id}/book - Lead not found: lead_id=%d", leadID)
			h.countBooking("rejected")
			handlers.RespondNotFound(w, msgLeadNotFound)

		case errors.Is(err, bookAppointment.ErrMissingContactInfo):
			h.logger.Warn("POST /leads/{id}/book - Missing contact info: lead_id=%d", leadID)
			h.countBooking("rejected")
			handlers.RespondBadRequest(w, msgMissingContactInfo)

		case errors.Is(err, bookAppointment.ErrInvalidPhone):
			h.logger.Warn("POST /leads/{id}/book - Invalid phone: lead_id=%d", leadID)
			h.countBooking("rejected")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, bookAppointment.ErrInvalidAppointmentTime):
			h.logger.Warn("POST /leads/{id}/book - Invalid appointment time: lead_id=%d, time=%q",
				leadID, req.AppointmentTime)
			h.countBooking("rejected")
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /leads/{id}/book - Validation failed: lead_id=%d: %v", leadID, err)
			h.countBooking("rejected")
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookAppointment.ErrDuplicateActiveBooking):
			h.logger.Warn("POST /leads/{id}/book - Duplicate active booking: lead_id=%d", leadID)
			h.countBooking("duplicate_active")
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /leads/{id}/book - Slot conflict: lead_id=%d, time=%q",
				leadID, req.AppointmentTime)
			h.countBooking("slot_conflict")
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		default:
			h.logger.Error("POST /leads/{id}/book - Failed to book: lead_id=%d, error=%v", leadID, err)
			h.countBooking("error")
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /leads/{id}/book - Appointment booked: lead_id=%d, time=%q",
		leadID, req.AppointmentTime)
	h.countBooking("booked")

	handlers.RespondJSON(w, http.StatusOK, LeadEnvelope{Lead: models.FromDomainLead(result.Lead)})
}

func (h *Handler) countBooking(result string) {
	if h.metrics != nil {
		h.metrics.BookingsTotal.WithLabelValues(result).Inc()
	}
}
