package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
	"github.com/jals-dev/JALS-LeadService/internal/domain"
	getAvailableSlots "github.com/jals-dev/JALS-LeadService/internal/usecase/get_available_slots"
)

const msgInvalidDate = "invalid date format, expected YYYY-MM-DD"

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/leads/slots?date=YYYY-MM-DD
// Без параметра date отдаются слоты на сегодня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var date time.Time

	rawDate := r.URL.Query().Get("date")
	if rawDate != "" {
		var err error
		date, err = time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /leads/slots - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /leads/slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /leads/slots - Failed to get slots: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
