package get_available_slots

import (
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	getAvailableSlots "github.com/jals-dev/JALS-LeadService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartUTC     string `json:"start_utc"`      // RFC3339, UTC
	StartUKLabel string `json:"start_uk_label"` // HH:MM в таймзоне календаря
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartUTC:     s.StartUTC.Format(time.RFC3339),
			StartUKLabel: s.StartLabel,
		}
	}

	return &SlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Timezone: resp.Timezone,
		Slots:    slots,
	}
}
