package book_appointment

import "github.com/jals-dev/JALS-LeadService/internal/service/leads/models"

// BookAppointmentRequest HTTP request model
// Ключи в camelCase: запрос приходит из виджета бронирования
type BookAppointmentRequest struct {
	AppointmentTime string  `json:"appointmentTime"` // RFC3339
	ClientTimezone  *string `json:"clientTimezone,omitempty"`
	ContactMethod   *string `json:"contactMethod,omitempty"`
}

// LeadEnvelope HTTP response model
type LeadEnvelope struct {
	Lead *models.LeadResponse `json:"lead"`
}
