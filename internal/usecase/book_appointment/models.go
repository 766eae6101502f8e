package book_appointment

import "github.com/jals-dev/JALS-LeadService/internal/domain"

// Settings настройки бронирования
type Settings struct {
	CalendarTimezone string // IANA имя таймзоны календаря, дефолт для client_timezone
}

// Request модель запроса на бронирование консультации
type Request struct {
	LeadID          int64   // ID лида
	AppointmentTime string  // момент начала слота, RFC3339
	ClientTimezone  *string // таймзона клиента для напоминаний (опционально)
	ContactMethod   *string // предпочитаемый способ связи (опционально)
}

// Response модель ответа с обновленным лидом
type Response struct {
	Lead *domain.Lead
}
