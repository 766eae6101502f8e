package book_appointment

import (
	"fmt"
	"time"
)

// validateRequest валидирует форму запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.LeadID <= 0 {
		return fmt.Errorf("%w: lead id must be positive", ErrInvalidInput)
	}

	return nil
}

// parseAppointmentTime парсит момент записи и таймзону клиента
// Принимается любой корректный RFC3339 момент: сетку слотов контролирует
// виджет бронирования, сервер проверяет только занятость точного момента
func parseAppointmentTime(req *Request) (time.Time, error) {
	if req.AppointmentTime == "" {
		return time.Time{}, fmt.Errorf("%w: appointment time is required", ErrInvalidAppointmentTime)
	}

	instant, err := time.Parse(time.RFC3339, req.AppointmentTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidAppointmentTime, err)
	}

	if req.ClientTimezone != nil {
		if _, err := time.LoadLocation(*req.ClientTimezone); err != nil {
			return time.Time{}, fmt.Errorf("%w: unknown client timezone %q", ErrInvalidInput, *req.ClientTimezone)
		}
	}

	return instant, nil
}
