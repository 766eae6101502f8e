package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	return nil
}

// validateSettings проверяет согласованность календаря
func validateSettings(s Settings) error {
	if s.WorkDayStartHour >= s.WorkDayEndHour {
		return fmt.Errorf("%w: work day start hour must be before end hour", ErrInvalidInput)
	}

	if s.SlotIntervalMinutes <= 0 || s.ConsultationMinutes <= 0 {
		return fmt.Errorf("%w: slot interval and consultation duration must be positive", ErrInvalidInput)
	}

	return nil
}
