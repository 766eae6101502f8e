package get_available_slots

import (
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// dayWindow возвращает границы рабочего дня в таймзоне календаря
// Начало включительно, конец - момент, позже которого консультация не помещается
func dayWindow(date time.Time, loc *time.Location, s Settings) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), s.WorkDayStartHour, 0, 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), s.WorkDayEndHour, 0, 0, 0, loc)
	return start, end
}

// generateTimeSlots генерирует сетку слотов рабочего дня
// Слоты идут от начала дня с фиксированным шагом, слот попадает в сетку,
// только если консультация целиком помещается до конца рабочего дня
// Слоты строго раньше cutoff отбрасываются, слот ровно в cutoff остается;
// нулевой cutoff отключает фильтр (запрошен не сегодняшний день)
func generateTimeSlots(dayStart, dayEnd, cutoff time.Time, s Settings) []time.Time {
	interval := time.Duration(s.SlotIntervalMinutes) * time.Minute
	consultation := time.Duration(s.ConsultationMinutes) * time.Minute

	slots := make([]time.Time, 0)
	for cursor := dayStart; !cursor.Add(consultation).After(dayEnd); cursor = cursor.Add(interval) {
		if !cutoff.IsZero() && cursor.Before(cutoff) {
			continue
		}
		slots = append(slots, cursor)
	}

	return slots
}

// sameCalendarDay проверяет, что оба момента приходятся на один день календаря
func sameCalendarDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// filterBooked исключает из сетки слоты, занятые активными записями
// Совпадение проверяется по точному моменту начала слота
func filterBooked(slots []time.Time, booked []time.Time) []time.Time {
	if len(booked) == 0 {
		return slots
	}

	free := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		taken := false
		for _, b := range booked {
			if slot.Equal(b) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}

	return free
}

// buildSlots переводит моменты сетки в доменные слоты с метками времени
func buildSlots(starts []time.Time, loc *time.Location) []domain.Slot {
	slots := make([]domain.Slot, len(starts))
	for i, start := range starts {
		slots[i] = domain.Slot{
			StartUTC:   start.UTC(),
			StartLabel: start.In(loc).Format(domain.TimeLabelFormat),
		}
	}
	return slots
}
