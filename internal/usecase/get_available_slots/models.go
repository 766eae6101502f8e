package get_available_slots

import (
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// Settings рабочий календарь консультаций
type Settings struct {
	CalendarTimezone    string // IANA имя таймзоны календаря
	WorkDayStartHour    int    // час начала рабочего дня (включительно)
	WorkDayEndHour      int    // час конца рабочего дня (исключительно)
	SlotIntervalMinutes int    // шаг сетки слотов
	ConsultationMinutes int    // длительность консультации
}

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата календарного дня (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     time.Time     // Дата, на которую запрашивались слоты
	Timezone string        // Таймзона календаря
	Slots    []domain.Slot // Свободные слоты дня
}
