package get_available_slots

import (
	"context"
	"time"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	// GetBookedTimes получает занятые моменты записей в интервале [from, to]
	GetBookedTimes(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
