package reminder

import (
	"context"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	// ListPendingReminders получает лидов с будущей записью и неотправленными напоминаниями
	ListPendingReminders(ctx context.Context, now time.Time) ([]*domain.Lead, error)
	// SetReminderFlag выставляет флаг отправленного напоминания
	SetReminderFlag(ctx context.Context, id int64, flag domain.ReminderFlagName) error
}

// ReminderSender интерфейс отправки напоминаний
type ReminderSender interface {
	SendReminder(ctx context.Context, l *domain.Lead, w domain.ReminderWindow) error
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
