package leads

import (
	"context"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, int64, error)
	Update(ctx context.Context, id int64, upd domain.LeadUpdate) (*domain.Lead, error)
	Summary(ctx context.Context, since time.Time) (*domain.LeadSummary, error)
}

// PhoneNormalizer приводит телефон к каноничному E.164 виду
// Возвращает нормализованный номер и код страны
type PhoneNormalizer interface {
	Normalize(raw, country string) (string, string, error)
}

// Notifier интерфейс уведомлений о новых лидах
// Реализация сама решает, какие каналы задействовать
type Notifier interface {
	LeadCreated(ctx context.Context, l *domain.Lead)
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
