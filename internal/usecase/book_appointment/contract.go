package book_appointment

import (
	"context"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	// GetByID получает лида по ID (внутри транзакции - с блокировкой строки)
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	// FindActiveByIdentity ищет лида с активной будущей записью по email и телефону
	FindActiveByIdentity(ctx context.Context, email, phone string, now time.Time) (*domain.Lead, error)
	// FindBookedAt ищет лида, занимающего слот ровно в указанный момент
	FindBookedAt(ctx context.Context, instant time.Time) (*domain.Lead, error)
	// UpdateBooking фиксирует бронирование на строке лида
	UpdateBooking(ctx context.Context, l *domain.Lead) error
}

// PhoneNormalizer интерфейс нормализации телефонов в E.164
type PhoneNormalizer interface {
	Normalize(raw string, country string) (string, string, error)
}

// Notifier интерфейс отправки подтверждения бронирования
// Реализация сама решает, какие каналы задействовать
type Notifier interface {
	BookingConfirmed(ctx context.Context, l *domain.Lead)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
