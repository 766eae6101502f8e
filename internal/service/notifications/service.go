package notifications

import (
	"context"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	"github.com/jals-dev/JALS-LeadService/pkg/metrics"
)

// Service сервис уведомлений: письма и SMS лидам, оповещения администратору
// Каналы опциональны: nil-отправитель означает, что канал выключен
type Service struct {
	mail             EmailSender
	sms              SMSSender
	adminEmail       string
	autoreply        bool
	fallbackTimezone string
	dispatchTimeout  time.Duration
	metrics          *metrics.Metrics
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	mail EmailSender,
	sms SMSSender,
	adminEmail string,
	autoreply bool,
	fallbackTimezone string,
	dispatchTimeout time.Duration,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		mail:             mail,
		sms:              sms,
		adminEmail:       adminEmail,
		autoreply:        autoreply,
		fallbackTimezone: fallbackTimezone,
		dispatchTimeout:  dispatchTimeout,
		metrics:          m,
		logger:           logger,
	}
}

// LeadCreated оповещает администратора о новом лиде и, если включено,
// отправляет лиду автоответ. Выполняется в фоне, ошибки только логируются
func (s *Service) LeadCreated(_ context.Context, l *domain.Lead) {
	go func() {
		if s.mail == nil {
			s.logger.Warn("LeadCreated: mail channel disabled, lead id=%d not announced", l.ID)
			return
		}

		if s.adminEmail != "" {
			if err := s.mail.Send(s.adminEmail, newLeadSubject(l), newLeadEmailBody(l)); err != nil {
				s.logger.Error("LeadCreated: admin notification for lead id=%d failed: %v", l.ID, err)
				s.countFailure("email")
			}
		}

		if s.autoreply {
			if err := s.mail.Send(l.Email, autoreplySubject(), autoreplyBody(l)); err != nil {
				s.logger.Error("LeadCreated: autoreply to lead id=%d failed: %v", l.ID, err)
				s.countFailure("email")
			}
		}
	}()
}

// BookingConfirmed отправляет лиду подтверждение бронирования по всем
// настроенным каналам. Выполняется в фоне, ошибки только логируются
func (s *Service) BookingConfirmed(_ context.Context, l *domain.Lead) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
		defer cancel()

		when := formatAppointment(l, s.fallbackTimezone)

		if s.mail != nil {
			if err := s.mail.Send(l.Email, confirmationSubject(), confirmationEmailBody(l, when)); err != nil {
				s.logger.Error("BookingConfirmed: email to lead id=%d failed: %v", l.ID, err)
				s.countFailure("email")
			}
		}

		if s.sms != nil {
			if err := s.sms.Send(ctx, l.Phone, confirmationSMSBody(l, when)); err != nil {
				s.logger.Error("BookingConfirmed: sms to lead id=%d failed: %v", l.ID, err)
				s.countFailure("sms")
			}
		}

		if s.mail != nil && s.adminEmail != "" {
			if err := s.mail.Send(s.adminEmail, bookingAlertSubject(l), bookingAlertBody(l, when)); err != nil {
				s.logger.Error("BookingConfirmed: admin alert for lead id=%d failed: %v", l.ID, err)
				s.countFailure("email")
			}
		}

		if s.mail == nil && s.sms == nil {
			s.logger.Warn("BookingConfirmed: no channels configured, lead id=%d not notified", l.ID)
		}
	}()
}

// SendReminder отправляет напоминание о консультации
// Успех - доставка хотя бы по одному настроенному каналу;
// вызывающая сторона выставляет флаг только при успехе
func (s *Service) SendReminder(ctx context.Context, l *domain.Lead, w domain.ReminderWindow) error {
	if s.mail == nil && s.sms == nil {
		return ErrNoChannels
	}

	ctx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	when := formatAppointment(l, s.fallbackTimezone)
	delivered := false

	if s.mail != nil {
		if err := s.mail.Send(l.Email, reminderSubject(w), reminderEmailBody(l, w, when)); err != nil {
			s.logger.Error("SendReminder: email to lead id=%d failed: %v", l.ID, err)
			s.countFailure("email")
		} else {
			delivered = true
		}
	}

	if s.sms != nil {
		if err := s.sms.Send(ctx, l.Phone, reminderSMSBody(l, w, when)); err != nil {
			s.logger.Error("SendReminder: sms to lead id=%d failed: %v", l.ID, err)
			s.countFailure("sms")
		} else {
			delivered = true
		}
	}

	if !delivered {
		return ErrDeliveryFailed
	}

	if s.metrics != nil {
		s.metrics.RemindersSentTotal.WithLabelValues(windowMetricLabel(w)).Inc()
	}

	s.logger.Info("SendReminder: lead id=%d, window=%s delivered", l.ID, windowMetricLabel(w))
	return nil
}

func (s *Service) countFailure(channel string) {
	if s.metrics != nil {
		s.metrics.NotificationFailuresTotal.WithLabelValues(channel).Inc()
	}
}
