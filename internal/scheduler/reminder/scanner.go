package reminder

import (
	"context"
	"math"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// Scanner фоновый цикл напоминаний
// Периодически опрашивает БД и отправляет напоминания, попавшие в окно:
// запись в будущем и до нее осталось target +/- tolerance минут
// Флаг окна выставляется только после успешной доставки, поэтому
// каждое напоминание уходит не более одного раза
type Scanner struct {
	leadRepo     LeadRepository
	sender       ReminderSender
	pollInterval time.Duration
	tolerance    time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewScanner создает новый экземпляр сканера напоминаний
func NewScanner(
	leadRepo LeadRepository,
	sender ReminderSender,
	pollInterval time.Duration,
	tolerance time.Duration,
	logger Logger,
) *Scanner {
	return &Scanner{
		leadRepo:     leadRepo,
		sender:       sender,
		pollInterval: pollInterval,
		tolerance:    tolerance,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run запускает цикл до отмены контекста
// Первый проход выполняется сразу, дальше по тикеру
func (s *Scanner) Run(ctx context.Context) {
	s.logger.Info("ReminderScanner: started, poll=%s, tolerance=%s", s.pollInterval, s.tolerance)

	s.Scan(ctx)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ReminderScanner: stopped")
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan выполняет один проход: находит должные напоминания и отправляет их
func (s *Scanner) Scan(ctx context.Context) {
	now := s.timeProvider.Now()

	leads, err := s.leadRepo.ListPendingReminders(ctx, now)
	if err != nil {
		s.logger.Error("ReminderScanner: failed to list pending reminders: %v", err)
		return
	}

	sent := 0
	for _, l := range leads {
		sent += s.processLead(ctx, l, now)
	}

	if sent > 0 {
		s.logger.Info("ReminderScanner: scan complete, %d reminders sent", sent)
	}
}

// processLead проверяет лида по всем окнам напоминаний
func (s *Scanner) processLead(ctx context.Context, l *domain.Lead, now time.Time) int {
	if l.AppointmentTime == nil {
		return 0
	}

	sent := 0
	for _, w := range domain.ReminderWindows {
		if l.ReminderSent(w) {
			continue
		}

		if !windowDue(*l.AppointmentTime, now, w, s.tolerance) {
			continue
		}

		if err := s.sender.SendReminder(ctx, l, w); err != nil {
			// Флаг не трогаем: попробуем снова на следующем проходе,
			// пока момент не выпал из окна
			s.logger.Error("ReminderScanner: lead id=%d, window=%s: %v", l.ID, w.Label, err)
			continue
		}

		if err := s.leadRepo.SetReminderFlag(ctx, l.ID, w.Flag); err != nil {
			s.logger.Error("ReminderScanner: lead id=%d, failed to set flag %s: %v", l.ID, w.Flag, err)
			continue
		}

		l.MarkReminderSent(w)
		sent++
	}

	return sent
}

// windowDue проверяет попадание момента в окно напоминания:
// запись еще впереди, и до нее осталось target +/- tolerance
func windowDue(appointment, now time.Time, w domain.ReminderWindow, tolerance time.Duration) bool {
	diff := appointment.Sub(now).Minutes()
	if diff < 0 {
		return false
	}

	return math.Abs(diff-w.TargetMinutes) <= tolerance.Minutes()
}
