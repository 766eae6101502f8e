package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	leadRepo "github.com/jals-dev/JALS-LeadService/internal/infra/storage/lead"
	"github.com/jals-dev/JALS-LeadService/pkg/ptr"
)

// UseCase use case для бронирования консультации на лида
type UseCase struct {
	leadRepo     LeadRepository
	phones       PhoneNormalizer
	notifier     Notifier
	txManager    TransactionManager
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	leadRepo LeadRepository,
	phones PhoneNormalizer,
	notifier Notifier,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) (*UseCase, error) {
	if _, err := time.LoadLocation(settings.CalendarTimezone); err != nil {
		return nil, fmt.Errorf("%w: load calendar timezone %q: %v", ErrInternal, settings.CalendarTimezone, err)
	}

	return &UseCase{
		leadRepo:     leadRepo,
		phones:       phones,
		notifier:     notifier,
		txManager:    txManager,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Execute выполняет use case бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// строка лида и конфликтующие строки блокируются до коммита
// Порядок проверок фиксирован: существование лида раньше валидации времени,
// поэтому несуществующий лид дает NotFound даже при кривом времени в запросе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookAppointment: lead=%d, time=%q", req.LeadID, req.AppointmentTime)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Lead
	var instant time.Time

	// 3. Выполняем проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем лида с блокировкой строки
		l, err := uc.leadRepo.GetByID(txCtx, req.LeadID)
		if err != nil {
			if errors.Is(err, leadRepo.ErrLeadNotFound) {
				uc.logger.Warn("BookAppointment: lead id=%d not found", req.LeadID)
				return ErrLeadNotFound
			}
			uc.logger.Error("BookAppointment: failed to get lead id=%d: %v", req.LeadID, err)
			return fmt.Errorf("%w: failed to get lead: %v", ErrInternal, err)
		}

		// 3.2. Без email и телефона бронирование невозможно
		if !l.HasContactInfo() {
			uc.logger.Warn("BookAppointment: lead id=%d has no contact info", req.LeadID)
			return ErrMissingContactInfo
		}

		// 3.3. Нормализуем телефон в E.164
		e164, region, err := uc.phones.Normalize(l.Phone, ptr.Deref(l.PhoneCountry, ""))
		if err != nil {
			uc.logger.Warn("BookAppointment: lead id=%d, phone %q: %v", req.LeadID, l.Phone, err)
			return fmt.Errorf("%w: %v", ErrInvalidPhone, err)
		}
		l.Phone = e164
		l.PhoneCountry = ptr.Ptr(region)

		// 3.4. Парсим момент записи и таймзону клиента
		instant, err = parseAppointmentTime(req)
		if err != nil {
			uc.logger.Warn("BookAppointment: lead id=%d, time %q: %v", req.LeadID, req.AppointmentTime, err)
			return err
		}

		// 3.5. Проверяем, что у клиента нет другой активной записи
		// Найденная строка блокируется до коммита
		_, err = uc.leadRepo.FindActiveByIdentity(txCtx, l.Email, l.Phone, now)
		if err == nil {
			uc.logger.Warn("BookAppointment: lead id=%d already has an active booking", req.LeadID)
			return ErrDuplicateActiveBooking
		}
		if !errors.Is(err, leadRepo.ErrLeadNotFound) {
			uc.logger.Error("BookAppointment: failed to check active bookings: %v", err)
			return fmt.Errorf("%w: failed to check active bookings: %v", ErrInternal, err)
		}

		// 3.6. Проверяем, что слот свободен
		// Конфликтующая строка блокируется до коммита
		_, err = uc.leadRepo.FindBookedAt(txCtx, instant)
		if err == nil {
			uc.logger.Warn("BookAppointment: slot %s is already booked", instant.Format(time.RFC3339))
			return ErrSlotConflict
		}
		if !errors.Is(err, leadRepo.ErrLeadNotFound) {
			uc.logger.Error("BookAppointment: failed to check slot conflict: %v", err)
			return fmt.Errorf("%w: failed to check slot conflict: %v", ErrInternal, err)
		}

		// 3.7. Фиксируем бронирование на строке лида
		l.AppointmentTime = ptr.Ptr(instant)
		l.AppointmentStatus = domain.AppointmentBooked
		l.ClientTimezone = ptr.Ptr(uc.resolveClientTimezone(req, l))
		l.PreferredContactMethod = resolveContactMethod(req, l)

		// Смена времени записи обнуляет флаги напоминаний
		l.Reminder24Sent = false
		l.Reminder1Sent = false
		l.Reminder15Sent = false

		if err := uc.leadRepo.UpdateBooking(txCtx, l); err != nil {
			uc.logger.Error("BookAppointment: failed to update lead id=%d: %v", req.LeadID, err)
			return fmt.Errorf("%w: failed to update lead: %v", ErrInternal, err)
		}

		result = l
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: lead id=%d booked for %s", result.ID, instant.Format(time.RFC3339))

	// 4. Подтверждение отправляется после коммита, вне транзакции
	uc.notifier.BookingConfirmed(ctx, result)

	return &Response{Lead: result}, nil
}

// resolveClientTimezone выбирает таймзону клиента:
// явная из запроса, затем сохраненная у лида, затем таймзона календаря
func (uc *UseCase) resolveClientTimezone(req *Request, l *domain.Lead) string {
	if req.ClientTimezone != nil && *req.ClientTimezone != "" {
		return *req.ClientTimezone
	}
	if l.ClientTimezone != nil && *l.ClientTimezone != "" {
		return *l.ClientTimezone
	}
	return uc.settings.CalendarTimezone
}

// resolveContactMethod выбирает способ связи:
// явный из запроса, затем сохраненный у лида, затем звонок
func resolveContactMethod(req *Request, l *domain.Lead) domain.ContactMethod {
	if req.ContactMethod != nil && *req.ContactMethod != "" {
		return domain.NormalizeContactMethod(*req.ContactMethod)
	}
	if l.PreferredContactMethod != "" {
		return l.PreferredContactMethod
	}
	return domain.ContactMethodCall
}
