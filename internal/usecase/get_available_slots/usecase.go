package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// UseCase use case для получения доступных слотов консультаций на день
type UseCase struct {
	leadRepo     LeadRepository
	settings     Settings
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// Таймзона календаря загружается один раз при создании
func NewUseCase(leadRepo LeadRepository, settings Settings, logger Logger) (*UseCase, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(settings.CalendarTimezone)
	if err != nil {
		return nil, fmt.Errorf("%w: load calendar timezone %q: %v", ErrInternal, settings.CalendarTimezone, err)
	}

	return &UseCase{
		leadRepo:     leadRepo,
		settings:     settings,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Без явной даты показываем сегодняшний день календаря
	date := req.Date
	if date.IsZero() {
		today := now.In(uc.location)
		date = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, uc.location)
	}

	uc.logger.Info("GetAvailableSlots: date=%s", date.Format(domain.DateFormat))

	// 4. Строим границы рабочего дня в таймзоне календаря
	dayStart, dayEnd := dayWindow(date, uc.location, uc.settings)

	// 5. Генерируем сетку слотов; прошедшие слоты отбрасываются только для сегодня
	cutoff := time.Time{}
	if sameCalendarDay(date, now, uc.location) {
		cutoff = now
	}
	grid := generateTimeSlots(dayStart, dayEnd, cutoff, uc.settings)

	// 6. Получаем занятые моменты дня и исключаем их из сетки
	booked, err := uc.leadRepo.GetBookedTimes(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	free := filterBooked(grid, booked)

	uc.logger.Info("GetAvailableSlots: date=%s, grid=%d, booked=%d, free=%d",
		date.Format(domain.DateFormat), len(grid), len(booked), len(free))

	return &Response{
		Date:     date,
		Timezone: uc.settings.CalendarTimezone,
		Slots:    buildSlots(free, uc.location),
	}, nil
}
