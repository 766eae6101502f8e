package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLeadRepo struct {
	booked []time.Time
	err    error

	gotFrom time.Time
	gotTo   time.Time
}

func (s *stubLeadRepo) GetBookedTimes(_ context.Context, from, to time.Time) ([]time.Time, error) {
	s.gotFrom = from
	s.gotTo = to
	return s.booked, s.err
}

type stubTimeProvider struct {
	now time.Time
}

func (s *stubTimeProvider) Now() time.Time {
	return s.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_FreeDayReturnsFullGrid(t *testing.T) {
	loc := londonLocation(t)
	repo := &stubLeadRepo{}

	uc, err := NewUseCase(repo, defaultSettings(), nopLogger{})
	require.NoError(t, err)
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 13, 12, 0, 0, 0, loc)}

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 9, 14, 0, 0, 0, 0, loc),
	})

	require.NoError(t, err)
	assert.Equal(t, "Europe/London", resp.Timezone)
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, "08:00", resp.Slots[0].StartLabel)
	assert.Equal(t, "17:20", resp.Slots[14].StartLabel)

	// Репозиторий опрашивается границами рабочего дня
	assert.Equal(t, time.Date(2026, 9, 14, 8, 0, 0, 0, loc).UTC(), repo.gotFrom.UTC())
	assert.Equal(t, time.Date(2026, 9, 14, 18, 0, 0, 0, loc).UTC(), repo.gotTo.UTC())
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	loc := londonLocation(t)
	repo := &stubLeadRepo{
		booked: []time.Time{time.Date(2026, 9, 14, 8, 40, 0, 0, loc).UTC()},
	}

	uc, err := NewUseCase(repo, defaultSettings(), nopLogger{})
	require.NoError(t, err)
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 13, 12, 0, 0, 0, loc)}

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 9, 14, 0, 0, 0, 0, loc),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 14)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, "08:40", slot.StartLabel)
	}
}

func TestExecute_PastDateReturnsFullGrid(t *testing.T) {
	loc := londonLocation(t)
	repo := &stubLeadRepo{}

	uc, err := NewUseCase(repo, defaultSettings(), nopLogger{})
	require.NoError(t, err)

	// Фильтр прошедших слотов действует только для сегодняшнего дня
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 20, 12, 0, 0, 0, loc)}

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 9, 14, 0, 0, 0, 0, loc),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 15)
}

func TestExecute_ZeroDateDefaultsToToday(t *testing.T) {
	loc := londonLocation(t)
	repo := &stubLeadRepo{}

	uc, err := NewUseCase(repo, defaultSettings(), nopLogger{})
	require.NoError(t, err)
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 14, 10, 0, 0, 0, loc)}

	resp, err := uc.Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-14", resp.Date.Format("2006-01-02"))

	// День сегодняшний, прошедшие слоты отброшены; слот ровно в now остается
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "10:00", resp.Slots[0].StartLabel)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	loc := londonLocation(t)
	repo := &stubLeadRepo{err: errors.New("connection refused")}

	uc, err := NewUseCase(repo, defaultSettings(), nopLogger{})
	require.NoError(t, err)
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 13, 12, 0, 0, 0, loc)}

	_, err = uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 9, 14, 0, 0, 0, 0, loc),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestNewUseCase_UnknownTimezone(t *testing.T) {
	settings := defaultSettings()
	settings.CalendarTimezone = "Nowhere/Unknown"

	_, err := NewUseCase(&stubLeadRepo{}, settings, nopLogger{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestNewUseCase_InvalidCalendar(t *testing.T) {
	settings := defaultSettings()
	settings.WorkDayStartHour = 18
	settings.WorkDayEndHour = 8

	_, err := NewUseCase(&stubLeadRepo{}, settings, nopLogger{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
