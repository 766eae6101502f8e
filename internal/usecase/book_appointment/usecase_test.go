package book_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	leadRepo "github.com/jals-dev/JALS-LeadService/internal/infra/storage/lead"
	"github.com/jals-dev/JALS-LeadService/pkg/ptr"
)

type stubLeadRepo struct {
	lead        *domain.Lead
	getErr      error
	activeLead  *domain.Lead
	activeErr   error
	bookedLead  *domain.Lead
	bookedErr   error
	updateErr   error
	updatedLead *domain.Lead
}

func (s *stubLeadRepo) GetByID(_ context.Context, _ int64) (*domain.Lead, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.lead, nil
}

func (s *stubLeadRepo) FindActiveByIdentity(_ context.Context, _, _ string, _ time.Time) (*domain.Lead, error) {
	if s.activeErr != nil {
		return nil, s.activeErr
	}
	return s.activeLead, nil
}

func (s *stubLeadRepo) FindBookedAt(_ context.Context, _ time.Time) (*domain.Lead, error) {
	if s.bookedErr != nil {
		return nil, s.bookedErr
	}
	return s.bookedLead, nil
}

func (s *stubLeadRepo) UpdateBooking(_ context.Context, l *domain.Lead) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedLead = l
	return nil
}

type stubNormalizer struct {
	err error
}

func (s *stubNormalizer) Normalize(raw string, _ string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "+447911123456", "GB", nil
}

type stubNotifier struct {
	confirmed []*domain.Lead
}

func (s *stubNotifier) BookingConfirmed(_ context.Context, l *domain.Lead) {
	s.confirmed = append(s.confirmed, l)
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func testSettings() Settings {
	return Settings{CalendarTimezone: "Europe/London"}
}

func testLead() *domain.Lead {
	return &domain.Lead{
		ID:                1,
		FullName:          "Jane Carter",
		Email:             "jane@example.com",
		Phone:             "07911 123456",
		ServiceType:       "extension",
		Status:            domain.LeadStatusNew,
		AppointmentStatus: domain.AppointmentUnbooked,
	}
}

func newTestUseCase(t *testing.T, repo *stubLeadRepo, notifier *stubNotifier, now time.Time) *UseCase {
	t.Helper()

	uc, err := NewUseCase(repo, &stubNormalizer{}, notifier, stubTxManager{}, testSettings(), nopLogger{})
	require.NoError(t, err)
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

// 2026-09-14 это понедельник; 10:40 по Лондону = 09:40 UTC (BST)
var (
	testNow  = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	testSlot = "2026-09-14T09:40:00Z"
)

func TestExecute_Success(t *testing.T) {
	repo := &stubLeadRepo{
		lead:      testLead(),
		activeErr: leadRepo.ErrLeadNotFound,
		bookedErr: leadRepo.ErrLeadNotFound,
	}
	notifier := &stubNotifier{}
	uc := newTestUseCase(t, repo, notifier, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		LeadID:          1,
		AppointmentTime: testSlot,
		ContactMethod:   ptr.Ptr("whatsapp"),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedLead)

	updated := repo.updatedLead
	assert.Equal(t, domain.AppointmentBooked, updated.AppointmentStatus)
	require.NotNil(t, updated.AppointmentTime)
	assert.Equal(t, "2026-09-14T09:40:00Z", updated.AppointmentTime.UTC().Format(time.RFC3339))
	assert.Equal(t, "+447911123456", updated.Phone)
	assert.Equal(t, domain.ContactMethodWhatsApp, updated.PreferredContactMethod)
	require.NotNil(t, updated.ClientTimezone)
	assert.Equal(t, "Europe/London", *updated.ClientTimezone)

	// Новая запись начинает с чистых флагов напоминаний
	assert.False(t, updated.Reminder24Sent)
	assert.False(t, updated.Reminder1Sent)
	assert.False(t, updated.Reminder15Sent)

	// Подтверждение уходит после коммита
	require.Len(t, notifier.confirmed, 1)
	assert.Equal(t, resp.Lead, notifier.confirmed[0])
}

func TestExecute_RebookingResetsReminderFlags(t *testing.T) {
	l := testLead()
	l.Reminder24Sent = true
	l.Reminder1Sent = true

	repo := &stubLeadRepo{
		lead:      l,
		activeErr: leadRepo.ErrLeadNotFound,
		bookedErr: leadRepo.ErrLeadNotFound,
	}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{LeadID: 1, AppointmentTime: testSlot})

	require.NoError(t, err)
	assert.False(t, repo.updatedLead.Reminder24Sent)
	assert.False(t, repo.updatedLead.Reminder1Sent)
}

func TestExecute_ClientTimezoneOverride(t *testing.T) {
	l := testLead()
	l.ClientTimezone = ptr.Ptr("Europe/Paris")

	repo := &stubLeadRepo{
		lead:      l,
		activeErr: leadRepo.ErrLeadNotFound,
		bookedErr: leadRepo.ErrLeadNotFound,
	}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)

	// Явная таймзона из запроса важнее сохраненной
	_, err := uc.Execute(context.Background(), &Request{
		LeadID:          1,
		AppointmentTime: testSlot,
		ClientTimezone:  ptr.Ptr("America/New_York"),
	})

	require.NoError(t, err)
	assert.Equal(t, "America/New_York", *repo.updatedLead.ClientTimezone)
}

func TestExecute_KeepsStoredClientTimezone(t *testing.T) {
	l := testLead()
	l.ClientTimezone = ptr.Ptr("Europe/Paris")

	repo := &stubLeadRepo{
		lead:      l,
		activeErr: leadRepo.ErrLeadNotFound,
		bookedErr: leadRepo.ErrLeadNotFound,
	}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{LeadID: 1, AppointmentTime: testSlot})

	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", *repo.updatedLead.ClientTimezone)
}

func TestExecute_LeadNotFound(t *testing.T) {
	repo := &stubLeadRepo{getErr: leadRepo.ErrLeadNotFound}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{LeadID: 99, AppointmentTime: testSlot})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestExecute_MissingContactInfo(t *testing.T) {
	l := testLead()
	l.Phone = ""

	repo := &stubLeadRepo{lead: l}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{LeadID: 1, AppointmentTime: testSlot})

	assert.ErrorIs(t, err, ErrMissingContactInfo)
}

func TestExecute_InvalidPhone(t *testing.T) {
	repo := &stubLeadRepo{lead: testLead()}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)
	uc.phones = &stubNormalizer{err: errors.New("too short")}

	_, err := uc.Execute(context.Background(), &Request{LeadID: 1, AppointmentTime: testSlot})

	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestExecute_DuplicateActiveBooking(t *testing.T) {
	other := testLead()
	other.ID = 2

	repo := &stubLeadRepo{
		lead:       testLead(),
		activeLead: other,
		bookedErr:  leadRepo.ErrLeadNotFound,
	}
	notifier := &stubNotifier{}
	uc := newTestUseCase(t, repo, notifier, testNow)

	_, err := uc.Execute(context.Background(), &Request{LeadID: 1, AppointmentTime: testSlot})

	assert.ErrorIs(t, err, ErrDuplicateActiveBooking)
	assert.Nil(t, repo.updatedLead)
	assert.Empty(t, notifier.confirmed)
}

func TestExecute_SlotConflict(t *testing.T) {
	other := testLead()
	other.ID = 2

	repo := &stubLeadRepo{
		lead:       testLead(),
		activeErr:  leadRepo.ErrLeadNotFound,
		bookedLead: other,
	}
	notifier := &stubNotifier{}
	uc := newTestUseCase(t, repo, notifier, testNow)

	_, err := uc.Execute(context.Background(), &Request{LeadID: 1, AppointmentTime: testSlot})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, notifier.confirmed)
}

func TestExecute_UnparsableTimeRejected(t *testing.T) {
	uc := newTestUseCase(t, &stubLeadRepo{lead: testLead()}, &stubNotifier{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		LeadID:          1,
		AppointmentTime: "tomorrow at noon",
	})

	assert.ErrorIs(t, err, ErrInvalidAppointmentTime)
}

func TestExecute_UnknownLeadBeatsBadTime(t *testing.T) {
	// Существование лида проверяется раньше времени записи:
	// несуществующий лид с кривым временем дает NotFound, а не 400
	repo := &stubLeadRepo{getErr: leadRepo.ErrLeadNotFound}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		LeadID:          999,
		AppointmentTime: "not-a-time",
	})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestExecute_OffGridInstantBooks(t *testing.T) {
	// Сервер не навязывает сетку слотов: любой корректный момент
	// бронируется, если он не занят
	repo := &stubLeadRepo{
		lead:      testLead(),
		activeErr: leadRepo.ErrLeadNotFound,
		bookedErr: leadRepo.ErrLeadNotFound,
	}
	uc := newTestUseCase(t, repo, &stubNotifier{}, testNow)

	// 10:50 по Лондону не кратно шагу 40 минут от 08:00
	_, err := uc.Execute(context.Background(), &Request{
		LeadID:          1,
		AppointmentTime: "2026-09-14T09:50:00Z",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedLead)
	assert.Equal(t, "2026-09-14T09:50:00Z", repo.updatedLead.AppointmentTime.UTC().Format(time.RFC3339))
}
