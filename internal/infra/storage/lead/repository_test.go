package lead

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	"github.com/jals-dev/JALS-LeadService/pkg/txmanager"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func leadRows() *sqlmock.Rows {
	return sqlmock.NewRows(leadColumns)
}

func addLeadRow(rows *sqlmock.Rows, id int64, name string) *sqlmock.Rows {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, name, "jane@example.com", "+447911123456", "GB",
		"extension", nil, nil, nil, nil,
		"new", nil, "unbooked", nil, "Call",
		false, false, false,
		now, now,
	)
}

func TestGetByID_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, full_name, email, phone, phone_country").
		WithArgs(int64(1)).
		WillReturnRows(addLeadRow(leadRows(), 1, "Jane Carter"))

	l, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
	assert.Equal(t, "Jane Carter", l.FullName)
	assert.Equal(t, domain.LeadStatusNew, l.Status)
	assert.Nil(t, l.AppointmentTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, full_name").
		WithArgs(int64(99)).
		WillReturnRows(leadRows())

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO leads").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), created, created))

	l, err := repo.Create(context.Background(), &domain.Lead{
		FullName:               "Jane Carter",
		Email:                  "jane@example.com",
		Phone:                  "07911 123456",
		ServiceType:            "extension",
		Status:                 domain.LeadStatusNew,
		AppointmentStatus:      domain.AppointmentUnbooked,
		PreferredContactMethod: domain.ContactMethodCall,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), l.ID)
	assert.Equal(t, created, l.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookedTimes(t *testing.T) {
	repo, mock := newMockRepo(t)

	from := time.Date(2026, 9, 14, 7, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 14, 17, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 9, 14, 9, 40, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT appointment_time FROM leads").
		WithArgs("booked", "confirmed", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"appointment_time"}).AddRow(slot))

	times, err := repo.GetBookedTimes(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.True(t, times[0].Equal(slot))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetReminderFlag(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE leads SET reminder_1_sent").
		WithArgs(true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetReminderFlag(context.Background(), 5, domain.ReminderFlag1)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetReminderFlag_UnknownFlagRejected(t *testing.T) {
	repo, _ := newMockRepo(t)

	err := repo.SetReminderFlag(context.Background(), 5, domain.ReminderFlagName("status"))

	assert.ErrorIs(t, err, ErrUnknownReminderFlag)
}

func TestSetReminderFlag_MissingLead(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE leads SET reminder_24_sent").
		WithArgs(true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetReminderFlag(context.Background(), 5, domain.ReminderFlag24)

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestList_FilterAndPagination(t *testing.T) {
	repo, mock := newMockRepo(t)

	status := domain.LeadStatusNew
	search := "jane"

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM leads").
		WithArgs("new", "%jane%", "%jane%", "%jane%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	mock.ExpectQuery("SELECT id, full_name").
		WithArgs("new", "%jane%", "%jane%", "%jane%").
		WillReturnRows(addLeadRow(leadRows(), 1, "Jane Carter"))

	leads, total, err := repo.List(context.Background(), domain.LeadFilter{
		Status: &status,
		Search: &search,
		Page:   1,
		Limit:  20,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, leads, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBookedAt_Found(t *testing.T) {
	repo, mock := newMockRepo(t)

	instant := time.Date(2026, 9, 14, 9, 40, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, full_name").
		WithArgs(instant, "booked", "confirmed").
		WillReturnRows(addLeadRow(leadRows(), 3, "Taken Slot"))

	l, err := repo.FindBookedAt(context.Background(), instant)

	require.NoError(t, err)
	assert.Equal(t, int64(3), l.ID)
}

func TestBookingReadsLockRowsInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	instant := time.Date(2026, 9, 14, 9, 40, 0, 0, time.UTC)

	// Под транзакцией все три чтения бронирования блокируют строки
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM leads WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(addLeadRow(leadRows(), 1, "Jane Carter"))
	mock.ExpectQuery(`LOWER\(email\) = LOWER\(\$1\).* FOR UPDATE`).
		WithArgs("jane@example.com", "+447911123456", "booked", "confirmed", now).
		WillReturnRows(leadRows())
	mock.ExpectQuery(`appointment_time = \$1.* FOR UPDATE`).
		WithArgs(instant, "booked", "confirmed").
		WillReturnRows(leadRows())
	mock.ExpectCommit()

	err = txMgr.DoSerializable(context.Background(), func(txCtx context.Context) error {
		l, err := repo.GetByID(txCtx, 1)
		require.NoError(t, err)

		_, err = repo.FindActiveByIdentity(txCtx, l.Email, l.Phone, now)
		require.ErrorIs(t, err, ErrLeadNotFound)

		_, err = repo.FindBookedAt(txCtx, instant)
		require.ErrorIs(t, err, ErrLeadNotFound)

		return nil
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NoLockOutsideTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Вне транзакции запрос заканчивается на условии, без FOR UPDATE
	mock.ExpectQuery(`FROM leads WHERE id = \$1$`).
		WithArgs(int64(1)).
		WillReturnRows(addLeadRow(leadRows(), 1, "Jane Carter"))

	_, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
