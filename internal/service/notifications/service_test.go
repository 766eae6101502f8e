package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	"github.com/jals-dev/JALS-LeadService/pkg/ptr"
)

type stubMail struct {
	err  error
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (s *stubMail) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type stubSMS struct {
	err  error
	sent []sentSMS
}

type sentSMS struct {
	to   string
	body string
}

func (s *stubSMS) Send(_ context.Context, to, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentSMS{to: to, body: body})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func bookedLead() *domain.Lead {
	return &domain.Lead{
		ID:                     1,
		FullName:               "Jane Carter",
		Email:                  "jane@example.com",
		Phone:                  "+447911123456",
		ServiceType:            "extension",
		AppointmentTime:        ptr.Ptr(time.Date(2026, 9, 14, 9, 40, 0, 0, time.UTC)),
		AppointmentStatus:      domain.AppointmentBooked,
		ClientTimezone:         ptr.Ptr("Europe/London"),
		PreferredContactMethod: domain.ContactMethodWhatsApp,
	}
}

func newTestService(mail EmailSender, sms SMSSender) *Service {
	return NewService(mail, sms, "admin@example.com", true, "Europe/London", 5*time.Second, nil, nopLogger{})
}

func TestSendReminder_BothChannels(t *testing.T) {
	mail := &stubMail{}
	sms := &stubSMS{}
	svc := newTestService(mail, sms)

	err := svc.SendReminder(context.Background(), bookedLead(), domain.ReminderWindows[1])

	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	require.Len(t, sms.sent, 1)

	assert.Equal(t, "jane@example.com", mail.sent[0].to)
	assert.Equal(t, "Reminder: your consultation is in 1 hour", mail.sent[0].subject)
	assert.Contains(t, mail.sent[0].body, "in 1 hour")

	assert.Equal(t, "+447911123456", sms.sent[0].to)
	assert.Contains(t, sms.sent[0].body, "in 1 hour")
}

func TestSendReminder_OneChannelFailureStillSucceeds(t *testing.T) {
	mail := &stubMail{err: errors.New("smtp down")}
	sms := &stubSMS{}
	svc := newTestService(mail, sms)

	err := svc.SendReminder(context.Background(), bookedLead(), domain.ReminderWindows[0])

	require.NoError(t, err)
	require.Len(t, sms.sent, 1)
}

func TestSendReminder_AllChannelsFail(t *testing.T) {
	mail := &stubMail{err: errors.New("smtp down")}
	sms := &stubSMS{err: errors.New("twilio down")}
	svc := newTestService(mail, sms)

	err := svc.SendReminder(context.Background(), bookedLead(), domain.ReminderWindows[2])

	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestSendReminder_NoChannels(t *testing.T) {
	svc := newTestService(nil, nil)

	err := svc.SendReminder(context.Background(), bookedLead(), domain.ReminderWindows[0])

	assert.ErrorIs(t, err, ErrNoChannels)
}

func TestFormatAppointment_ClientTimezone(t *testing.T) {
	l := bookedLead()
	// 09:40 UTC = 10:40 BST
	assert.Equal(t, "Monday, 14 September 2026 at 10:40 AM", formatAppointment(l, "Europe/London"))

	l.ClientTimezone = ptr.Ptr("America/New_York")
	assert.Equal(t, "Monday, 14 September 2026 at 5:40 AM", formatAppointment(l, "Europe/London"))
}

func TestFormatAppointment_FallbackOnUnknownTimezone(t *testing.T) {
	l := bookedLead()
	l.ClientTimezone = ptr.Ptr("Nowhere/Unknown")

	// Неизвестная таймзона не роняет отправку: время уходит в UTC
	assert.Equal(t, "Monday, 14 September 2026 at 9:40 AM", formatAppointment(l, "Nowhere/Unknown"))
}

func TestNewLeadEmailBody_OptionalFields(t *testing.T) {
	l := bookedLead()
	l.BudgetRange = ptr.Ptr("50k-100k")
	l.ProjectDescription = ptr.Ptr("Two storey rear extension")

	body := newLeadEmailBody(l)

	assert.Contains(t, body, "Jane Carter")
	assert.Contains(t, body, "Budget: 50k-100k")
	assert.Contains(t, body, "Two storey rear extension")
	assert.NotContains(t, body, "Timeframe:")
}
