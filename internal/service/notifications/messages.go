package notifications

import (
	"fmt"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	"github.com/jals-dev/JALS-LeadService/pkg/ptr"
)

// appointmentTimeFormat формат времени в письмах и SMS, в таймзоне клиента
const appointmentTimeFormat = "Monday, 2 January 2006 at 3:04 PM"

// formatAppointment форматирует время записи в таймзоне клиента
// При неизвестной таймзоне используется таймзона календаря
func formatAppointment(l *domain.Lead, fallbackTimezone string) string {
	if l.AppointmentTime == nil {
		return ""
	}

	tz := ptr.Deref(l.ClientTimezone, "")
	if tz == "" {
		tz = fallbackTimezone
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	return l.AppointmentTime.In(loc).Format(appointmentTimeFormat)
}

// Подтверждение бронирования

func confirmationSubject() string {
	return "Your consultation is booked"
}

func confirmationEmailBody(l *domain.Lead, when string) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your consultation is confirmed for %s.\n\n"+
			"We will contact you by %s. If you need to make changes, just reply to this email.\n\n"+
			"Speak soon,\nThe JALS team",
		l.FullName, when, contactMethodLabel(l.PreferredContactMethod))
}

func confirmationSMSBody(l *domain.Lead, when string) string {
	return fmt.Sprintf("Hi %s, your consultation is booked for %s. Reply to this number if you need to reschedule.",
		l.FullName, when)
}

// Напоминания

func reminderSubject(w domain.ReminderWindow) string {
	return fmt.Sprintf("Reminder: your consultation is %s", w.Label)
}

func reminderEmailBody(l *domain.Lead, w domain.ReminderWindow, when string) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Just a reminder that your consultation is %s, on %s.\n\n"+
			"Speak soon,\nThe JALS team",
		l.FullName, w.Label, when)
}

func reminderSMSBody(l *domain.Lead, w domain.ReminderWindow, when string) string {
	return fmt.Sprintf("Hi %s, reminder: your consultation is %s (%s).", l.FullName, w.Label, when)
}

// Новый лид

func newLeadSubject(l *domain.Lead) string {
	return fmt.Sprintf("New lead: %s (%s)", l.FullName, l.ServiceType)
}

func newLeadEmailBody(l *domain.Lead) string {
	body := fmt.Sprintf(
		"New enquiry received.\n\n"+
			"Name: %s\nEmail: %s\nPhone: %s\nService: %s\n",
		l.FullName, l.Email, l.Phone, l.ServiceType)

	if l.BudgetRange != nil {
		body += fmt.Sprintf("Budget: %s\n", *l.BudgetRange)
	}
	if l.Timeframe != nil {
		body += fmt.Sprintf("Timeframe: %s\n", *l.Timeframe)
	}
	if l.Source != nil {
		body += fmt.Sprintf("Source: %s\n", *l.Source)
	}
	if l.ProjectDescription != nil {
		body += fmt.Sprintf("\nProject:\n%s\n", *l.ProjectDescription)
	}

	return body
}

func bookingAlertSubject(l *domain.Lead) string {
	return fmt.Sprintf("Consultation booked: %s", l.FullName)
}

func bookingAlertBody(l *domain.Lead, when string) string {
	return fmt.Sprintf(
		"A consultation has been booked.\n\n"+
			"Name: %s\nEmail: %s\nPhone: %s\nService: %s\nWhen: %s\nContact by: %s\n",
		l.FullName, l.Email, l.Phone, l.ServiceType, when,
		contactMethodLabel(l.PreferredContactMethod))
}

func autoreplySubject() string {
	return "Thanks for your enquiry"
}

func autoreplyBody(l *domain.Lead) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for getting in touch about your %s project. We have received your enquiry "+
			"and will get back to you within one working day.\n\n"+
			"You can also book a free consultation directly on our website.\n\n"+
			"Speak soon,\nThe JALS team",
		l.FullName, l.ServiceType)
}

// contactMethodLabel человекочитаемое имя способа связи
func contactMethodLabel(m domain.ContactMethod) string {
	if m == domain.ContactMethodWhatsApp {
		return "WhatsApp"
	}
	return "phone call"
}

// windowMetricLabel метка окна для метрик
func windowMetricLabel(w domain.ReminderWindow) string {
	switch w.Flag {
	case domain.ReminderFlag24:
		return "24h"
	case domain.ReminderFlag1:
		return "1h"
	default:
		return "15m"
	}
}
