package domain

import (
	"strings"
	"time"
)

// LeadStatus represents the sales funnel stage of a lead
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusQualified     LeadStatus = "qualified"
	LeadStatusNotInterested LeadStatus = "not_interested"
	LeadStatusConverted     LeadStatus = "converted"
)

// AppointmentStatus represents the state of a lead's consultation appointment
type AppointmentStatus string

const (
	AppointmentUnbooked  AppointmentStatus = "unbooked"
	AppointmentBooked    AppointmentStatus = "booked"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ContactMethod represents how the lead prefers to be contacted
type ContactMethod string

const (
	ContactMethodCall     ContactMethod = "Call"
	ContactMethodWhatsApp ContactMethod = "WhatsApp"
)

// Lead represents a sales lead together with its appointment sub-state
type Lead struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string // canonical E.164
	PhoneCountry *string

	// Intake metadata, opaque to booking logic
	ServiceType        string
	BudgetRange        *string
	Timeframe          *string
	ProjectDescription *string
	Source             *string

	Status LeadStatus

	// Appointment sub-state. AppointmentTime is stored in UTC;
	// nil means no appointment has been scheduled
	AppointmentTime        *time.Time
	AppointmentStatus      AppointmentStatus
	ClientTimezone         *string
	PreferredContactMethod ContactMethod

	// Reminder flags, one per reminder window
	Reminder24Sent bool
	Reminder1Sent  bool
	Reminder15Sent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasContactInfo returns true if the lead can be reached by email and phone
func (l *Lead) HasContactInfo() bool {
	return strings.TrimSpace(l.Email) != "" && strings.TrimSpace(l.Phone) != ""
}

// AppointmentTaken returns true if the appointment occupies its slot
func (l *Lead) AppointmentTaken() bool {
	return l.AppointmentStatus == AppointmentBooked || l.AppointmentStatus == AppointmentConfirmed
}

// HasActiveAppointment returns true if the lead holds a booked or confirmed
// appointment in the future relative to now
func (l *Lead) HasActiveAppointment(now time.Time) bool {
	return l.AppointmentTaken() && l.AppointmentTime != nil && l.AppointmentTime.After(now)
}

// ReminderSent reports whether the reminder for the given window went out
func (l *Lead) ReminderSent(w ReminderWindow) bool {
	switch w.Flag {
	case ReminderFlag24:
		return l.Reminder24Sent
	case ReminderFlag1:
		return l.Reminder1Sent
	case ReminderFlag15:
		return l.Reminder15Sent
	default:
		return true
	}
}

// MarkReminderSent flips the flag for the given window (monotonic, never unset here)
func (l *Lead) MarkReminderSent(w ReminderWindow) {
	switch w.Flag {
	case ReminderFlag24:
		l.Reminder24Sent = true
	case ReminderFlag1:
		l.Reminder1Sent = true
	case ReminderFlag15:
		l.Reminder15Sent = true
	}
}

// IsValidLeadStatus проверяет, что строка является допустимым статусом воронки
func IsValidLeadStatus(s string) bool {
	switch LeadStatus(s) {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusNotInterested, LeadStatusConverted:
		return true
	default:
		return false
	}
}

// IsValidAppointmentStatus проверяет, что строка является допустимым статусом записи
func IsValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentUnbooked, AppointmentBooked, AppointmentConfirmed,
		AppointmentCompleted, AppointmentCancelled:
		return true
	default:
		return false
	}
}

// NormalizeContactMethod приводит пользовательский ввод к ContactMethod
// Любое значение, кроме "whatsapp" (без учета регистра), трактуется как Call
func NormalizeContactMethod(raw string) ContactMethod {
	if strings.EqualFold(strings.TrimSpace(raw), "whatsapp") {
		return ContactMethodWhatsApp
	}
	return ContactMethodCall
}

// LeadFilter фильтр для постраничного списка лидов
type LeadFilter struct {
	Status *LeadStatus // точное совпадение статуса воронки
	Search *string     // подстрока по full_name / email / service_type
	Page   int
	Limit  int
}

// LeadUpdate частичное обновление лида (nil = поле не менять)
type LeadUpdate struct {
	FullName           *string
	Email              *string
	Phone              *string
	PhoneCountry       *string
	ServiceType        *string
	BudgetRange        *string
	Timeframe          *string
	ProjectDescription *string
	Source             *string
	Status             *LeadStatus
	AppointmentStatus  *AppointmentStatus
	ClientTimezone     *string
}

// IsEmpty возвращает true, если обновление не меняет ни одного поля
func (u *LeadUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil &&
		u.PhoneCountry == nil && u.ServiceType == nil && u.BudgetRange == nil &&
		u.Timeframe == nil && u.ProjectDescription == nil && u.Source == nil &&
		u.Status == nil && u.AppointmentStatus == nil && u.ClientTimezone == nil
}

// LeadSummary агрегированная статистика по лидам для дашборда
type LeadSummary struct {
	TotalLeads  int64
	NewThisWeek int64
	ByStatus    map[LeadStatus]int64
}
