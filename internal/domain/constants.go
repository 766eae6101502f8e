package domain

// Work calendar defaults. The consultation grid is fixed: one appointment
// type, 30 minutes of consultation plus a 10 minute buffer per slot
const (
	DefaultCalendarTimezone    = "Europe/London"
	DefaultWorkDayStartHour    = 8  // 08:00
	DefaultWorkDayEndHour      = 18 // 18:00
	DefaultSlotIntervalMinutes = 40 // 30 min consultation + 10 min buffer
	DefaultConsultationMinutes = 30
)

// Reminder scheduling defaults
const (
	DefaultReminderPollMinutes   = 3
	DefaultReminderWindowMinutes = 5 // tolerance around each window target
)

// Time format constants
const (
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	TimeLabelFormat = "15:04"      // HH:MM, local label shown to the client
)

// AppointmentTakenStatuses статусы записи, при которых слот считается занятым
var AppointmentTakenStatuses = []AppointmentStatus{
	AppointmentBooked,
	AppointmentConfirmed,
}

// LeadStatuses все стадии воронки (порядок используется в сводной статистике)
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusNotInterested,
	LeadStatusConverted,
}
