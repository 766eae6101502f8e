package domain

import "time"

// ReminderFlagName identifies the persisted flag column for a reminder window
type ReminderFlagName string

const (
	ReminderFlag24 ReminderFlagName = "reminder_24_sent"
	ReminderFlag1  ReminderFlagName = "reminder_1_sent"
	ReminderFlag15 ReminderFlagName = "reminder_15_sent"
)

// ReminderWindow is one of the fixed lead-times before an appointment
// at which a reminder should fire
type ReminderWindow struct {
	TargetMinutes float64          // offset before appointment_time
	Label         string           // human label used in notification copy
	Flag          ReminderFlagName // persisted idempotency flag
}

// ReminderWindows the three windows, furthest first (matches scan order)
var ReminderWindows = []ReminderWindow{
	{TargetMinutes: 24 * 60, Label: "tomorrow", Flag: ReminderFlag24},
	{TargetMinutes: 60, Label: "in 1 hour", Flag: ReminderFlag1},
	{TargetMinutes: 15, Label: "in 15 minutes", Flag: ReminderFlag15},
}

// Slot represents a bookable consultation slot on the work-day grid
type Slot struct {
	StartUTC   time.Time // absolute slot start instant
	StartLabel string    // HH:MM in the calendar timezone
}
