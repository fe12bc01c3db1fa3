package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AvailabilitySlot is a recurring weekly availability template. Times are
// wall-clock "HH:MM" strings; DayOfWeek follows time.Weekday (0 = Sunday).
type AvailabilitySlot struct {
	ID          string    `db:"id" json:"id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	SessionType string    `db:"session_type" json:"session_type"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ExceptionKind distinguishes blocked dates from booked ones.
type ExceptionKind string

const (
	ExceptionBlocked ExceptionKind = "BLOCKED"
	ExceptionBooked  ExceptionKind = "BOOKED"
)

// AvailabilityException is a date-specific override of a slot.
type AvailabilityException struct {
	ID        string        `db:"id" json:"id"`
	Date      time.Time     `db:"date" json:"date"`
	Kind      ExceptionKind `db:"kind" json:"kind"`
	SlotID    *string       `db:"slot_id" json:"slot_id,omitempty"`
	BookingID *string       `db:"booking_id" json:"booking_id,omitempty"`
	Reason    *string       `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// ExceptionWithSlot pairs a future-dated exception with its parent slot.
type ExceptionWithSlot struct {
	AvailabilityException
	Slot *AvailabilitySlot `json:"slot,omitempty"`
}

// SlotFilter captures filtering criteria for listing slots.
type SlotFilter struct {
	DayOfWeek   *int
	SessionType string
	Active      *bool
}

// MinuteOfDay parses an "HH:MM" wall-clock string into minutes since
// midnight. Rejects out-of-range components.
func MinuteOfDay(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour*60 + minute, nil
}
