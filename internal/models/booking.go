package models

import "time"

// BookingStatus enumerates booking lifecycle states. Bookings are never
// hard-deleted; they only transition status.
type BookingStatus string

const (
	BookingScheduled BookingStatus = "SCHEDULED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingNoShow    BookingStatus = "NO_SHOW"
)

// Valid reports whether the status is a known lifecycle state.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingScheduled, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Booking is a scheduled coaching session instance.
type Booking struct {
	ID          string        `db:"id" json:"id"`
	Email       string        `db:"email" json:"email"`
	SessionType string        `db:"session_type" json:"session_type"`
	ScheduledAt time.Time     `db:"scheduled_at" json:"scheduled_at"`
	Status      BookingStatus `db:"status" json:"status"`
	Notes       *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// BookingFilter captures filtering criteria for listing bookings.
type BookingFilter struct {
	Status      *BookingStatus
	SessionType string
	From        *time.Time
	To          *time.Time
	Search      string
	Page        int
	PageSize    int
}
