package dto

import "time"

// CreateBookingRequest schedules a session from a confirmed slot selection.
type CreateBookingRequest struct {
	Email       string    `json:"email" validate:"required,email"`
	SessionType string    `json:"session_type" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       *string   `json:"notes,omitempty"`
}

// UpdateBookingRequest is an explicit partial update for admin edits.
type UpdateBookingRequest struct {
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED NO_SHOW"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}
