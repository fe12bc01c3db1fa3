package dto

import "time"

// CreateSlotRequest creates a recurring weekly availability slot.
type CreateSlotRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	SessionType string `json:"session_type" validate:"required"`
	Active      *bool  `json:"active,omitempty"`
}

// UpdateSlotRequest is an explicit partial update: every optional field is
// enumerated, nil means "leave unchanged".
type UpdateSlotRequest struct {
	DayOfWeek   *int    `json:"day_of_week,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	SessionType *string `json:"session_type,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// CreateExceptionRequest blocks or books a specific date.
type CreateExceptionRequest struct {
	Date      time.Time `json:"date" validate:"required"`
	Kind      string    `json:"kind" validate:"required,oneof=BLOCKED BOOKED"`
	SlotID    *string   `json:"slot_id,omitempty"`
	BookingID *string   `json:"booking_id,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
}
