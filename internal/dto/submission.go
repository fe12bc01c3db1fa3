package dto

// ReplayCodeInput is one replay identifier in an intake payload.
type ReplayCodeInput struct {
	Code  string  `json:"code" validate:"required"`
	Label *string `json:"label,omitempty"`
}

// CreateSubmissionRequest is the public replay-review intake form.
type CreateSubmissionRequest struct {
	Name         string            `json:"name" validate:"required"`
	Email        string            `json:"email" validate:"required,email"`
	DiscordTag   *string           `json:"discord_tag,omitempty"`
	CoachingType string            `json:"coaching_type" validate:"required"`
	Rank         string            `json:"rank" validate:"required"`
	Role         string            `json:"role" validate:"required"`
	Hero         *string           `json:"hero,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	ReplayCodes  []ReplayCodeInput `json:"replay_codes" validate:"required,min=1,max=5,dive"`
}

// UpdateSubmissionRequest is an explicit partial update for admin edits.
type UpdateSubmissionRequest struct {
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=PENDING AWAITING_PAYMENT PAID IN_PROGRESS COMPLETED ARCHIVED"`
	Notes     *string `json:"notes,omitempty"`
	BookingID *string `json:"booking_id,omitempty"`
}
