package models

import "time"

// SubmissionStatus enumerates replay submission states, including the
// payment-related ones a submission passes through before review.
type SubmissionStatus string

const (
	SubmissionPending         SubmissionStatus = "PENDING"
	SubmissionAwaitingPayment SubmissionStatus = "AWAITING_PAYMENT"
	SubmissionPaid            SubmissionStatus = "PAID"
	SubmissionInProgress      SubmissionStatus = "IN_PROGRESS"
	SubmissionCompleted       SubmissionStatus = "COMPLETED"
	SubmissionArchived        SubmissionStatus = "ARCHIVED"
)

// Valid reports whether the status is a known submission state.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionAwaitingPayment, SubmissionPaid,
		SubmissionInProgress, SubmissionCompleted, SubmissionArchived:
		return true
	}
	return false
}

// ReplaySubmission is an intake record for replay/VOD review.
type ReplaySubmission struct {
	ID           string           `db:"id" json:"id"`
	Name         string           `db:"name" json:"name"`
	Email        string           `db:"email" json:"email"`
	DiscordTag   *string          `db:"discord_tag" json:"discord_tag,omitempty"`
	CoachingType string           `db:"coaching_type" json:"coaching_type"`
	Rank         string           `db:"rank" json:"rank"`
	Role         string           `db:"role" json:"role"`
	Hero         *string          `db:"hero" json:"hero,omitempty"`
	Notes        *string          `db:"notes" json:"notes,omitempty"`
	Status       SubmissionStatus `db:"status" json:"status"`
	PaymentID    *string          `db:"payment_id" json:"payment_id,omitempty"`
	BookingID    *string          `db:"booking_id" json:"booking_id,omitempty"`
	FriendCodeID *string          `db:"friend_code_id" json:"friend_code_id,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`

	ReplayCodes []ReplayCode `db:"-" json:"replay_codes,omitempty"`
}

// ReplayCode is one in-game replay identifier attached to a submission.
type ReplayCode struct {
	ID           string  `db:"id" json:"id"`
	SubmissionID string  `db:"submission_id" json:"submission_id"`
	Code         string  `db:"code" json:"code"`
	Label        *string `db:"label" json:"label,omitempty"`
}

// SubmissionFilter captures filtering criteria for listing submissions.
type SubmissionFilter struct {
	Status       *SubmissionStatus
	CoachingType string
	Search       string
	Page         int
	PageSize     int
}
