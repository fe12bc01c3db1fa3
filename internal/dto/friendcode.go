package dto

import "time"

// CreateFriendCodeRequest creates a promotional code.
type CreateFriendCodeRequest struct {
	Code      string     `json:"code" validate:"required,min=4,max=32"`
	MaxUses   *int       `json:"max_uses,omitempty" validate:"omitempty,min=1"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UpdateFriendCodeRequest is an explicit partial update.
type UpdateFriendCodeRequest struct {
	MaxUses   *int       `json:"max_uses,omitempty" validate:"omitempty,min=1"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Active    *bool      `json:"active,omitempty"`
}

// ValidateFriendCodeRequest checks whether a code can be redeemed.
type ValidateFriendCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// RedeemFriendCodeRequest redeems a code against an intake payload,
// creating a fee-free submission.
type RedeemFriendCodeRequest struct {
	Code       string                  `json:"code" validate:"required"`
	Submission CreateSubmissionRequest `json:"submission" validate:"required"`
}

// FriendCodeDeleteResponse reports the two-variant delete outcome.
type FriendCodeDeleteResponse struct {
	Outcome string      `json:"outcome"`
	Code    interface{} `json:"code,omitempty"`
}
