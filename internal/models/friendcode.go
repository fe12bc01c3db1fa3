package models

import "time"

// FriendCode is a promotional bypass code granting fee-free booking.
// Once used it is deactivated rather than deleted to preserve history.
type FriendCode struct {
	ID        string     `db:"id" json:"id"`
	Code      string     `db:"code" json:"code"`
	Uses      int        `db:"uses" json:"uses"`
	MaxUses   *int       `db:"max_uses" json:"max_uses,omitempty"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Usable reports whether the code can still be redeemed at the given time.
func (f *FriendCode) Usable(now time.Time) bool {
	if !f.Active {
		return false
	}
	if f.ExpiresAt != nil && now.After(*f.ExpiresAt) {
		return false
	}
	if f.MaxUses != nil && f.Uses >= *f.MaxUses {
		return false
	}
	return true
}

// FriendCodeDeleteOutcome is the explicit result of a delete request:
// unused codes are removed, used ones are only deactivated.
type FriendCodeDeleteOutcome string

const (
	FriendCodeDeleted     FriendCodeDeleteOutcome = "DELETED"
	FriendCodeDeactivated FriendCodeDeleteOutcome = "DEACTIVATED"
)
