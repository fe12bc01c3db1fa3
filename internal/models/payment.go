package models

import "time"

// PaymentStatus enumerates payment lifecycle states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentExpired   PaymentStatus = "EXPIRED"
)

// Payment records an external checkout session. CheckoutSessionID is the
// opaque identifier the processor echoes back on success/cancel redirects.
type Payment struct {
	ID                string        `db:"id" json:"id"`
	SubmissionID      *string       `db:"submission_id" json:"submission_id,omitempty"`
	CheckoutSessionID string        `db:"checkout_session_id" json:"checkout_session_id"`
	ProviderPaymentID *string       `db:"provider_payment_id" json:"provider_payment_id,omitempty"`
	Email             string        `db:"email" json:"email"`
	CoachingType      string        `db:"coaching_type" json:"coaching_type"`
	AmountCents       int64         `db:"amount_cents" json:"amount_cents"`
	Currency          string        `db:"currency" json:"currency"`
	Status            PaymentStatus `db:"status" json:"status"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}
