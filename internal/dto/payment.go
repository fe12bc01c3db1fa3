package dto

// CreateCheckoutRequest starts a checkout session, either for an existing
// submission or for an explicit coaching type + email pair.
type CreateCheckoutRequest struct {
	SubmissionID *string `json:"submission_id,omitempty"`
	CoachingType *string `json:"coaching_type,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
}

// CheckoutResponse carries the external session id and redirect target.
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentDetail is the public payment lookup for success/cancel pages.
type PaymentDetail struct {
	SessionID    string `json:"session_id"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	CoachingType string `json:"coaching_type"`
	SubmissionID string `json:"submission_id,omitempty"`
}
