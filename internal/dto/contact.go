package dto

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" validate:"required,min=10,max=4000"`
}

// NotifyResult is the structured outcome of an outbound notification.
// Failures are reported here, never raised as fatal errors.
type NotifyResult struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}
