package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type synchronousSender interface {
	SendNow(ctx context.Context, content string) dto.NotifyResult
}

// ContactService forwards contact form messages to the coach channel. The
// outcome is reported back as a structured payload, never as a fatal error.
type ContactService struct {
	sender    synchronousSender
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs a ContactService.
func NewContactService(sender synchronousSender, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{sender: sender, validator: validate, logger: logger}
}

// Send validates and forwards a contact message.
func (s *ContactService) Send(ctx context.Context, req dto.ContactRequest) (*dto.NotifyResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}

	subject := req.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	result := s.sender.SendNow(ctx, fmt.Sprintf(
		"Contact form message from %s <%s>\nSubject: %s\n\n%s",
		req.Name, req.Email, subject, req.Message))

	if !result.Sent {
		s.logger.Warn("contact message delivery failed",
			zap.String("email", req.Email), zap.String("error", result.Error))
	}
	return &result, nil
}
