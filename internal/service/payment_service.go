package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindBySubmissionID(ctx context.Context, submissionID string) (*models.Payment, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.Payment, error)
	UpdateStatusBySession(ctx context.Context, sessionID string, status models.PaymentStatus, providerPaymentID *string) error
}

type paymentSubmissionStore interface {
	FindByID(ctx context.Context, id string) (*models.ReplaySubmission, error)
	Update(ctx context.Context, sub *models.ReplaySubmission) error
	SetStatusByPaymentSession(ctx context.Context, sessionID string, status models.SubmissionStatus) error
}

// PaymentService creates external checkout sessions and reconciles redirect
// outcomes against the payments table. At most one payment per submission.
type PaymentService struct {
	payments    paymentRepository
	submissions paymentSubmissionStore
	gateway     CheckoutGateway
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(payments paymentRepository, submissions paymentSubmissionStore, gateway CheckoutGateway, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments:    payments,
		submissions: submissions,
		gateway:     gateway,
		validator:   validate,
		logger:      logger,
		metrics:     metrics,
	}
}

// Catalog returns the static coaching type price table.
func (s *PaymentService) Catalog() []models.CoachingType {
	return models.CoachingTypes()
}

// CreateCheckout starts a checkout session either for an existing submission
// or for an explicit coaching type and email pair. A submission that already
// has a payment row is refused before any external call is made.
func (s *PaymentService) CreateCheckout(ctx context.Context, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid checkout payload")
	}

	var (
		sub          *models.ReplaySubmission
		email        string
		coachingType string
	)

	switch {
	case req.SubmissionID != nil && *req.SubmissionID != "":
		loaded, err := s.submissions.FindByID(ctx, *req.SubmissionID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
			}
			return nil, appErrors.Internal(err, "failed to load submission")
		}
		existing, err := s.payments.FindBySubmissionID(ctx, loaded.ID)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to check existing payment")
		}
		if existing != nil {
			return nil, appErrors.Clone(appErrors.ErrDuplicatePayment, "a payment already exists for this submission")
		}
		sub = loaded
		email = loaded.Email
		coachingType = loaded.CoachingType
	case req.CoachingType != nil && req.Email != nil:
		coachingType = *req.CoachingType
		email = strings.TrimSpace(*req.Email)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "provide a submission id or a coaching type and email")
	}

	ct, ok := models.CoachingTypeByCode(coachingType)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown coaching type")
	}

	orderID := uuid.NewString()
	sessionID, redirectURL, err := s.gateway.CreateSession(orderID, ct.AmountCents, email, ct.Name)
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("coaching_type", ct.Code), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to create checkout session")
	}

	payment := &models.Payment{
		ID:                orderID,
		CheckoutSessionID: sessionID,
		Email:             email,
		CoachingType:      ct.Code,
		AmountCents:       ct.AmountCents,
		Currency:          ct.Currency,
		Status:            models.PaymentPending,
	}
	if sub != nil {
		payment.SubmissionID = &sub.ID
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, appErrors.Internal(err, "failed to record payment")
	}

	if sub != nil {
		sub.PaymentID = &payment.ID
		sub.Status = models.SubmissionAwaitingPayment
		if err := s.submissions.Update(ctx, sub); err != nil {
			s.logger.Warn("failed to mark submission awaiting payment",
				zap.String("submission_id", sub.ID), zap.Error(err))
		}
	}

	if s.metrics != nil {
		s.metrics.ObservePayment(string(models.PaymentPending))
	}
	return &dto.CheckoutResponse{SessionID: sessionID, RedirectURL: redirectURL}, nil
}

// GetBySession is the public payment lookup behind success/cancel pages.
func (s *PaymentService) GetBySession(ctx context.Context, sessionID string) (*dto.PaymentDetail, error) {
	payment, err := s.payments.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Internal(err, "failed to load payment")
	}

	detail := &dto.PaymentDetail{
		SessionID:    payment.CheckoutSessionID,
		Status:       string(payment.Status),
		AmountCents:  payment.AmountCents,
		Currency:     payment.Currency,
		CoachingType: payment.CoachingType,
	}
	if payment.SubmissionID != nil {
		detail.SubmissionID = *payment.SubmissionID
	}
	return detail, nil
}

// ConfirmBySession reconciles a success redirect: the payment becomes PAID
// and a linked submission moves to PAID as well.
func (s *PaymentService) ConfirmBySession(ctx context.Context, sessionID string, providerPaymentID *string) error {
	if err := s.payments.UpdateStatusBySession(ctx, sessionID, models.PaymentPaid, providerPaymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return appErrors.Internal(err, "failed to confirm payment")
	}
	if err := s.submissions.SetStatusByPaymentSession(ctx, sessionID, models.SubmissionPaid); err != nil {
		s.logger.Warn("failed to mark submission paid", zap.String("session_id", sessionID), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.ObservePayment(string(models.PaymentPaid))
	}
	return nil
}

// CancelBySession reconciles a cancel redirect: the payment becomes
// CANCELLED and a linked submission falls back to PENDING.
func (s *PaymentService) CancelBySession(ctx context.Context, sessionID string) error {
	if err := s.payments.UpdateStatusBySession(ctx, sessionID, models.PaymentCancelled, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return appErrors.Internal(err, "failed to cancel payment")
	}
	if err := s.submissions.SetStatusByPaymentSession(ctx, sessionID, models.SubmissionPending); err != nil {
		s.logger.Warn("failed to reset submission status", zap.String("session_id", sessionID), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.ObservePayment(string(models.PaymentCancelled))
	}
	return nil
}
