package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type friendCodeRepository interface {
	Create(ctx context.Context, code *models.FriendCode) error
	FindByID(ctx context.Context, id string) (*models.FriendCode, error)
	FindByCode(ctx context.Context, value string) (*models.FriendCode, error)
	List(ctx context.Context) ([]models.FriendCode, error)
	Update(ctx context.Context, code *models.FriendCode) error
	IncrementUses(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type redemptionSubmissionStore interface {
	Create(ctx context.Context, sub *models.ReplaySubmission) error
	CountByFriendCode(ctx context.Context, friendCodeID string) (int, error)
}

// FriendCodeService manages promotional codes that bypass payment. Deleting
// a code that has been redeemed deactivates it instead, preserving the
// audit trail.
type FriendCodeService struct {
	codes       friendCodeRepository
	submissions redemptionSubmissionStore
	notifier    notifier
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewFriendCodeService constructs a FriendCodeService.
func NewFriendCodeService(codes friendCodeRepository, submissions redemptionSubmissionStore, notifier notifier, validate *validator.Validate, logger *zap.Logger) *FriendCodeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FriendCodeService{
		codes:       codes,
		submissions: submissions,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
	}
}

// Create registers a new promotional code. Codes are stored uppercase.
func (s *FriendCodeService) Create(ctx context.Context, req dto.CreateFriendCodeRequest) (*models.FriendCode, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid friend code payload")
	}

	code := &models.FriendCode{
		ID:        uuid.NewString(),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
		Active:    true,
	}
	if err := s.codes.Create(ctx, code); err != nil {
		return nil, appErrors.Internal(err, "failed to create friend code")
	}
	return code, nil
}

// List returns all codes for the back office.
func (s *FriendCodeService) List(ctx context.Context) ([]models.FriendCode, error) {
	codes, err := s.codes.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list friend codes")
	}
	return codes, nil
}

// Update applies an explicit partial update.
func (s *FriendCodeService) Update(ctx context.Context, id string, req dto.UpdateFriendCodeRequest) (*models.FriendCode, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid friend code payload")
	}

	code, err := s.codes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "friend code not found")
		}
		return nil, appErrors.Internal(err, "failed to load friend code")
	}

	if req.MaxUses != nil {
		code.MaxUses = req.MaxUses
	}
	if req.ExpiresAt != nil {
		code.ExpiresAt = req.ExpiresAt
	}
	if req.Active != nil {
		code.Active = *req.Active
	}

	if err := s.codes.Update(ctx, code); err != nil {
		return nil, appErrors.Internal(err, "failed to update friend code")
	}
	return code, nil
}

// Validate checks existence, active flag, expiry and remaining uses.
func (s *FriendCodeService) Validate(ctx context.Context, req dto.ValidateFriendCodeRequest) (*models.FriendCode, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid friend code payload")
	}
	return s.lookupUsable(ctx, req.Code)
}

// Redeem validates the code, creates a fee-free submission linked to it and
// increments the usage counter.
func (s *FriendCodeService) Redeem(ctx context.Context, req dto.RedeemFriendCodeRequest) (*models.ReplaySubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid redemption payload")
	}

	code, err := s.lookupUsable(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if _, ok := models.CoachingTypeByCode(req.Submission.CoachingType); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown coaching type")
	}

	sub := &models.ReplaySubmission{
		ID:           uuid.NewString(),
		Name:         req.Submission.Name,
		Email:        req.Submission.Email,
		DiscordTag:   req.Submission.DiscordTag,
		CoachingType: req.Submission.CoachingType,
		Rank:         req.Submission.Rank,
		Role:         req.Submission.Role,
		Hero:         req.Submission.Hero,
		Notes:        req.Submission.Notes,
		Status:       models.SubmissionPaid,
		FriendCodeID: &code.ID,
	}
	for _, rc := range req.Submission.ReplayCodes {
		sub.ReplayCodes = append(sub.ReplayCodes, models.ReplayCode{
			ID:           uuid.NewString(),
			SubmissionID: sub.ID,
			Code:         rc.Code,
			Label:        rc.Label,
		})
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, appErrors.Internal(err, "failed to create submission")
	}
	if err := s.codes.IncrementUses(ctx, code.ID); err != nil {
		s.logger.Warn("failed to increment friend code uses",
			zap.String("friend_code_id", code.ID), zap.Error(err))
	}

	if s.notifier != nil {
		s.notifier.Notify("friend-code", "Friend code "+code.Code+" redeemed by "+sub.Name)
	}
	return sub, nil
}

// Delete removes an unused code outright; a code with prior redemptions is
// deactivated and returned unchanged otherwise.
func (s *FriendCodeService) Delete(ctx context.Context, id string) (*dto.FriendCodeDeleteResponse, error) {
	code, err := s.codes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "friend code not found")
		}
		return nil, appErrors.Internal(err, "failed to load friend code")
	}

	used, err := s.submissions.CountByFriendCode(ctx, code.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count friend code redemptions")
	}

	if used == 0 {
		if err := s.codes.Delete(ctx, code.ID); err != nil {
			return nil, appErrors.Internal(err, "failed to delete friend code")
		}
		return &dto.FriendCodeDeleteResponse{Outcome: string(models.FriendCodeDeleted)}, nil
	}

	if err := s.codes.Deactivate(ctx, code.ID); err != nil {
		return nil, appErrors.Internal(err, "failed to deactivate friend code")
	}
	code.Active = false
	return &dto.FriendCodeDeleteResponse{Outcome: string(models.FriendCodeDeactivated), Code: code}, nil
}

func (s *FriendCodeService) lookupUsable(ctx context.Context, value string) (*models.FriendCode, error) {
	code, err := s.codes.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(value)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrFriendCodeInvalid, "friend code not found")
		}
		return nil, appErrors.Internal(err, "failed to load friend code")
	}
	if !code.Usable(time.Now().UTC()) {
		return nil, appErrors.Clone(appErrors.ErrFriendCodeInvalid, "friend code is no longer valid")
	}
	return code, nil
}
