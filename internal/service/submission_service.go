package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/export"
)

type submissionRepository interface {
	Create(ctx context.Context, sub *models.ReplaySubmission) error
	FindByID(ctx context.Context, id string) (*models.ReplaySubmission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.ReplaySubmission, int, error)
	Update(ctx context.Context, sub *models.ReplaySubmission) error
}

// SubmissionService handles replay-review intake and admin triage.
type SubmissionService struct {
	repo      submissionRepository
	notifier  notifier
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService

	csvExporter *export.CSVExporter
	pdfExporter *export.PDFExporter
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(repo submissionRepository, notifier notifier, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		repo:        repo,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
		metrics:     metrics,
		csvExporter: export.NewCSVExporter(),
		pdfExporter: export.NewPDFExporter(),
	}
}

// Create records a public intake submission with its replay codes and
// notifies the coach channel. Notification failure never fails the request.
func (s *SubmissionService) Create(ctx context.Context, req dto.CreateSubmissionRequest) (*models.ReplaySubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}
	if _, ok := models.CoachingTypeByCode(req.CoachingType); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown coaching type")
	}

	sub := &models.ReplaySubmission{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		DiscordTag:   req.DiscordTag,
		CoachingType: req.CoachingType,
		Rank:         req.Rank,
		Role:         req.Role,
		Hero:         req.Hero,
		Notes:        req.Notes,
		Status:       models.SubmissionPending,
	}
	for _, rc := range req.ReplayCodes {
		sub.ReplayCodes = append(sub.ReplayCodes, models.ReplayCode{
			ID:           uuid.NewString(),
			SubmissionID: sub.ID,
			Code:         rc.Code,
			Label:        rc.Label,
		})
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, appErrors.Internal(err, "failed to create submission")
	}

	if s.notifier != nil {
		codes := make([]string, 0, len(sub.ReplayCodes))
		for _, rc := range sub.ReplayCodes {
			codes = append(codes, rc.Code)
		}
		s.notifier.Notify("submission", fmt.Sprintf(
			"New %s submission from %s (%s, %s). Replay codes: %s",
			sub.CoachingType, sub.Name, sub.Rank, sub.Role, strings.Join(codes, ", ")))
	}
	if s.metrics != nil {
		s.metrics.ObserveSubmissionCreated()
	}
	return sub, nil
}

// Get fetches a submission with its replay codes.
func (s *SubmissionService) Get(ctx context.Context, id string) (*models.ReplaySubmission, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Internal(err, "failed to load submission")
	}
	return sub, nil
}

// List returns submissions matching the filter with pagination metadata.
func (s *SubmissionService) List(ctx context.Context, filter models.SubmissionFilter) ([]models.ReplaySubmission, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	subs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list submissions")
	}
	return subs, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Update applies an explicit partial update for admin triage, including
// archiving and linking a booking.
func (s *SubmissionService) Update(ctx context.Context, id string, req dto.UpdateSubmissionRequest) (*models.ReplaySubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Internal(err, "failed to load submission")
	}

	if req.Status != nil {
		status := models.SubmissionStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown submission status")
		}
		sub.Status = status
	}
	if req.Notes != nil {
		sub.Notes = req.Notes
	}
	if req.BookingID != nil {
		sub.BookingID = req.BookingID
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, appErrors.Internal(err, "failed to update submission")
	}
	return sub, nil
}

// Archive moves a submission into the ARCHIVED state.
func (s *SubmissionService) Archive(ctx context.Context, id string) (*models.ReplaySubmission, error) {
	status := string(models.SubmissionArchived)
	return s.Update(ctx, id, dto.UpdateSubmissionRequest{Status: &status})
}

// Export renders submissions matching the filter as CSV or PDF bytes.
func (s *SubmissionService) Export(ctx context.Context, filter models.SubmissionFilter, format string) ([]byte, string, error) {
	filter.Page = 1
	filter.PageSize = 1000
	subs, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, "", appErrors.Internal(err, "failed to load submissions for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Coaching Type", "Rank", "Role", "Status", "Created At"},
	}
	for _, sub := range subs {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":            sub.ID,
			"Name":          sub.Name,
			"Email":         sub.Email,
			"Coaching Type": sub.CoachingType,
			"Rank":          sub.Rank,
			"Role":          sub.Role,
			"Status":        string(sub.Status),
			"Created At":    sub.CreatedAt.Format(time.RFC3339),
		})
	}

	switch format {
	case "csv":
		data, err := s.csvExporter.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Internal(err, "failed to render csv export")
		}
		return data, "text/csv", nil
	case "pdf":
		data, err := s.pdfExporter.Render(dataset, "Replay Submissions")
		if err != nil {
			return nil, "", appErrors.Internal(err, "failed to render pdf export")
		}
		return data, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
