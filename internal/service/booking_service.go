package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/export"
)

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error)
	Update(ctx context.Context, booking *models.Booking) error
}

type exceptionWriter interface {
	CreateException(ctx context.Context, exc *models.AvailabilityException) error
}

type notifier interface {
	Notify(kind, content string)
}

// BookingService owns the booking lifecycle. Bookings are never hard-deleted;
// admins move them through status transitions instead.
type BookingService struct {
	repo       bookingRepository
	exceptions exceptionWriter
	notifier   notifier
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService

	csvExporter *export.CSVExporter
	pdfExporter *export.PDFExporter
}

// NewBookingService constructs a BookingService.
func NewBookingService(repo bookingRepository, exceptions exceptionWriter, notifier notifier, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		repo:        repo,
		exceptions:  exceptions,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
		metrics:     metrics,
		csvExporter: export.NewCSVExporter(),
		pdfExporter: export.NewPDFExporter(),
	}
}

// Create schedules a session from a confirmed slot selection and records a
// BOOKED exception for the chosen date.
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	if _, ok := models.CoachingTypeByCode(req.SessionType); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown session type")
	}
	if !req.ScheduledAt.After(time.Now().UTC()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scheduled time must be in the future")
	}

	booking := &models.Booking{
		ID:          uuid.NewString(),
		Email:       req.Email,
		SessionType: req.SessionType,
		ScheduledAt: req.ScheduledAt.UTC(),
		Status:      models.BookingScheduled,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, appErrors.Internal(err, "failed to create booking")
	}

	exc := &models.AvailabilityException{
		ID:        uuid.NewString(),
		Date:      booking.ScheduledAt.Truncate(24 * time.Hour),
		Kind:      models.ExceptionBooked,
		BookingID: &booking.ID,
	}
	if err := s.exceptions.CreateException(ctx, exc); err != nil {
		// The booking row is the source of truth; a missing exception only
		// affects the availability display.
		s.logger.Warn("failed to record booked exception",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}

	if s.notifier != nil {
		s.notifier.Notify("booking", fmt.Sprintf(
			"New booking: %s session for %s at %s",
			booking.SessionType, booking.Email, booking.ScheduledAt.Format(time.RFC1123)))
	}
	if s.metrics != nil {
		s.metrics.ObserveBookingCreated()
	}
	return booking, nil
}

// Get fetches a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Internal(err, "failed to load booking")
	}
	return booking, nil
}

// List returns bookings matching the filter with pagination metadata.
func (s *BookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list bookings")
	}
	return bookings, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Update applies an explicit partial update. Status values outside the
// lifecycle enum are rejected; deletion is not offered.
func (s *BookingService) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Internal(err, "failed to load booking")
	}

	if req.Status != nil {
		status := models.BookingStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown booking status")
		}
		booking.Status = status
	}
	if req.ScheduledAt != nil {
		booking.ScheduledAt = req.ScheduledAt.UTC()
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, appErrors.Internal(err, "failed to update booking")
	}
	return booking, nil
}

// Export renders bookings matching the filter as CSV or PDF bytes.
func (s *BookingService) Export(ctx context.Context, filter models.BookingFilter, format string) ([]byte, string, error) {
	filter.Page = 1
	filter.PageSize = 1000
	bookings, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, "", appErrors.Internal(err, "failed to load bookings for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Email", "Session Type", "Scheduled At", "Status", "Notes"},
	}
	for _, b := range bookings {
		notes := ""
		if b.Notes != nil {
			notes = *b.Notes
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           b.ID,
			"Email":        b.Email,
			"Session Type": b.SessionType,
			"Scheduled At": b.ScheduledAt.Format(time.RFC3339),
			"Status":       string(b.Status),
			"Notes":        notes,
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
		data, err := s.pdfExporter.Render(dataset, "Bookings")
		if err != nil {
			return nil, "", appErrors.Internal(err, "failed to render pdf export")
		}
		return data, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
