package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type availabilityRepository interface {
	ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.AvailabilitySlot, error)
	ListActiveByDayAndType(ctx context.Context, dayOfWeek int, sessionType string) ([]models.AvailabilitySlot, error)
	GetSlot(ctx context.Context, id string) (*models.AvailabilitySlot, error)
	CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) error
	UpdateSlot(ctx context.Context, slot *models.AvailabilitySlot) error
	DeleteSlot(ctx context.Context, id string) error
	CreateException(ctx context.Context, exc *models.AvailabilityException) error
	DeleteException(ctx context.Context, id string) error
	ListUpcomingExceptions(ctx context.Context, from time.Time) ([]models.ExceptionWithSlot, error)
}

// AvailabilityService owns the weekly slot templates and the overlap rule:
// two active slots of the same day and session type may not intersect on
// [start, end) minute intervals. Touching endpoints do not overlap.
type AvailabilityService struct {
	repo      availabilityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(repo availabilityRepository, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, validator: validate, logger: logger}
}

// ListSlots returns slots matching the filter.
func (s *AvailabilityService) ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.AvailabilitySlot, error) {
	slots, err := s.repo.ListSlots(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list availability slots")
	}
	return slots, nil
}

// CreateSlot validates the candidate interval and persists it.
func (s *AvailabilityService) CreateSlot(ctx context.Context, req dto.CreateSlotRequest) (*models.AvailabilitySlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if _, ok := models.CoachingTypeByCode(req.SessionType); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown session type")
	}

	start, end, err := parseSlotTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoOverlap(ctx, req.DayOfWeek, req.SessionType, start, end, ""); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	slot := &models.AvailabilitySlot{
		ID:          uuid.NewString(),
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SessionType: req.SessionType,
		Active:      active,
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, appErrors.Internal(err, "failed to create availability slot")
	}
	return slot, nil
}

// UpdateSlot applies an explicit partial update and re-checks overlap.
func (s *AvailabilityService) UpdateSlot(ctx context.Context, id string, req dto.UpdateSlotRequest) (*models.AvailabilitySlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}

	slot, err := s.repo.GetSlot(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
		}
		return nil, appErrors.Internal(err, "failed to load availability slot")
	}

	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.SessionType != nil {
		if _, ok := models.CoachingTypeByCode(*req.SessionType); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown session type")
		}
		slot.SessionType = *req.SessionType
	}
	if req.Active != nil {
		slot.Active = *req.Active
	}

	start, end, err := parseSlotTimes(slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}
	if slot.Active {
		if err := s.ensureNoOverlap(ctx, slot.DayOfWeek, slot.SessionType, start, end, slot.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, appErrors.Internal(err, "failed to update availability slot")
	}
	return slot, nil
}

// DeleteSlot removes a slot template.
func (s *AvailabilityService) DeleteSlot(ctx context.Context, id string) error {
	if _, err := s.repo.GetSlot(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
		}
		return appErrors.Internal(err, "failed to load availability slot")
	}
	if err := s.repo.DeleteSlot(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete availability slot")
	}
	return nil
}

// CreateException stores a date-specific override.
func (s *AvailabilityService) CreateException(ctx context.Context, req dto.CreateExceptionRequest) (*models.AvailabilityException, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exception payload")
	}

	exc := &models.AvailabilityException{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Kind:      models.ExceptionKind(req.Kind),
		SlotID:    req.SlotID,
		BookingID: req.BookingID,
		Reason:    req.Reason,
	}
	if err := s.repo.CreateException(ctx, exc); err != nil {
		return nil, appErrors.Internal(err, "failed to create availability exception")
	}
	return exc, nil
}

// DeleteException removes an override.
func (s *AvailabilityService) DeleteException(ctx context.Context, id string) error {
	if err := s.repo.DeleteException(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete availability exception")
	}
	return nil
}

// UpcomingExceptions returns future-dated overrides with their parent slot.
func (s *AvailabilityService) UpcomingExceptions(ctx context.Context) ([]models.ExceptionWithSlot, error) {
	items, err := s.repo.ListUpcomingExceptions(ctx, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list availability exceptions")
	}
	return items, nil
}

// ensureNoOverlap rejects a candidate [start, end) interval when any active
// slot of the same day and session type intersects it. excludeID skips the
// slot being edited. Shared boundary points are allowed: 10:00-11:00 next
// to 09:00-10:00 is fine.
func (s *AvailabilityService) ensureNoOverlap(ctx context.Context, dayOfWeek int, sessionType string, start, end int, excludeID string) error {
	existing, err := s.repo.ListActiveByDayAndType(ctx, dayOfWeek, sessionType)
	if err != nil {
		return appErrors.Internal(err, "failed to check slot overlap")
	}

	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		otherStart, otherEnd, err := parseSlotTimes(other.StartTime, other.EndTime)
		if err != nil {
			s.logger.Warn("stored slot has unparseable times",
				zap.String("slot_id", other.ID), zap.Error(err))
			continue
		}
		if start < otherEnd && end > otherStart {
			return appErrors.Clone(appErrors.ErrSlotOverlap,
				"time slot overlaps existing "+other.StartTime+"-"+other.EndTime+" slot")
		}
	}
	return nil
}

// parseSlotTimes converts the HH:MM pair to minutes of day, enforcing
// end strictly after start.
func parseSlotTimes(startTime, endTime string) (int, int, error) {
	start, err := models.MinuteOfDay(startTime)
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid start time, expected HH:MM")
	}
	end, err := models.MinuteOfDay(endTime)
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid end time, expected HH:MM")
	}
	if end <= start {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}
	return start, end, nil
}
