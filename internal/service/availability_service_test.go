package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type mockAvailabilityRepo struct {
	slots       []models.AvailabilitySlot
	exceptions  []models.ExceptionWithSlot
	created     []*models.AvailabilitySlot
	updated     []*models.AvailabilitySlot
	deletedIDs  []string
	getSlotErr  error
	listErr     error
	createdExcs []*models.AvailabilityException
}

func (m *mockAvailabilityRepo) ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.AvailabilitySlot, error) {
	return m.slots, m.listErr
}

func (m *mockAvailabilityRepo) ListActiveByDayAndType(ctx context.Context, dayOfWeek int, sessionType string) ([]models.AvailabilitySlot, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.AvailabilitySlot
	for _, slot := range m.slots {
		if slot.DayOfWeek == dayOfWeek && slot.SessionType == sessionType && slot.Active {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepo) GetSlot(ctx context.Context, id string) (*models.AvailabilitySlot, error) {
	if m.getSlotErr != nil {
		return nil, m.getSlotErr
	}
	for i := range m.slots {
		if m.slots[i].ID == id {
			slot := m.slots[i]
			return &slot, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAvailabilityRepo) CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) error {
	m.created = append(m.created, slot)
	return nil
}

func (m *mockAvailabilityRepo) UpdateSlot(ctx context.Context, slot *models.AvailabilitySlot) error {
	m.updated = append(m.updated, slot)
	return nil
}

func (m *mockAvailabilityRepo) DeleteSlot(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockAvailabilityRepo) CreateException(ctx context.Context, exc *models.AvailabilityException) error {
	m.createdExcs = append(m.createdExcs, exc)
	return nil
}

func (m *mockAvailabilityRepo) DeleteException(ctx context.Context, id string) error {
	return nil
}

func (m *mockAvailabilityRepo) ListUpcomingExceptions(ctx context.Context, from time.Time) ([]models.ExceptionWithSlot, error) {
	return m.exceptions, nil
}

func mondaySlot(id, start, end string) models.AvailabilitySlot {
	return models.AvailabilitySlot{
		ID:          id,
		DayOfWeek:   1,
		StartTime:   start,
		EndTime:     end,
		SessionType: "vod-review",
		Active:      true,
	}
}

func TestCreateSlotRejectsEndBeforeStart(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	svc := NewAvailabilityService(repo, nil, nil)

	_, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   1,
		StartTime:   "10:00",
		EndTime:     "09:00",
		SessionType: "vod-review",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestCreateSlotRejectsEqualTimes(t *testing.T) {
	svc := NewAvailabilityService(&mockAvailabilityRepo{}, nil, nil)

	_, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "09:00",
		SessionType: "vod-review",
	})
	require.Error(t, err)
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{mondaySlot("slot-a", "09:00", "10:00")}}
	svc := NewAvailabilityService(repo, nil, nil)

	_, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   1,
		StartTime:   "09:30",
		EndTime:     "10:30",
		SessionType: "vod-review",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "SLOT_OVERLAP", appErr.Code)
	assert.Empty(t, repo.created)
}

func TestCreateSlotAllowsBoundaryTouch(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{mondaySlot("slot-a", "09:00", "10:00")}}
	svc := NewAvailabilityService(repo, nil, nil)

	slot, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   1,
		StartTime:   "10:00",
		EndTime:     "11:00",
		SessionType: "vod-review",
	})
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.True(t, slot.Active)
	require.Len(t, repo.created, 1)
}

func TestCreateSlotAllowsSameTimesOnDifferentDay(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{mondaySlot("slot-a", "09:00", "10:00")}}
	svc := NewAvailabilityService(repo, nil, nil)

	_, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   2,
		StartTime:   "09:00",
		EndTime:     "10:00",
		SessionType: "vod-review",
	})
	require.NoError(t, err)
}

func TestCreateSlotAllowsOverlapForDifferentSessionType(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{mondaySlot("slot-a", "09:00", "10:00")}}
	svc := NewAvailabilityService(repo, nil, nil)

	_, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   1,
		StartTime:   "09:30",
		EndTime:     "10:30",
		SessionType: "live-session",
	})
	require.NoError(t, err)
}

func TestCreateSlotRejectsContainedInterval(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{mondaySlot("slot-a", "09:00", "12:00")}}
	svc := NewAvailabilityService(repo, nil, nil)

	_, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   1,
		StartTime:   "10:00",
		EndTime:     "11:00",
		SessionType: "vod-review",
	})
	require.Error(t, err)
}

func TestCreateSlotRejectsUnknownSessionType(t *testing.T) {
	svc := NewAvailabilityService(&mockAvailabilityRepo{}, nil, nil)

	_, err := svc.CreateSlot(context.Background(), dto.CreateSlotRequest{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "10:00",
		SessionType: "speedrun-coaching",
	})
	require.Error(t, err)
}

func TestUpdateSlotExcludesSelfFromOverlapCheck(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{mondaySlot("slot-a", "09:00", "10:00")}}
	svc := NewAvailabilityService(repo, nil, nil)

	end := "10:30"
	updated, err := svc.UpdateSlot(context.Background(), "slot-a", dto.UpdateSlotRequest{EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, "10:30", updated.EndTime)
	require.Len(t, repo.updated, 1)
}

func TestUpdateSlotRejectsOverlapWithOtherSlot(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{
		mondaySlot("slot-a", "09:00", "10:00"),
		mondaySlot("slot-b", "10:00", "11:00"),
	}}
	svc := NewAvailabilityService(repo, nil, nil)

	start := "09:30"
	_, err := svc.UpdateSlot(context.Background(), "slot-b", dto.UpdateSlotRequest{StartTime: &start})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "SLOT_OVERLAP", appErr.Code)
}

func TestUpdateSlotNotFound(t *testing.T) {
	svc := NewAvailabilityService(&mockAvailabilityRepo{}, nil, nil)

	active := false
	_, err := svc.UpdateSlot(context.Background(), "missing", dto.UpdateSlotRequest{Active: &active})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestMinuteOfDayParsing(t *testing.T) {
	value, err := models.MinuteOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, value)

	_, err = models.MinuteOfDay("24:00")
	assert.Error(t, err)
	_, err = models.MinuteOfDay("0930")
	assert.Error(t, err)
	_, err = models.MinuteOfDay("09:70")
	assert.Error(t, err)
}
