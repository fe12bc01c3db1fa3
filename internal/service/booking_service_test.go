package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type mockBookingRepo struct {
	bookings  map[string]models.Booking
	created   []*models.Booking
	updated   []*models.Booking
	createErr error
	listErr   error
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: map[string]models.Booking{}}
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, booking)
	m.bookings[booking.ID] = *booking
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &booking, nil
}

func (m *mockBookingRepo) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []models.Booking
	for _, b := range m.bookings {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	m.updated = append(m.updated, booking)
	m.bookings[booking.ID] = *booking
	return nil
}

type mockExceptionWriter struct {
	created []*models.AvailabilityException
	err     error
}

func (m *mockExceptionWriter) CreateException(ctx context.Context, exc *models.AvailabilityException) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, exc)
	return nil
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) Notify(kind, content string) {
	m.messages = append(m.messages, kind+": "+content)
}

func TestBookingServiceCreate(t *testing.T) {
	repo := newMockBookingRepo()
	exceptions := &mockExceptionWriter{}
	notify := &mockNotifier{}
	svc := NewBookingService(repo, exceptions, notify, nil, nil, nil)

	scheduled := time.Now().UTC().Add(48 * time.Hour)
	booking, err := svc.Create(context.Background(), dto.CreateBookingRequest{
		Email:       "player@example.com",
		SessionType: "vod-review",
		ScheduledAt: scheduled,
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, models.BookingScheduled, booking.Status)
	assert.Equal(t, "player@example.com", booking.Email)

	require.Len(t, exceptions.created, 1)
	exc := exceptions.created[0]
	assert.Equal(t, models.ExceptionBooked, exc.Kind)
	require.NotNil(t, exc.BookingID)
	assert.Equal(t, booking.ID, *exc.BookingID)

	require.Len(t, notify.messages, 1)
	assert.True(t, strings.HasPrefix(notify.messages[0], "booking:"))
}

func TestBookingServiceCreateRejectsPastTime(t *testing.T) {
	repo := newMockBookingRepo()
	svc := NewBookingService(repo, &mockExceptionWriter{}, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateBookingRequest{
		Email:       "player@example.com",
		SessionType: "vod-review",
		ScheduledAt: time.Now().UTC().Add(-time.Hour),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestBookingServiceCreateRejectsUnknownSessionType(t *testing.T) {
	svc := NewBookingService(newMockBookingRepo(), &mockExceptionWriter{}, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateBookingRequest{
		Email:       "player@example.com",
		SessionType: "mystery-session",
		ScheduledAt: time.Now().UTC().Add(time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBookingServiceCreateSurvivesExceptionFailure(t *testing.T) {
	repo := newMockBookingRepo()
	exceptions := &mockExceptionWriter{err: assert.AnError}
	svc := NewBookingService(repo, exceptions, nil, nil, nil, nil)

	booking, err := svc.Create(context.Background(), dto.CreateBookingRequest{
		Email:       "player@example.com",
		SessionType: "live-session",
		ScheduledAt: time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	require.Len(t, repo.created, 1)
}

func TestBookingServiceUpdateStatus(t *testing.T) {
	repo := newMockBookingRepo()
	repo.bookings["b-1"] = models.Booking{
		ID:          "b-1",
		Email:       "player@example.com",
		SessionType: "vod-review",
		ScheduledAt: time.Now().UTC().Add(time.Hour),
		Status:      models.BookingScheduled,
	}
	svc := NewBookingService(repo, &mockExceptionWriter{}, nil, nil, nil, nil)

	status := string(models.BookingCompleted)
	updated, err := svc.Update(context.Background(), "b-1", dto.UpdateBookingRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)
	require.Len(t, repo.updated, 1)
}

func TestBookingServiceUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newMockBookingRepo()
	repo.bookings["b-1"] = models.Booking{ID: "b-1", Status: models.BookingScheduled}
	svc := NewBookingService(repo, &mockExceptionWriter{}, nil, nil, nil, nil)

	status := "DELETED"
	_, err := svc.Update(context.Background(), "b-1", dto.UpdateBookingRequest{Status: &status})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.updated)
}

func TestBookingServiceUpdateNotFound(t *testing.T) {
	svc := NewBookingService(newMockBookingRepo(), &mockExceptionWriter{}, nil, nil, nil, nil)

	notes := "great session"
	_, err := svc.Update(context.Background(), "missing", dto.UpdateBookingRequest{Notes: &notes})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestBookingServiceExportCSV(t *testing.T) {
	repo := newMockBookingRepo()
	repo.bookings["b-1"] = models.Booking{
		ID:          "b-1",
		Email:       "player@example.com",
		SessionType: "vod-review",
		ScheduledAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Status:      models.BookingScheduled,
	}
	svc := NewBookingService(repo, &mockExceptionWriter{}, nil, nil, nil, nil)

	data, contentType, err := svc.Export(context.Background(), models.BookingFilter{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(data), "player@example.com")
}

func TestBookingServiceExportRejectsUnknownFormat(t *testing.T) {
	svc := NewBookingService(newMockBookingRepo(), &mockExceptionWriter{}, nil, nil, nil, nil)

	_, _, err := svc.Export(context.Background(), models.BookingFilter{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBookingServiceListDefaultsPagination(t *testing.T) {
	repo := newMockBookingRepo()
	repo.bookings["b-1"] = models.Booking{ID: "b-1"}
	svc := NewBookingService(repo, &mockExceptionWriter{}, nil, nil, nil, nil)

	_, pagination, err := svc.List(context.Background(), models.BookingFilter{Page: 0, PageSize: 0})
	require.NoError(t, err)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)
}
