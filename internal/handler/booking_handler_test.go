package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	"github.com/peakplay/coaching-api/internal/service"
	"github.com/peakplay/coaching-api/pkg/response"
)

type bookingRepoStub struct {
	bookings []models.Booking
	created  *models.Booking
}

func (s *bookingRepoStub) Create(ctx context.Context, booking *models.Booking) error {
	s.created = booking
	s.bookings = append(s.bookings, *booking)
	return nil
}

func (s *bookingRepoStub) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *bookingRepoStub) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error) {
	return s.bookings, len(s.bookings), nil
}

func (s *bookingRepoStub) Update(ctx context.Context, booking *models.Booking) error {
	return nil
}

type exceptionWriterStub struct{}

func (exceptionWriterStub) CreateException(ctx context.Context, exc *models.AvailabilityException) error {
	return nil
}

type notifierStub struct{}

func (notifierStub) Notify(kind, content string) {}

func newBookingHandlerForTest(repo *bookingRepoStub) *BookingHandler {
	svc := service.NewBookingService(repo, exceptionWriterStub{}, notifierStub{}, nil, nil, nil)
	return NewBookingHandler(svc)
}

func TestBookingHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &bookingRepoStub{}
	handler := newBookingHandlerForTest(repo)

	payload, _ := json.Marshal(dto.CreateBookingRequest{
		Email:       "player@example.com",
		SessionType: "live-session",
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, models.BookingScheduled, repo.created.Status)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
}

func TestBookingHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBookingHandlerForTest(&bookingRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
}

func TestBookingHandlerCreatePastTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &bookingRepoStub{}
	handler := newBookingHandlerForTest(repo)

	payload, _ := json.Marshal(dto.CreateBookingRequest{
		Email:       "player@example.com",
		SessionType: "live-session",
		ScheduledAt: time.Now().Add(-time.Hour),
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.created)
}

func TestBookingHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &bookingRepoStub{bookings: []models.Booking{{
		ID:          "b-1",
		Email:       "player@example.com",
		SessionType: "live-session",
		ScheduledAt: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		Status:      models.BookingScheduled,
	}}}
	handler := newBookingHandlerForTest(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/bookings/export?format=csv", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "player@example.com")
}
