package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestAvailabilityRepositoryListActiveByDayAndType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	rows := sqlmock.NewRows([]string{"id", "day_of_week", "start_time", "end_time", "session_type", "active", "created_at", "updated_at"}).
		AddRow("slot-1", 1, "09:00", "10:00", "vod-review", true, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, day_of_week").
		WithArgs(1, "vod-review").
		WillReturnRows(rows)

	slots, err := repo.ListActiveByDayAndType(context.Background(), 1, "vod-review")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)
}

func TestAvailabilityRepositoryCreateSlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	mock.ExpectExec("INSERT INTO availability_slots").
		WithArgs("slot-1", 1, "09:00", "10:00", "vod-review", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.AvailabilitySlot{
		ID:          "slot-1",
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "10:00",
		SessionType: "vod-review",
		Active:      true,
	}
	require.NoError(t, repo.CreateSlot(context.Background(), slot))
	assert.False(t, slot.CreatedAt.IsZero())
}

func TestAvailabilityRepositoryDeleteSlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	mock.ExpectExec("DELETE FROM availability_slots").
		WithArgs("slot-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteSlot(context.Background(), "slot-1"))
}
