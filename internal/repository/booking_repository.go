package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peakplay/coaching-api/internal/models"
)

// BookingRepository persists scheduled sessions.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs the repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, email, session_type, scheduled_at, status, notes, created_at, updated_at`

// Create inserts a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	const query = `INSERT INTO bookings (id, email, session_type, scheduled_at, status, notes, created_at, updated_at)
VALUES (:id, :email, :session_type, :scheduled_at, :status, :notes, :created_at, :updated_at)`
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// FindByID fetches a booking by id.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns bookings matching the filter with a total count.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error) {
	var clauses []string
	var args []interface{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SessionType != "" {
		args = append(args, filter.SessionType)
		clauses = append(clauses, fmt.Sprintf("session_type = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("scheduled_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("scheduled_at <= $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(email) LIKE $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bookings"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM bookings%s ORDER BY scheduled_at DESC", bookingColumns, where)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

// Update writes the mutable booking fields.
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	const query = `UPDATE bookings
SET status = :status, scheduled_at = :scheduled_at, notes = :notes, updated_at = :updated_at
WHERE id = :id`
	booking.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// ListScheduledBetween returns SCHEDULED bookings inside [from, to],
// used by the reminder scan windows.
func (r *BookingRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings
WHERE status = $1 AND scheduled_at >= $2 AND scheduled_at <= $3
ORDER BY scheduled_at ASC`, bookingColumns)

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, models.BookingScheduled, from, to); err != nil {
		return nil, fmt.Errorf("list scheduled bookings: %w", err)
	}
	return bookings, nil
}
