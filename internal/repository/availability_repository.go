package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peakplay/coaching-api/internal/models"
)

// AvailabilityRepository persists weekly slots and date exceptions.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const slotColumns = `id, day_of_week, start_time, end_time, session_type, active, created_at, updated_at`

// ListSlots returns slots matching the filter, ordered by day then start.
func (r *AvailabilityRepository) ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.AvailabilitySlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_slots`, slotColumns)
	var clauses []string
	var args []interface{}

	if filter.DayOfWeek != nil {
		args = append(args, *filter.DayOfWeek)
		clauses = append(clauses, fmt.Sprintf("day_of_week = $%d", len(args)))
	}
	if filter.SessionType != "" {
		args = append(args, filter.SessionType)
		clauses = append(clauses, fmt.Sprintf("session_type = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY day_of_week ASC, start_time ASC"

	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// ListActiveByDayAndType returns the active slots a candidate must not
// overlap with.
func (r *AvailabilityRepository) ListActiveByDayAndType(ctx context.Context, dayOfWeek int, sessionType string) ([]models.AvailabilitySlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_slots
WHERE day_of_week = $1 AND session_type = $2 AND active = TRUE
ORDER BY start_time ASC`, slotColumns)

	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, dayOfWeek, sessionType); err != nil {
		return nil, fmt.Errorf("list active slots: %w", err)
	}
	return slots, nil
}

// GetSlot fetches a single slot by id.
func (r *AvailabilityRepository) GetSlot(ctx context.Context, id string) (*models.AvailabilitySlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_slots WHERE id = $1`, slotColumns)
	var slot models.AvailabilitySlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// CreateSlot inserts a new slot.
func (r *AvailabilityRepository) CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) error {
	const query = `INSERT INTO availability_slots (id, day_of_week, start_time, end_time, session_type, active, created_at, updated_at)
VALUES (:id, :day_of_week, :start_time, :end_time, :session_type, :active, :created_at, :updated_at)`
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

// UpdateSlot updates an existing slot in place.
func (r *AvailabilityRepository) UpdateSlot(ctx context.Context, slot *models.AvailabilitySlot) error {
	const query = `UPDATE availability_slots
SET day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time,
    session_type = :session_type, active = :active, updated_at = :updated_at
WHERE id = :id`
	slot.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	return nil
}

// DeleteSlot removes a slot template.
func (r *AvailabilityRepository) DeleteSlot(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM availability_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

// CreateException inserts a date-specific override.
func (r *AvailabilityRepository) CreateException(ctx context.Context, exc *models.AvailabilityException) error {
	const query = `INSERT INTO availability_exceptions (id, date, kind, slot_id, booking_id, reason, created_at)
VALUES (:id, :date, :kind, :slot_id, :booking_id, :reason, :created_at)`
	exc.CreatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, exc); err != nil {
		return fmt.Errorf("create exception: %w", err)
	}
	return nil
}

// DeleteException removes an override.
func (r *AvailabilityRepository) DeleteException(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM availability_exceptions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete exception: %w", err)
	}
	return nil
}

// ListUpcomingExceptions returns future-dated exceptions joined with their
// parent slot when one exists.
func (r *AvailabilityRepository) ListUpcomingExceptions(ctx context.Context, from time.Time) ([]models.ExceptionWithSlot, error) {
	const query = `SELECT e.id, e.date, e.kind, e.slot_id, e.booking_id, e.reason, e.created_at,
       s.id AS slot__id, s.day_of_week AS slot__day_of_week, s.start_time AS slot__start_time,
       s.end_time AS slot__end_time, s.session_type AS slot__session_type, s.active AS slot__active
FROM availability_exceptions e
LEFT JOIN availability_slots s ON s.id = e.slot_id
WHERE e.date >= $1
ORDER BY e.date ASC`

	rows, err := r.db.QueryxContext(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("list upcoming exceptions: %w", err)
	}
	defer rows.Close()

	var result []models.ExceptionWithSlot
	for rows.Next() {
		var (
			exc      models.AvailabilityException
			slotID   *string
			slotDay  *int
			slotFrom *string
			slotTo   *string
			slotType *string
			slotOn   *bool
		)
		if err := rows.Scan(&exc.ID, &exc.Date, &exc.Kind, &exc.SlotID, &exc.BookingID, &exc.Reason, &exc.CreatedAt,
			&slotID, &slotDay, &slotFrom, &slotTo, &slotType, &slotOn); err != nil {
			return nil, fmt.Errorf("scan exception: %w", err)
		}
		item := models.ExceptionWithSlot{AvailabilityException: exc}
		if slotID != nil {
			item.Slot = &models.AvailabilitySlot{
				ID:          *slotID,
				DayOfWeek:   *slotDay,
				StartTime:   *slotFrom,
				EndTime:     *slotTo,
				SessionType: *slotType,
				Active:      *slotOn,
			}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exceptions: %w", err)
	}
	return result, nil
}
