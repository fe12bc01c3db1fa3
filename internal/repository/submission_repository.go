package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peakplay/coaching-api/internal/models"
)

// SubmissionRepository persists replay submissions and their replay codes.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `id, name, email, discord_tag, coaching_type, rank, role, hero, notes, status,
payment_id, booking_id, friend_code_id, created_at, updated_at`

// Create inserts a submission and its replay codes in one transaction.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.ReplaySubmission) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin submission tx: %w", err)
	}

	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	const insertSub = `INSERT INTO replay_submissions
(id, name, email, discord_tag, coaching_type, rank, role, hero, notes, status, payment_id, booking_id, friend_code_id, created_at, updated_at)
VALUES (:id, :name, :email, :discord_tag, :coaching_type, :rank, :role, :hero, :notes, :status, :payment_id, :booking_id, :friend_code_id, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertSub, sub); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert submission: %w", err)
	}

	const insertCode = `INSERT INTO replay_codes (id, submission_id, code, label)
VALUES (:id, :submission_id, :code, :label)`
	for i := range sub.ReplayCodes {
		sub.ReplayCodes[i].SubmissionID = sub.ID
		if _, err := tx.NamedExecContext(ctx, insertCode, sub.ReplayCodes[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert replay code: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission tx: %w", err)
	}
	return nil
}

// FindByID fetches a submission including its replay codes.
func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.ReplaySubmission, error) {
	query := fmt.Sprintf(`SELECT %s FROM replay_submissions WHERE id = $1`, submissionColumns)
	var sub models.ReplaySubmission
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, err
	}

	const codesQuery = `SELECT id, submission_id, code, label FROM replay_codes WHERE submission_id = $1 ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &sub.ReplayCodes, codesQuery, id); err != nil {
		return nil, fmt.Errorf("load replay codes: %w", err)
	}
	return &sub, nil
}

// List returns submissions matching the filter with a total count.
// Replay codes are not loaded for list views.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.ReplaySubmission, int, error) {
	var clauses []string
	var args []interface{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CoachingType != "" {
		args = append(args, filter.CoachingType)
		clauses = append(clauses, fmt.Sprintf("coaching_type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("(LOWER(email) LIKE $%d OR LOWER(name) LIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM replay_submissions"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM replay_submissions%s ORDER BY created_at DESC", submissionColumns, where)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var subs []models.ReplaySubmission
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	return subs, total, nil
}

// Update writes the mutable submission fields.
func (r *SubmissionRepository) Update(ctx context.Context, sub *models.ReplaySubmission) error {
	const query = `UPDATE replay_submissions
SET status = :status, notes = :notes, payment_id = :payment_id, booking_id = :booking_id, updated_at = :updated_at
WHERE id = :id`
	sub.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	return nil
}

// SetStatusByPaymentSession advances every submission linked to the given
// checkout session. Used during redirect reconciliation.
func (r *SubmissionRepository) SetStatusByPaymentSession(ctx context.Context, sessionID string, status models.SubmissionStatus) error {
	const query = `UPDATE replay_submissions
SET status = $1, updated_at = $2
WHERE payment_id IN (SELECT id FROM payments WHERE checkout_session_id = $3)`
	if _, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), sessionID); err != nil {
		return fmt.Errorf("set submission status by session: %w", err)
	}
	return nil
}

// CountByFriendCode reports how many submissions were created with a code.
func (r *SubmissionRepository) CountByFriendCode(ctx context.Context, friendCodeID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM replay_submissions WHERE friend_code_id = $1`, friendCodeID); err != nil {
		return 0, fmt.Errorf("count submissions by friend code: %w", err)
	}
	return count, nil
}
