package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peakplay/coaching-api/internal/models"
)

// FriendCodeRepository persists promotional friend codes.
type FriendCodeRepository struct {
	db *sqlx.DB
}

// NewFriendCodeRepository constructs the repository.
func NewFriendCodeRepository(db *sqlx.DB) *FriendCodeRepository {
	return &FriendCodeRepository{db: db}
}

const friendCodeColumns = `id, code, uses, max_uses, expires_at, active, created_at, updated_at`

// Create inserts a new code.
func (r *FriendCodeRepository) Create(ctx context.Context, code *models.FriendCode) error {
	const query = `INSERT INTO friend_codes (id, code, uses, max_uses, expires_at, active, created_at, updated_at)
VALUES (:id, :code, :uses, :max_uses, :expires_at, :active, :created_at, :updated_at)`
	now := time.Now().UTC()
	code.CreatedAt = now
	code.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("create friend code: %w", err)
	}
	return nil
}

// FindByID fetches a code by id.
func (r *FriendCodeRepository) FindByID(ctx context.Context, id string) (*models.FriendCode, error) {
	query := fmt.Sprintf(`SELECT %s FROM friend_codes WHERE id = $1`, friendCodeColumns)
	var code models.FriendCode
	if err := r.db.GetContext(ctx, &code, query, id); err != nil {
		return nil, err
	}
	return &code, nil
}

// FindByCode fetches a code by its redeemable value.
func (r *FriendCodeRepository) FindByCode(ctx context.Context, value string) (*models.FriendCode, error) {
	query := fmt.Sprintf(`SELECT %s FROM friend_codes WHERE code = $1`, friendCodeColumns)
	var code models.FriendCode
	if err := r.db.GetContext(ctx, &code, query, value); err != nil {
		return nil, err
	}
	return &code, nil
}

// List returns all codes, newest first.
func (r *FriendCodeRepository) List(ctx context.Context) ([]models.FriendCode, error) {
	query := fmt.Sprintf(`SELECT %s FROM friend_codes ORDER BY created_at DESC`, friendCodeColumns)
	var codes []models.FriendCode
	if err := r.db.SelectContext(ctx, &codes, query); err != nil {
		return nil, fmt.Errorf("list friend codes: %w", err)
	}
	return codes, nil
}

// Update writes the mutable code fields.
func (r *FriendCodeRepository) Update(ctx context.Context, code *models.FriendCode) error {
	const query = `UPDATE friend_codes
SET max_uses = :max_uses, expires_at = :expires_at, active = :active, updated_at = :updated_at
WHERE id = :id`
	code.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("update friend code: %w", err)
	}
	return nil
}

// IncrementUses bumps the usage counter and deactivates the code when the
// increment exhausts max_uses.
func (r *FriendCodeRepository) IncrementUses(ctx context.Context, id string) error {
	const query = `UPDATE friend_codes
SET uses = uses + 1,
    active = CASE WHEN max_uses IS NOT NULL AND uses + 1 >= max_uses THEN FALSE ELSE active END,
    updated_at = $1
WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("increment friend code uses: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a code, preserving its audit trail.
func (r *FriendCodeRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE friend_codes SET active = FALSE, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("deactivate friend code: %w", err)
	}
	return nil
}

// Delete hard-deletes a code. Only valid for codes with no prior usage.
func (r *FriendCodeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM friend_codes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete friend code: %w", err)
	}
	return nil
}
