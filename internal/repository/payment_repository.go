package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peakplay/coaching-api/internal/models"
)

// PaymentRepository persists checkout-session payment rows.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, submission_id, checkout_session_id, provider_payment_id, email, coaching_type,
amount_cents, currency, status, created_at, updated_at`

// Create inserts a new payment row.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	const query = `INSERT INTO payments
(id, submission_id, checkout_session_id, provider_payment_id, email, coaching_type, amount_cents, currency, status, created_at, updated_at)
VALUES (:id, :submission_id, :checkout_session_id, :provider_payment_id, :email, :coaching_type, :amount_cents, :currency, :status, :created_at, :updated_at)`
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindBySubmissionID returns the payment linked to a submission, or nil
// when none exists.
func (r *PaymentRepository) FindBySubmissionID(ctx context.Context, submissionID string) (*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE submission_id = $1`, paymentColumns)
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, submissionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find payment by submission: %w", err)
	}
	return &payment, nil
}

// FindBySessionID fetches a payment by its external checkout session id.
func (r *PaymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE checkout_session_id = $1`, paymentColumns)
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, sessionID); err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateStatusBySession flips payment status during redirect reconciliation,
// optionally stamping the provider's payment id.
func (r *PaymentRepository) UpdateStatusBySession(ctx context.Context, sessionID string, status models.PaymentStatus, providerPaymentID *string) error {
	const query = `UPDATE payments
SET status = $1, provider_payment_id = COALESCE($2, provider_payment_id), updated_at = $3
WHERE checkout_session_id = $4`
	result, err := r.db.ExecContext(ctx, query, status, providerPaymentID, time.Now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
