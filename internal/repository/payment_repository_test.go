package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/models"
)

func TestPaymentRepositoryFindBySubmissionIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPaymentRepository(db)
	mock.ExpectQuery("SELECT id, submission_id").
		WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	payment, err := repo.FindBySubmissionID(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Nil(t, payment)
}

func TestPaymentRepositoryFindBySubmissionID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPaymentRepository(db)
	subID := "sub-1"
	rows := sqlmock.NewRows([]string{"id", "submission_id", "checkout_session_id", "provider_payment_id", "email", "coaching_type", "amount_cents", "currency", "status", "created_at", "updated_at"}).
		AddRow("pay-1", &subID, "sess-1", nil, "player@example.com", "vod-review", 3500, "usd", "PENDING", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, submission_id").
		WithArgs("sub-1").
		WillReturnRows(rows)

	payment, err := repo.FindBySubmissionID(context.Background(), "sub-1")
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.EqualValues(t, 3500, payment.AmountCents)
}

func TestPaymentRepositoryUpdateStatusBySession(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPaymentRepository(db)
	providerID := "prov-9"
	mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentPaid, &providerID, sqlmock.AnyArg(), "sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatusBySession(context.Background(), "sess-1", models.PaymentPaid, &providerID))
}

func TestPaymentRepositoryUpdateStatusBySessionMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPaymentRepository(db)
	mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentCancelled, nil, sqlmock.AnyArg(), "sess-unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatusBySession(context.Background(), "sess-unknown", models.PaymentCancelled, nil)
	assert.Error(t, err)
}
