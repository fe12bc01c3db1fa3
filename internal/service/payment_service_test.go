package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type mockPaymentRepo struct {
	payments  map[string]models.Payment // keyed by session id
	created   []*models.Payment
	updates   []string
	createErr error
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: map[string]models.Payment{}}
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, payment)
	m.payments[payment.CheckoutSessionID] = *payment
	return nil
}

func (m *mockPaymentRepo) FindBySubmissionID(ctx context.Context, submissionID string) (*models.Payment, error) {
	for _, p := range m.payments {
		if p.SubmissionID != nil && *p.SubmissionID == submissionID {
			payment := p
			return &payment, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	payment, ok := m.payments[sessionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &payment, nil
}

func (m *mockPaymentRepo) UpdateStatusBySession(ctx context.Context, sessionID string, status models.PaymentStatus, providerPaymentID *string) error {
	payment, ok := m.payments[sessionID]
	if !ok {
		return sql.ErrNoRows
	}
	payment.Status = status
	m.payments[sessionID] = payment
	m.updates = append(m.updates, sessionID+":"+string(status))
	return nil
}

type mockSubmissionStore struct {
	*mockSubmissionRepo
	sessionStatuses []string
}

func newMockSubmissionStore() *mockSubmissionStore {
	return &mockSubmissionStore{mockSubmissionRepo: newMockSubmissionRepo()}
}

func (m *mockSubmissionStore) SetStatusByPaymentSession(ctx context.Context, sessionID string, status models.SubmissionStatus) error {
	m.sessionStatuses = append(m.sessionStatuses, sessionID+":"+string(status))
	return nil
}

type mockGateway struct {
	sessionID   string
	redirectURL string
	err         error
	calls       int
}

func (m *mockGateway) CreateSession(orderID string, amountCents int64, email, description string) (string, string, error) {
	m.calls++
	if m.err != nil {
		return "", "", m.err
	}
	return m.sessionID, m.redirectURL, nil
}

func TestPaymentServiceCreateCheckoutForSubmission(t *testing.T) {
	payments := newMockPaymentRepo()
	subs := newMockSubmissionStore()
	subs.subs["s-1"] = models.ReplaySubmission{
		ID:           "s-1",
		Email:        "ana@example.com",
		CoachingType: "replay-review",
		Status:       models.SubmissionPending,
	}
	gateway := &mockGateway{sessionID: "sess-123", redirectURL: "https://pay.example/sess-123"}
	svc := NewPaymentService(payments, subs, gateway, nil, nil, nil)

	submissionID := "s-1"
	resp, err := svc.CreateCheckout(context.Background(), dto.CreateCheckoutRequest{SubmissionID: &submissionID})
	require.NoError(t, err)
	assert.Equal(t, "sess-123", resp.SessionID)
	assert.Equal(t, "https://pay.example/sess-123", resp.RedirectURL)

	require.Len(t, payments.created, 1)
	payment := payments.created[0]
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, int64(2500), payment.AmountCents)
	require.NotNil(t, payment.SubmissionID)
	assert.Equal(t, "s-1", *payment.SubmissionID)

	// The submission now references the payment and awaits settlement.
	updated := subs.subs["s-1"]
	assert.Equal(t, models.SubmissionAwaitingPayment, updated.Status)
	require.NotNil(t, updated.PaymentID)
	assert.Equal(t, payment.ID, *updated.PaymentID)
}

func TestPaymentServiceCreateCheckoutDuplicateRejected(t *testing.T) {
	payments := newMockPaymentRepo()
	subID := "s-1"
	payments.payments["sess-old"] = models.Payment{
		ID:                "p-old",
		CheckoutSessionID: "sess-old",
		SubmissionID:      &subID,
		Status:            models.PaymentPaid,
	}
	subs := newMockSubmissionStore()
	subs.subs["s-1"] = models.ReplaySubmission{ID: "s-1", Email: "ana@example.com", CoachingType: "replay-review"}
	gateway := &mockGateway{sessionID: "sess-new"}
	svc := NewPaymentService(payments, subs, gateway, nil, nil, nil)

	_, err := svc.CreateCheckout(context.Background(), dto.CreateCheckoutRequest{SubmissionID: &subID})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicatePayment.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)

	// No external call and no second row.
	assert.Zero(t, gateway.calls)
	assert.Empty(t, payments.created)
}

func TestPaymentServiceCreateCheckoutExplicitPair(t *testing.T) {
	payments := newMockPaymentRepo()
	gateway := &mockGateway{sessionID: "sess-77", redirectURL: "https://pay.example/sess-77"}
	svc := NewPaymentService(payments, newMockSubmissionStore(), gateway, nil, nil, nil)

	coachingType := "live-session"
	email := "ana@example.com"
	resp, err := svc.CreateCheckout(context.Background(), dto.CreateCheckoutRequest{
		CoachingType: &coachingType,
		Email:        &email,
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-77", resp.SessionID)

	require.Len(t, payments.created, 1)
	assert.Equal(t, int64(5000), payments.created[0].AmountCents)
	assert.Nil(t, payments.created[0].SubmissionID)
}

func TestPaymentServiceCreateCheckoutRequiresTarget(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepo(), newMockSubmissionStore(), &mockGateway{}, nil, nil, nil)

	_, err := svc.CreateCheckout(context.Background(), dto.CreateCheckoutRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceCreateCheckoutUnknownCoachingType(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepo(), newMockSubmissionStore(), &mockGateway{}, nil, nil, nil)

	coachingType := "mystery"
	email := "ana@example.com"
	_, err := svc.CreateCheckout(context.Background(), dto.CreateCheckoutRequest{
		CoachingType: &coachingType,
		Email:        &email,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceConfirmBySession(t *testing.T) {
	payments := newMockPaymentRepo()
	payments.payments["sess-1"] = models.Payment{
		ID:                "p-1",
		CheckoutSessionID: "sess-1",
		Status:            models.PaymentPending,
	}
	subs := newMockSubmissionStore()
	svc := NewPaymentService(payments, subs, &mockGateway{}, nil, nil, nil)

	providerID := "mt-abc"
	require.NoError(t, svc.ConfirmBySession(context.Background(), "sess-1", &providerID))
	assert.Equal(t, models.PaymentPaid, payments.payments["sess-1"].Status)
	assert.Contains(t, subs.sessionStatuses, "sess-1:PAID")
}

func TestPaymentServiceConfirmUnknownSession(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepo(), newMockSubmissionStore(), &mockGateway{}, nil, nil, nil)

	err := svc.ConfirmBySession(context.Background(), "sess-missing", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceCancelBySession(t *testing.T) {
	payments := newMockPaymentRepo()
	payments.payments["sess-1"] = models.Payment{
		ID:                "p-1",
		CheckoutSessionID: "sess-1",
		Status:            models.PaymentPending,
	}
	subs := newMockSubmissionStore()
	svc := NewPaymentService(payments, subs, &mockGateway{}, nil, nil, nil)

	require.NoError(t, svc.CancelBySession(context.Background(), "sess-1"))
	assert.Equal(t, models.PaymentCancelled, payments.payments["sess-1"].Status)
	assert.Contains(t, subs.sessionStatuses, "sess-1:PENDING")
}

func TestPaymentServiceGetBySession(t *testing.T) {
	payments := newMockPaymentRepo()
	subID := "s-1"
	payments.payments["sess-1"] = models.Payment{
		ID:                "p-1",
		CheckoutSessionID: "sess-1",
		SubmissionID:      &subID,
		AmountCents:       3500,
		Currency:          "usd",
		CoachingType:      "vod-review",
		Status:            models.PaymentPaid,
	}
	svc := NewPaymentService(payments, newMockSubmissionStore(), &mockGateway{}, nil, nil, nil)

	detail, err := svc.GetBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "PAID", detail.Status)
	assert.Equal(t, int64(3500), detail.AmountCents)
	assert.Equal(t, "s-1", detail.SubmissionID)
}
