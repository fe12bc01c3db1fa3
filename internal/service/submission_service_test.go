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

type mockSubmissionRepo struct {
	subs      map[string]models.ReplaySubmission
	created   []*models.ReplaySubmission
	updated   []*models.ReplaySubmission
	createErr error
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: map[string]models.ReplaySubmission{}}
}

func (m *mockSubmissionRepo) Create(ctx context.Context, sub *models.ReplaySubmission) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, sub)
	m.subs[sub.ID] = *sub
	return nil
}

func (m *mockSubmissionRepo) FindByID(ctx context.Context, id string) (*models.ReplaySubmission, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &sub, nil
}

func (m *mockSubmissionRepo) List(ctx context.Context, filter models.SubmissionFilter) ([]models.ReplaySubmission, int, error) {
	var out []models.ReplaySubmission
	for _, sub := range m.subs {
		out = append(out, sub)
	}
	return out, len(out), nil
}

func (m *mockSubmissionRepo) Update(ctx context.Context, sub *models.ReplaySubmission) error {
	m.updated = append(m.updated, sub)
	m.subs[sub.ID] = *sub
	return nil
}

func intakeRequest() dto.CreateSubmissionRequest {
	return dto.CreateSubmissionRequest{
		Name:         "Ana Main",
		Email:        "ana@example.com",
		CoachingType: "replay-review",
		Rank:         "Diamond 2",
		Role:         "support",
		ReplayCodes: []dto.ReplayCodeInput{
			{Code: "AB12CD"},
			{Code: "EF34GH"},
		},
	}
}

func TestSubmissionServiceCreate(t *testing.T) {
	repo := newMockSubmissionRepo()
	notify := &mockNotifier{}
	svc := NewSubmissionService(repo, notify, nil, nil, nil)

	sub, err := svc.Create(context.Background(), intakeRequest())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, models.SubmissionPending, sub.Status)
	require.Len(t, sub.ReplayCodes, 2)
	assert.Equal(t, sub.ID, sub.ReplayCodes[0].SubmissionID)

	require.Len(t, notify.messages, 1)
	assert.Contains(t, notify.messages[0], "AB12CD")
}

func TestSubmissionServiceCreateRejectsMissingReplayCodes(t *testing.T) {
	repo := newMockSubmissionRepo()
	svc := NewSubmissionService(repo, nil, nil, nil, nil)

	req := intakeRequest()
	req.ReplayCodes = nil
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestSubmissionServiceCreateRejectsTooManyReplayCodes(t *testing.T) {
	svc := NewSubmissionService(newMockSubmissionRepo(), nil, nil, nil, nil)

	req := intakeRequest()
	req.ReplayCodes = make([]dto.ReplayCodeInput, 6)
	for i := range req.ReplayCodes {
		req.ReplayCodes[i] = dto.ReplayCodeInput{Code: "CODE"}
	}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubmissionServiceCreateRejectsUnknownCoachingType(t *testing.T) {
	svc := NewSubmissionService(newMockSubmissionRepo(), nil, nil, nil, nil)

	req := intakeRequest()
	req.CoachingType = "group-hug"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubmissionServiceUpdateAndArchive(t *testing.T) {
	repo := newMockSubmissionRepo()
	repo.subs["s-1"] = models.ReplaySubmission{ID: "s-1", Status: models.SubmissionPending}
	svc := NewSubmissionService(repo, nil, nil, nil, nil)

	status := string(models.SubmissionInProgress)
	bookingID := "b-9"
	sub, err := svc.Update(context.Background(), "s-1", dto.UpdateSubmissionRequest{
		Status:    &status,
		BookingID: &bookingID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionInProgress, sub.Status)
	require.NotNil(t, sub.BookingID)
	assert.Equal(t, "b-9", *sub.BookingID)

	archived, err := svc.Archive(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionArchived, archived.Status)
}

func TestSubmissionServiceUpdateNotFound(t *testing.T) {
	svc := NewSubmissionService(newMockSubmissionRepo(), nil, nil, nil, nil)

	notes := "needs vod link"
	_, err := svc.Update(context.Background(), "missing", dto.UpdateSubmissionRequest{Notes: &notes})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubmissionServiceExportPDF(t *testing.T) {
	repo := newMockSubmissionRepo()
	repo.subs["s-1"] = models.ReplaySubmission{
		ID:           "s-1",
		Name:         "Ana Main",
		Email:        "ana@example.com",
		CoachingType: "replay-review",
		Rank:         "Diamond 2",
		Role:         "support",
		Status:       models.SubmissionPending,
	}
	svc := NewSubmissionService(repo, nil, nil, nil, nil)

	data, contentType, err := svc.Export(context.Background(), models.SubmissionFilter{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, data)
}
