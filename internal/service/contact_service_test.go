package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/dto"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type recordingSender struct {
	content string
	fail    bool
}

func (s *recordingSender) SendNow(ctx context.Context, content string) dto.NotifyResult {
	s.content = content
	if s.fail {
		return dto.NotifyResult{Sent: false, Error: "webhook returned 500"}
	}
	return dto.NotifyResult{Sent: true}
}

func contactRequest() dto.ContactRequest {
	return dto.ContactRequest{
		Name:    "Alex",
		Email:   "alex@example.com",
		Subject: "Coaching question",
		Message: "Do you cover tank play in replay reviews?",
	}
}

func TestContactSend(t *testing.T) {
	sender := &recordingSender{}
	svc := NewContactService(sender, nil, nil)

	result, err := svc.Send(context.Background(), contactRequest())
	require.NoError(t, err)
	assert.True(t, result.Sent)
	assert.Contains(t, sender.content, "Alex <alex@example.com>")
	assert.Contains(t, sender.content, "Coaching question")
}

func TestContactSendFailureIsReportedNotFatal(t *testing.T) {
	sender := &recordingSender{fail: true}
	svc := NewContactService(sender, nil, nil)

	result, err := svc.Send(context.Background(), contactRequest())
	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Equal(t, "webhook returned 500", result.Error)
}

func TestContactSendRejectsShortMessage(t *testing.T) {
	sender := &recordingSender{}
	svc := NewContactService(sender, nil, nil)

	req := contactRequest()
	req.Message = "hi"
	_, err := svc.Send(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, sender.content)
}
