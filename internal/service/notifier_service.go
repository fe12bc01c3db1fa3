package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/pkg/jobs"
)

// WebhookSender posts a single message to the configured chat channel.
type WebhookSender interface {
	Send(ctx context.Context, content string) error
}

// DiscordWebhook sends messages through a Discord webhook URL.
type DiscordWebhook struct {
	url    string
	client *http.Client
}

// NewDiscordWebhook constructs a webhook sender.
func NewDiscordWebhook(url string) *DiscordWebhook {
	return &DiscordWebhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the content as a webhook message.
func (w *DiscordWebhook) Send(ctx context.Context, content string) error {
	if w.url == "" {
		return fmt.Errorf("discord webhook url not configured")
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

// notificationPayload is what travels through the job queue.
type notificationPayload struct {
	Content string
}

// NotifierService queues outbound chat notifications so submission and
// contact handlers never block on (or fail because of) Discord.
type NotifierService struct {
	sender  WebhookSender
	queue   *jobs.Queue
	logger  *zap.Logger
	metrics *MetricsService
}

// NewNotifierService constructs the notifier and its dispatch queue.
func NewNotifierService(sender WebhookSender, logger *zap.Logger, metrics *MetricsService) *NotifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotifierService{sender: sender, logger: logger, metrics: metrics}
	s.queue = jobs.NewQueue("notifications", s.dispatch, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: 5 * time.Second,
		Logger:     logger,
	})
	return s
}

// Start begins queue consumption.
func (s *NotifierService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *NotifierService) Stop() {
	s.queue.Stop()
}

// Notify enqueues a fire-and-forget notification. Enqueue failures are
// logged, never surfaced to the caller.
func (s *NotifierService) Notify(kind, content string) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: notificationPayload{Content: content},
	})
	if err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("kind", kind), zap.Error(err))
	}
}

// SendNow sends synchronously and reports a structured result. Used by the
// admin test endpoint and the reminder scheduler.
func (s *NotifierService) SendNow(ctx context.Context, content string) dto.NotifyResult {
	if err := s.sender.Send(ctx, content); err != nil {
		s.observe(false)
		return dto.NotifyResult{Sent: false, Error: err.Error()}
	}
	s.observe(true)
	return dto.NotifyResult{Sent: true}
}

func (s *NotifierService) dispatch(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(notificationPayload)
	if !ok {
		s.logger.Error("notification job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	if err := s.sender.Send(ctx, payload.Content); err != nil {
		s.observe(false)
		return err
	}
	s.observe(true)
	return nil
}

func (s *NotifierService) observe(sent bool) {
	if s.metrics != nil {
		s.metrics.ObserveNotification(sent)
	}
}
