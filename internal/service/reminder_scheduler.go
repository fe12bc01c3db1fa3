package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/models"
)

type reminderBookingLister interface {
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
}

// ReminderConfig tunes the scan interval and window tolerance.
type ReminderConfig struct {
	Interval  time.Duration
	Tolerance time.Duration
}

// ReminderScheduler is a process-wide background loop that reminds players
// ahead of their session. Every tick it selects SCHEDULED bookings whose
// start falls inside the 24h or 30m lookahead window (each widened by the
// tolerance on both sides) and sends one notification per match. There is
// no persisted checkpoint, so a restart inside a window may repeat a send.
type ReminderScheduler struct {
	bookings reminderBookingLister
	sender   synchronousSender
	logger   *zap.Logger
	metrics  *MetricsService

	interval  time.Duration
	tolerance time.Duration
	now       func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewReminderScheduler constructs the scheduler. It does not start it.
func NewReminderScheduler(bookings reminderBookingLister, sender synchronousSender, cfg ReminderConfig, logger *zap.Logger, metrics *MetricsService) *ReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = 5 * time.Minute
	}
	return &ReminderScheduler{
		bookings:  bookings,
		sender:    sender,
		logger:    logger,
		metrics:   metrics,
		interval:  cfg.Interval,
		tolerance: cfg.Tolerance,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start launches the loop. Calling Start on a running scheduler is a no-op.
func (s *ReminderScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(loopCtx)
	s.logger.Info("reminder scheduler started", zap.Duration("interval", s.interval))
}

// Stop halts the loop and waits for the current scan to finish. Stopping a
// scheduler that is not running is a no-op.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("reminder scheduler stopped")
}

// IsRunning reports whether the loop is active.
func (s *ReminderScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ReminderScheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan runs one reminder pass. A failed individual notification is logged
// and does not abort the remaining bookings.
func (s *ReminderScheduler) Scan(ctx context.Context) {
	now := s.now()
	for _, lookahead := range []time.Duration{24 * time.Hour, 30 * time.Minute} {
		from := now.Add(lookahead - s.tolerance)
		to := now.Add(lookahead + s.tolerance)

		bookings, err := s.bookings.ListScheduledBetween(ctx, from, to)
		if err != nil {
			s.logger.Error("reminder scan failed",
				zap.Duration("lookahead", lookahead), zap.Error(err))
			continue
		}

		for _, booking := range bookings {
			result := s.sender.SendNow(ctx, fmt.Sprintf(
				"Reminder: %s session for %s at %s",
				booking.SessionType, booking.Email,
				booking.ScheduledAt.Format(time.RFC1123)))
			if !result.Sent {
				s.logger.Warn("reminder delivery failed",
					zap.String("booking_id", booking.ID), zap.String("error", result.Error))
				continue
			}
			if s.metrics != nil {
				s.metrics.ObserveReminderSent()
			}
		}
	}
}
