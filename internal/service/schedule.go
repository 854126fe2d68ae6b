package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gamebot/internal/repository"
)

// scheduleLayout is the operator-facing date format: "31.12.2026 18:00".
const scheduleLayout = "02.01.2006 15:04"

// mskZone is the fixed offset the operator's date/time is interpreted in.
// Conversion to absolute time happens at scheduling time, not at send time.
var mskZone = time.FixedZone("MSK", 3*60*60)

// Sender delivers one outbound text to a user. Implemented by the
// transport layer.
type Sender interface {
	Send(userID int64, text string) error
}

// ScheduleService owns the deferred-message queue: operators enqueue
// messages with an absolute due time and the background poll loop
// delivers them at-least-once.
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepository
	sender       Sender
	logger       *zap.Logger
	interval     time.Duration
	now          func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo repository.ScheduleRepository, sender Sender, interval time.Duration, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		sender:       sender,
		logger:       logger,
		interval:     interval,
		now:          time.Now,
	}
}

// Schedule parses "DD.MM.YYYY HH:MM" in MSK and enqueues the message.
// The returned time is the absolute due moment, for the confirmation reply.
func (s *ScheduleService) Schedule(targetUserID int64, text, when string) (time.Time, error) {
	dueAt, err := time.ParseInLocation(scheduleLayout, strings.TrimSpace(when), mskZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q, expected DD.MM.YYYY HH:MM", when)
	}

	if err := s.scheduleRepo.Create(targetUserID, text, dueAt.Unix()); err != nil {
		return time.Time{}, fmt.Errorf("failed to enqueue message: %w", err)
	}

	s.logger.Info("Message scheduled",
		zap.Int64("target_user_id", targetUserID),
		zap.Time("due_at", dueAt),
	)
	return dueAt, nil
}

// Run polls the queue until the context is cancelled. Individual
// iteration failures are logged and retried on the next tick; the loop
// itself never stops on error.
func (s *ScheduleService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			if err := s.DeliverDue(); err != nil {
				s.logger.Error("Scheduler poll failed", zap.Error(err))
			}
		}
	}
}

// DeliverDue dispatches every pending message whose due time has passed.
// Delivery is at-least-once: a send that succeeds but fails to flip the
// status will be re-sent on a later poll, and consumers tolerate that.
func (s *ScheduleService) DeliverDue() error {
	pending, err := s.scheduleRepo.Pending()
	if err != nil {
		return fmt.Errorf("failed to list pending messages: %w", err)
	}

	now := s.now()
	for _, msg := range pending {
		if !msg.Due(now) {
			continue
		}

		if err := s.sender.Send(msg.TargetUserID, msg.Text); err != nil {
			// Left pending: the next cycle retries.
			s.logger.Error("Failed to deliver scheduled message",
				zap.Int64("id", msg.ID),
				zap.Int64("target_user_id", msg.TargetUserID),
				zap.Error(err),
			)
			continue
		}

		if err := s.scheduleRepo.MarkSent(msg.ID); err != nil {
			s.logger.Error("Failed to mark message sent",
				zap.Int64("id", msg.ID),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("Scheduled message delivered",
			zap.Int64("id", msg.ID),
			zap.Int64("target_user_id", msg.TargetUserID),
		)
	}

	return nil
}
