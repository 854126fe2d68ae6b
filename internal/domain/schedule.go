package domain

import "time"

// Scheduled message statuses. A message transitions Pending -> Sent
// exactly once and never back.
const (
	ScheduleStatusPending = "pending"
	ScheduleStatusSent    = "sent"
)

// ScheduledMessage is an operator-scheduled outbound text with an
// absolute due time, delivered at-least-once by the background scheduler.
type ScheduledMessage struct {
	ID           int64
	TargetUserID int64
	Text         string
	DueAt        int64 // unix seconds
	Status       string
	CreatedAt    time.Time
}

// Due reports whether the message should be delivered at the given moment.
func (m ScheduledMessage) Due(now time.Time) bool {
	return m.DueAt <= now.Unix()
}
