package postgres

import (
	"database/sql"

	"gamebot/internal/domain"
)

// ScheduleRepo implements repository.ScheduleRepository
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo creates a new schedule repository
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// Create enqueues a deferred message with an absolute due time.
func (r *ScheduleRepo) Create(targetUserID int64, text string, dueAt int64) error {
	query := `
		INSERT INTO scheduled_messages (target_user_id, text, due_at, status)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, targetUserID, text, dueAt, domain.ScheduleStatusPending)
	return err
}

// Pending returns every message still waiting to be sent, oldest due first.
func (r *ScheduleRepo) Pending() ([]domain.ScheduledMessage, error) {
	query := `
		SELECT id, target_user_id, text, due_at, status, created_at
		FROM scheduled_messages
		WHERE status = $1
		ORDER BY due_at
	`
	rows, err := r.db.Query(query, domain.ScheduleStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ScheduledMessage
	for rows.Next() {
		var m domain.ScheduledMessage
		if err := rows.Scan(&m.ID, &m.TargetUserID, &m.Text, &m.DueAt, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// MarkSent flips a message to sent. The status guard keeps the
// Pending -> Sent transition one-way.
func (r *ScheduleRepo) MarkSent(id int64) error {
	query := `
		UPDATE scheduled_messages
		SET status = $1
		WHERE id = $2 AND status = $3
	`
	_, err := r.db.Exec(query, domain.ScheduleStatusSent, id, domain.ScheduleStatusPending)
	return err
}
