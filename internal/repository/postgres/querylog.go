package postgres

import (
	"database/sql"

	"gamebot/internal/domain"
)

// QueryLogRepo implements repository.QueryLogRepository
type QueryLogRepo struct {
	db *sql.DB
}

// NewQueryLogRepo creates a new query log repository
func NewQueryLogRepo(db *sql.DB) *QueryLogRepo {
	return &QueryLogRepo{db: db}
}

// Append adds one entry to the append-only search log.
func (r *QueryLogRepo) Append(entry domain.QueryLogEntry) error {
	query := `
		INSERT INTO query_log (user_id, username, query)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(query, entry.UserID, entry.Username, entry.Query)
	return err
}
