package postgres

import (
	"database/sql"

	"gamebot/internal/domain"
)

// LibraryRepo implements repository.LibraryRepository
type LibraryRepo struct {
	db *sql.DB
}

// NewLibraryRepo creates a new library repository
func NewLibraryRepo(db *sql.DB) *LibraryRepo {
	return &LibraryRepo{db: db}
}

// AddMark records a title under one mark kind for the user. Re-marking the
// same title under the same kind is a no-op, so the write is idempotent.
func (r *LibraryRepo) AddMark(userID int64, kind domain.MarkKind, title string) error {
	query := `
		INSERT INTO marks (user_id, kind, title)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, kind, title) DO NOTHING
	`
	_, err := r.db.Exec(query, userID, string(kind), title)
	return err
}

// Marks returns the user's titles under one mark kind in marking order.
func (r *LibraryRepo) Marks(userID int64, kind domain.MarkKind) ([]string, error) {
	query := `
		SELECT title FROM marks
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at
	`
	rows, err := r.db.Query(query, userID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}

	return titles, rows.Err()
}
