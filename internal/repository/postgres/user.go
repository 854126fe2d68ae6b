package postgres

import (
	"database/sql"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUserExists creates the user record on first contact and keeps the
// username current afterwards.
func (r *UserRepo) EnsureUserExists(userID int64, username string) error {
	query := `
		INSERT INTO users (user_id, username)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET username = EXCLUDED.username
	`
	_, err := r.db.Exec(query, userID, username)
	return err
}

// AllUserIDs returns every known user id, used for broadcasts.
func (r *UserRepo) AllUserIDs() ([]int64, error) {
	query := `
		SELECT user_id FROM users ORDER BY created_at
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
