package postgres

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"gamebot/internal/domain"
)

func TestUserRepo_EnsureUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(123), "gamer").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.EnsureUserExists(123, "gamer")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_AllUserIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT user_id FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).
			AddRow(123).
			AddRow(456))

	ids, err := repo.AllUserIDs()

	assert.NoError(t, err)
	assert.Equal(t, []int64{123, 456}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryLogRepo_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewQueryLogRepo(db)

	entry := domain.QueryLogEntry{UserID: 123, Username: "gamer", Query: "god of war"}

	mock.ExpectExec("INSERT INTO query_log").
		WithArgs(entry.UserID, entry.Username, entry.Query).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Append(entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
