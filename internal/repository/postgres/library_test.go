package postgres

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"gamebot/internal/domain"
)

func TestLibraryRepo_AddMark(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewLibraryRepo(db)

	userID := int64(123)
	title := "God of War"

	mock.ExpectExec("INSERT INTO marks").
		WithArgs(userID, "completed", title).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.AddMark(userID, domain.MarkCompleted, title)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryRepo_AddMark_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewLibraryRepo(db)

	// ON CONFLICT DO NOTHING: zero rows affected is still success
	mock.ExpectExec("INSERT INTO marks").
		WithArgs(int64(123), "played", "Dying Light").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.AddMark(123, domain.MarkPlayed, "Dying Light")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryRepo_Marks(t *testing.T) {
	tests := []struct {
		name          string
		kind          domain.MarkKind
		mockRows      *sqlmock.Rows
		mockError     error
		expected      []string
		expectedError bool
	}{
		{
			name: "marks found",
			kind: domain.MarkCompleted,
			mockRows: sqlmock.NewRows([]string{"title"}).
				AddRow("God of War").
				AddRow("Gran Turismo"),
			expected: []string{"God of War", "Gran Turismo"},
		},
		{
			name:     "no marks",
			kind:     domain.MarkNotInterested,
			mockRows: sqlmock.NewRows([]string{"title"}),
			expected: nil,
		},
		{
			name:          "query error",
			kind:          domain.MarkPlayed,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewLibraryRepo(db)

			expect := mock.ExpectQuery("SELECT title FROM marks").
				WithArgs(int64(123), string(tt.kind))
			if tt.mockError != nil {
				expect.WillReturnError(tt.mockError)
			} else {
				expect.WillReturnRows(tt.mockRows)
			}

			titles, err := repo.Marks(123, tt.kind)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, titles)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
