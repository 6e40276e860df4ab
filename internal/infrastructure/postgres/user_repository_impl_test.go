package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
)

var userColumns = []string{"id", "email", "password_hash", "name", "avatar_url", "created_at", "updated_at"}

func newTestUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()
	u := &entity.User{Email: "jane@example.com", Password: "hash", Name: "Jane"}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "jane@example.com", "hash", "Jane", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Create(context.Background(), &entity.User{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepository_Create_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("db network error"))

	err := repo.Create(context.Background(), &entity.User{Email: "jane@example.com"})
	assert.ErrorContains(t, err, "insert user")
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM users\s+WHERE email = \$1`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "jane@example.com", "hash", "Jane", "", now, now))

	u, err := repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "hash", u.Password)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	u := &entity.User{ID: "u1", Email: "new@example.com", Password: "hash", Name: "Jane"}

	mock.ExpectExec(`UPDATE users`).
		WithArgs("new@example.com", "hash", "Jane", "", sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_Errors(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(`UPDATE users`).WillReturnError(pgError(pgerrcode.UniqueViolation))

		assert.ErrorIs(t, repo.Update(context.Background(), &entity.User{ID: "u1"}), ErrEmailTaken)
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), &entity.User{ID: "u1"}), ErrNotFound)
	})
}
