package repositories_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/repositories"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/storage"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "pgx"), mock
}

func userColumns() []string {
	return []string{"id", "name", "email", "created_at"}
}

func TestUserReadRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewUserReadRepository(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, created_at")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(7, "Ann", "ann@x.com", time.Now()))

		user, err := repo.GetByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "Ann", user.Name)
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, created_at")).
			WithArgs(int64(8)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 8)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepositoryListAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewUserReadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(2, "Bob", "bob@x.com", time.Now()).
			AddRow(1, "Ann", "ann@x.com", time.Now()))

	users, err := repo.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(2), users[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewUserWriteRepository(db)

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email)")).
			WithArgs("Ann", "ann@x.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(1, "Ann", "ann@x.com", time.Now()))

		user, err := repo.Create(context.Background(), "Ann", "ann@x.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("duplicate email maps to duplicate key", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email)")).
			WithArgs("Bob", "ann@x.com").
			WillReturnError(&pgconn.PgError{Code: "23505", Detail: "Key (email)=(ann@x.com) already exists."})

		_, err := repo.Create(context.Background(), "Bob", "ann@x.com")
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
		assert.Equal(t, "Key (email)=(ann@x.com) already exists.", storage.Detail(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepositoryUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewUserWriteRepository(db)

	name := "Annette"

	mock.ExpectQuery(regexp.QuoteMeta("SET name = COALESCE($2, name)")).
		WithArgs(int64(7), "Annette", nil).
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(7, "Annette", "ann@x.com", time.Now()))

	user, err := repo.Update(context.Background(), 7, &name, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Annette", user.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewUserWriteRepository(db)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 7))
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 8), storage.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
