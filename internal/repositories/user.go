package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/logger"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/models"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/storage"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	logQuery(query, []any{id}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}
	return &user, nil
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, name, email, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	logQuery(query, []any{email}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}
	return &user, nil
}

func (r *UserReadRepository) ListAll(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, name, email, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`

	users := make([]models.User, 0)
	err := r.db.SelectContext(ctx, &users, query)
	logQuery(query, nil, err)

	if err != nil {
		return nil, storage.MapError(err)
	}
	return users, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) Create(ctx context.Context, name, email string) (*models.User, error) {
	const query = `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, name, email)
	logQuery(query, []any{name, email}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}
	return &user, nil
}

// Update applies only the non-nil fields, leaving the rest unchanged.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, name, email *string) (*models.User, error) {
	const query = `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email)
		WHERE id = $1
		RETURNING id, name, email, created_at
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id, name, email)
	logQuery(query, []any{id, name, email}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}
	return &user, nil
}

// Delete removes the user; dependent events go with it via the
// cascading foreign key.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	logQuery(query, []any{id}, err)

	if err != nil {
		return storage.MapError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return storage.MapError(sql.ErrNoRows)
	}
	return nil
}

// logQuery logs the executed query collapsed to a single line.
func logQuery(query string, args []any, err error) {
	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)
}
