package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/models"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/relations"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/storage"
)

// eventRow is an event joined with its creator columns. The creator side is
// nullable because the join is declared LEFT.
type eventRow struct {
	models.Event
	CreatorID    *int64  `db:"creator_id"`
	CreatorName  *string `db:"creator_name"`
	CreatorEmail *string `db:"creator_email"`
}

func (row eventRow) toEvent() models.Event {
	event := row.Event
	if row.CreatorID != nil {
		event.Creator = &models.Creator{
			ID:    *row.CreatorID,
			Name:  derefString(row.CreatorName),
			Email: derefString(row.CreatorEmail),
		}
	}
	return event
}

// creatorJoin builds the joined SELECT from the declared event→user edge.
func creatorJoin() (string, error) {
	edge, err := relations.Creator()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`
		SELECT e.id, e.title, e.description, e.date, e.created_by, e.created_at, e.updated_at,
		       u.id AS creator_id, u.name AS creator_name, u.email AS creator_email
		FROM events e
		LEFT JOIN %s u ON u.id = e.%s
	`, edge.Table, edge.ForeignKey), nil
}

type EventReadRepository struct {
	db *sqlx.DB
}

func NewEventReadRepository(db *sqlx.DB) *EventReadRepository {
	return &EventReadRepository{db: db}
}

// GetByID fetches an event with its creator embedded in a single read.
func (r *EventReadRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	base, err := creatorJoin()
	if err != nil {
		return nil, err
	}
	query := base + ` WHERE e.id = $1`

	var row eventRow
	err = r.db.GetContext(ctx, &row, query, id)
	logQuery(query, []any{id}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}

	event := row.toEvent()
	return &event, nil
}

// List returns one pagination window of events with creators embedded,
// most recent first. Event id breaks creation-time ties so repeated
// requests see the same windows.
func (r *EventReadRepository) List(ctx context.Context, limit, offset int) ([]models.Event, error) {
	base, err := creatorJoin()
	if err != nil {
		return nil, err
	}
	query := base + `
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $1 OFFSET $2
	`

	var rows []eventRow
	err = r.db.SelectContext(ctx, &rows, query, limit, offset)
	logQuery(query, []any{limit, offset}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}

	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEvent())
	}
	return events, nil
}

// Count returns the total number of events.
func (r *EventReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM events`

	var total int64
	err := r.db.GetContext(ctx, &total, query)
	logQuery(query, nil, err)

	if err != nil {
		return 0, storage.MapError(err)
	}
	return total, nil
}

type EventWriteRepository struct {
	db *sqlx.DB
}

func NewEventWriteRepository(db *sqlx.DB) *EventWriteRepository {
	return &EventWriteRepository{db: db}
}

func (r *EventWriteRepository) Create(ctx context.Context, title string, description *string, date time.Time, createdBy int64) (*models.Event, error) {
	const query = `
		INSERT INTO events (title, description, date, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, date, created_by, created_at, updated_at
	`

	var event models.Event
	err := r.db.GetContext(ctx, &event, query, title, description, date, createdBy)
	logQuery(query, []any{title, description, date, createdBy}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}
	return &event, nil
}

// Update applies only the non-nil fields and bumps updated_at.
func (r *EventWriteRepository) Update(ctx context.Context, id int64, title, description *string, date *time.Time, createdBy *int64) (*models.Event, error) {
	const query = `
		UPDATE events
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    date = COALESCE($4, date),
		    created_by = COALESCE($5, created_by),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, date, created_by, created_at, updated_at
	`

	var event models.Event
	err := r.db.GetContext(ctx, &event, query, id, title, description, date, createdBy)
	logQuery(query, []any{id, title, description, date, createdBy}, err)

	if err != nil {
		return nil, storage.MapError(err)
	}
	return &event, nil
}

func (r *EventWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM events WHERE id = $1`

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

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
