package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/httperr"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/models"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/pagination"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/storage"
)

// EventReader defines read-only operations for events.
type EventReader interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, limit, offset int) ([]models.Event, error)
	Count(ctx context.Context) (int64, error)
}

// EventWriter defines write operations for events.
type EventWriter interface {
	Create(ctx context.Context, title string, description *string, date time.Time, createdBy int64) (*models.Event, error)
	Update(ctx context.Context, id int64, title, description *string, date *time.Time, createdBy *int64) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
}

// CreatorGetter resolves the user referenced by createdBy.
type CreatorGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// EventService handles event CRUD, creator existence checks and pagination.
type EventService struct {
	reader   EventReader
	writer   EventWriter
	users    CreatorGetter
	validate *validator.Validate
}

// NewEventService creates a new EventService instance.
func NewEventService(reader EventReader, writer EventWriter, users CreatorGetter) *EventService {
	return &EventService{
		reader:   reader,
		writer:   writer,
		users:    users,
		validate: newValidator(),
	}
}

// Create checks field presence first, then that createdBy resolves to an
// existing user, and inserts the event.
func (svc *EventService) Create(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	if err := svc.validate.Struct(req); err != nil {
		return nil, httperr.ClientInput("title, date and createdBy are required", validationDetails(err)...)
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, httperr.ClientInput("date must be a valid RFC 3339 timestamp")
	}

	if _, err := svc.users.GetByID(ctx, req.CreatedBy); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFound("User with given createdBy not found")
		}
		return nil, err
	}

	return svc.writer.Create(ctx, req.Title, req.Description, date, req.CreatedBy)
}

// Get fetches an event with its creator embedded.
func (svc *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFound("Event not found")
		}
		return nil, err
	}
	return event, nil
}

// List returns the requested pagination window together with metadata
// about the full result set.
func (svc *EventService) List(ctx context.Context, params pagination.Params) ([]models.Event, pagination.Meta, error) {
	total, err := svc.reader.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	events, err := svc.reader.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return events, pagination.NewMeta(params, total), nil
}

// Update applies the fields present in the request. createdBy is not
// re-checked here; a dangling value is rejected by the foreign key at
// the storage boundary.
func (svc *EventService) Update(ctx context.Context, id int64, req models.UpdateEventRequest) (*models.Event, error) {
	if _, err := svc.reader.GetByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFound("Event not found")
		}
		return nil, err
	}

	if err := svc.validate.Struct(req); err != nil {
		return nil, httperr.ClientInput("Validation failed", validationDetails(err)...)
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return nil, httperr.ClientInput("date must be a valid RFC 3339 timestamp")
		}
		date = &parsed
	}

	return svc.writer.Update(ctx, id, req.Title, req.Description, date, req.CreatedBy)
}

// Delete removes a single event.
func (svc *EventService) Delete(ctx context.Context, id int64) error {
	if _, err := svc.reader.GetByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return httperr.NotFound("Event not found")
		}
		return err
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return httperr.NotFound("Event not found")
		}
		return err
	}
	return nil
}
