package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/httperr"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/logger"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/models"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/storage"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, name, email string) (*models.User, error)
	Update(ctx context.Context, id int64, name, email *string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService handles user CRUD with validation and uniqueness checks.
type UserService struct {
	reader   UserReader
	writer   UserWriter
	validate *validator.Validate
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		reader:   reader,
		writer:   writer,
		validate: newValidator(),
	}
}

// Create validates the payload, rejects an already-used email and inserts
// the user. The pre-check is best effort: under a race the unique index is
// the enforcement point and the insert error is classified as a conflict
// at the boundary.
func (svc *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := svc.validate.Struct(req); err != nil {
		return nil, httperr.ClientInput("name and email are required", validationDetails(err)...)
	}

	existing, err := svc.reader.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Log.Errorw("failed to check email uniqueness", "email", req.Email, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, httperr.Conflict("User with this email already exists")
	}

	return svc.writer.Create(ctx, req.Name, req.Email)
}

// Get fetches a user by id.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// List returns all users, most recently created first.
func (svc *UserService) List(ctx context.Context) ([]models.User, error) {
	return svc.reader.ListAll(ctx)
}

// Update applies the fields present in the request after re-validating
// them against the same constraints as creation.
func (svc *UserService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	if _, err := svc.reader.GetByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFound("User not found")
		}
		return nil, err
	}

	if err := svc.validate.Struct(req); err != nil {
		return nil, httperr.ClientInput("Validation failed", validationDetails(err)...)
	}

	if req.Email != nil {
		existing, err := svc.reader.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Log.Errorw("failed to check email uniqueness", "email", *req.Email, "error", err)
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, httperr.Conflict("User with this email already exists")
		}
	}

	return svc.writer.Update(ctx, id, req.Name, req.Email)
}

// Delete removes the user and, through the declared cascade, every event
// the user created.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := svc.reader.GetByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return httperr.NotFound("User not found")
		}
		return err
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return httperr.NotFound("User not found")
		}
		return err
	}
	return nil
}
