package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/httperr"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/models"
)

// UserServicer defines the interface that the user service must implement.
type UserServicer interface {
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// NewCreateUserHandler returns an HTTP handler for creating a user.
// @Summary Create a user
// @Description Creates a user with a unique email. The email is checked before insert and the unique index is the final arbiter.
// @Tags users
// @Accept json
// @Produce json
// @Param createUserRequest body models.CreateUserRequest true "User creation request"
// @Success 201 {object} models.User "User created"
// @Failure 400 {object} httperr.Envelope "Missing or malformed fields"
// @Failure 409 {object} httperr.Envelope "Email already in use"
// @Router /users [post]
func NewCreateUserHandler(svc UserServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, httperr.ClientInput("Invalid request body"))
			return
		}

		user, err := svc.Create(r.Context(), req)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

// NewListUsersHandler returns an HTTP handler for listing all users.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User "All users, most recent first"
// @Router /users [get]
func NewListUsersHandler(svc UserServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

// NewGetUserHandler returns an HTTP handler for fetching one user.
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} models.User "User found"
// @Failure 404 {object} httperr.Envelope "User not found"
// @Router /users/{id} [get]
func NewGetUserHandler(svc UserServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewUpdateUserHandler returns an HTTP handler for partially updating a user.
// @Summary Update a user
// @Description Applies only the fields present in the body, re-validated against creation constraints.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param updateUserRequest body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} httperr.Envelope "Malformed fields"
// @Failure 404 {object} httperr.Envelope "User not found"
// @Failure 409 {object} httperr.Envelope "Email already in use"
// @Router /users/{id} [put]
func NewUpdateUserHandler(svc UserServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		var req models.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, httperr.ClientInput("Invalid request body"))
			return
		}

		user, err := svc.Update(r.Context(), id, req)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewDeleteUserHandler returns an HTTP handler for deleting a user and,
// by cascade, the events the user created.
// @Summary Delete a user
// @Tags users
// @Param id path int true "User id"
// @Success 204 "User deleted"
// @Failure 404 {object} httperr.Envelope "User not found"
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc UserServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			httperr.Write(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
