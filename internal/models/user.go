package models

import "time"

// User represents a user record in the database
// swagger:model User
type User struct {
	ID        int64     `json:"id" db:"id"`                // Primary key
	Name      string    `json:"name" db:"name"`            // Display name
	Email     string    `json:"email" db:"email"`          // Unique email
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Creation timestamp
}

// CreateUserRequest is the JSON body for creating a user
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Name
	// required: true
	// default: Alex Ivanov
	Name string `json:"name" validate:"required"`

	// Email
	// required: true
	// default: alex@example.com
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserRequest is the JSON body for updating a user.
// Absent fields are left unchanged.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
