package models

import "time"

// Event represents an event record in the database
// swagger:model Event
type Event struct {
	ID          int64     `json:"id" db:"id"`                 // Primary key
	Title       string    `json:"title" db:"title"`           // Event title
	Description *string   `json:"description,omitempty" db:"description"` // Optional details
	Date        time.Time `json:"date" db:"date"`             // When the event takes place
	CreatedBy   int64     `json:"createdBy" db:"created_by"`  // Creator user id
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`  // Creation timestamp
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`  // Last update timestamp

	// Creator is populated on joined reads only.
	Creator *Creator `json:"creator,omitempty" db:"-"`
}

// Creator is the embedded creator of an event on joined reads
// swagger:model Creator
type Creator struct {
	ID    int64  `json:"id" db:"creator_id"`
	Name  string `json:"name" db:"creator_name"`
	Email string `json:"email" db:"creator_email"`
}

// CreateEventRequest is the JSON body for creating an event
// swagger:model CreateEventRequest
type CreateEventRequest struct {
	// Title
	// required: true
	// default: Launch
	Title string `json:"title" validate:"required"`

	// Description
	Description *string `json:"description,omitempty"`

	// Date in RFC 3339 format
	// required: true
	// default: 2025-01-01T00:00:00Z
	Date string `json:"date" validate:"required"`

	// CreatedBy is the id of an existing user
	// required: true
	// default: 1
	CreatedBy int64 `json:"createdBy" validate:"required"`
}

// UpdateEventRequest is the JSON body for updating an event.
// Absent fields are left unchanged. CreatedBy is applied as-is;
// the foreign key constraint is the only check on it here.
// swagger:model UpdateEventRequest
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	CreatedBy   *int64  `json:"createdBy,omitempty"`
}
