package relations

import (
	"errors"
	"sync"
)

// The user/event relationship is declared exactly once per process, before
// any request is served. Repositories consult the declared edges to build
// joined reads instead of hardcoding the join in every query.

var (
	// ErrAlreadyDeclared is returned when Setup is called a second time.
	ErrAlreadyDeclared = errors.New("relations: user/event association already declared")

	// ErrNotDeclared is returned when an edge is requested before Setup.
	ErrNotDeclared = errors.New("relations: user/event association not declared")
)

// Edge describes one direction of a foreign-key relationship.
type Edge struct {
	Name            string // association name, e.g. "Creator"
	Table           string // related table
	ForeignKey      string // referencing column on the events table
	OnDeleteCascade bool   // dependents are removed with the owner
}

type registry struct {
	mu            sync.Mutex
	declared      bool
	creator       Edge
	createdEvents Edge
}

var reg registry

// Setup declares both directions of the user/event relationship:
// a user has many events (cascade on delete), an event belongs to
// exactly one creator. Calling Setup twice is an error.
func Setup() error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.declared {
		return ErrAlreadyDeclared
	}

	reg.creator = Edge{
		Name:       "Creator",
		Table:      "users",
		ForeignKey: "created_by",
	}
	reg.createdEvents = Edge{
		Name:            "Events",
		Table:           "events",
		ForeignKey:      "created_by",
		OnDeleteCascade: true,
	}
	reg.declared = true
	return nil
}

// Creator returns the event→user edge.
func Creator() (Edge, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if !reg.declared {
		return Edge{}, ErrNotDeclared
	}
	return reg.creator, nil
}

// CreatedEvents returns the user→events edge.
func CreatedEvents() (Edge, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if !reg.declared {
		return Edge{}, ErrNotDeclared
	}
	return reg.createdEvents, nil
}

// reset clears the registry. Tests only.
func reset() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.declared = false
	reg.creator = Edge{}
	reg.createdEvents = Edge{}
}
