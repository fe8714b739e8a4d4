package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/httperr"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/models"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/pagination"
)

// EventServicer defines the interface that the event service must implement.
type EventServicer interface {
	Create(ctx context.Context, req models.CreateEventRequest) (*models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, params pagination.Params) ([]models.Event, pagination.Meta, error)
	Update(ctx context.Context, id int64, req models.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
}

// EventListResponse is one page of events with pagination metadata
// swagger:model EventListResponse
type EventListResponse struct {
	Data       []models.Event  `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// NewCreateEventHandler returns an HTTP handler for creating an event.
// @Summary Create an event
// @Description Requires title, an RFC 3339 date and an existing createdBy user. Field presence is checked before creator existence.
// @Tags events
// @Accept json
// @Produce json
// @Param createEventRequest body models.CreateEventRequest true "Event creation request"
// @Success 201 {object} models.Event "Event created"
// @Failure 400 {object} httperr.Envelope "Missing or malformed fields"
// @Failure 404 {object} httperr.Envelope "createdBy user not found"
// @Router /events [post]
func NewCreateEventHandler(svc EventServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, httperr.ClientInput("Invalid request body"))
			return
		}

		event, err := svc.Create(r.Context(), req)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, event)
	}
}

// NewListEventsHandler returns an HTTP handler for the paginated event list.
// @Summary List events
// @Description Returns one page of events, most recent first, with creators embedded.
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Records per page" default(10)
// @Success 200 {object} EventListResponse "One page of events"
// @Router /events [get]
func NewListEventsHandler(svc EventServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := pagination.ParseParams(r.URL.Query())

		events, meta, err := svc.List(r.Context(), params)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, EventListResponse{Data: events, Pagination: meta})
	}
}

// NewGetEventHandler returns an HTTP handler for fetching one event with
// its creator embedded.
// @Summary Get an event by id
// @Tags events
// @Produce json
// @Param id path int true "Event id"
// @Success 200 {object} models.Event "Event with embedded creator"
// @Failure 404 {object} httperr.Envelope "Event not found"
// @Router /events/{id} [get]
func NewGetEventHandler(svc EventServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		event, err := svc.Get(r.Context(), id)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, event)
	}
}

// NewUpdateEventHandler returns an HTTP handler for partially updating an event.
// @Summary Update an event
// @Description Applies only the fields present in the body. createdBy is not re-validated against existing users.
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event id"
// @Param updateEventRequest body models.UpdateEventRequest true "Fields to change"
// @Success 200 {object} models.Event "Updated event"
// @Failure 404 {object} httperr.Envelope "Event not found"
// @Router /events/{id} [put]
func NewUpdateEventHandler(svc EventServicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		var req models.UpdateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, httperr.ClientInput("Invalid request body"))
			return
		}

		event, err := svc.Update(r.Context(), id, req)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, event)
	}
}

// NewDeleteEventHandler returns an HTTP handler for deleting one event.
// @Summary Delete an event
// @Tags events
// @Param id path int true "Event id"
// @Success 204 "Event deleted"
// @Failure 404 {object} httperr.Envelope "Event not found"
// @Router /events/{id} [delete]
func NewDeleteEventHandler(svc EventServicer) http.HandlerFunc {
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
