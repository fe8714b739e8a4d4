package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the liveness payload served at the root path
// swagger:model HealthResponse
type HealthResponse struct {
	// default: API is running
	Message string `json:"message"`

	// Current server time in RFC 3339 format
	Time string `json:"time"`
}

// NewHealthHandler returns an HTTP handler for the liveness check.
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Service is up"
// @Router / [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Message: "API is running",
			Time:    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
