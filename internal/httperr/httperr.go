package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/logger"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/storage"
)

// Kind classifies a failure for the HTTP boundary.
type Kind int

const (
	KindUnclassified Kind = iota
	KindClientInput
	KindNotFound
	KindConflict
	KindRateLimited
)

// Error is a failure carrying an explicit kind and HTTP status code.
// Validators and handlers return it instead of attaching status codes
// to generic errors.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details []string
}

func (e *Error) Error() string { return e.Message }

// ClientInput builds a 400 error for missing or malformed fields.
func ClientInput(message string, details ...string) *Error {
	return &Error{Kind: KindClientInput, Status: http.StatusBadRequest, Message: message, Details: details}
}

// NotFound builds a 404 error for a missing entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// Conflict builds a 409 error for a uniqueness violation.
func Conflict(message string, details ...string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: message, Details: details}
}

// RateLimited builds a 429 error with the fixed rate-limit message.
func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: message}
}

// Envelope is the uniform JSON error response body.
type Envelope struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

var developmentMode bool

// SetEnvironment toggles diagnostic detail in 500 responses. Stack traces
// are attached only when the environment is "development".
func SetEnvironment(env string) {
	developmentMode = env == "development"
}

// Write translates any failure into the error envelope. Mapping priority:
// storage duplicate key, storage constraint violation, a typed *Error with
// its own status, then a generic 500.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	env := Envelope{Error: "Internal server error"}

	var typed *Error
	switch {
	case errors.Is(err, storage.ErrDuplicateKey):
		status = http.StatusConflict
		env.Error = "Record already exists"
		if detail := storage.Detail(err); detail != "" {
			env.Details = detail
		}
	case errors.Is(err, storage.ErrConstraintViolation), errors.Is(err, storage.ErrForeignKeyViolation):
		status = http.StatusBadRequest
		env.Error = "Validation failed"
		if detail := storage.Detail(err); detail != "" {
			env.Details = []string{detail}
		}
	case errors.As(err, &typed):
		status = typed.Status
		env.Error = typed.Message
		if len(typed.Details) > 0 {
			env.Details = typed.Details
		}
	default:
		if developmentMode {
			env.Stack = string(debug.Stack())
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Log.Errorw("request failed",
			"status", status,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		logger.Log.Warnw("request rejected",
			"status", status,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
