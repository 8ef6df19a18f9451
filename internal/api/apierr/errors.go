package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rfallows/moonrug/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeEmptyUsername   = "EMPTY_USERNAME"
	CodeUsernameTooLong = "USERNAME_TOO_LONG"
	CodeUsernameTaken   = "USERNAME_TAKEN"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeFlipInFlight    = "FLIP_IN_FLIGHT"
	CodeInvalidResult   = "INVALID_RESULT"
	CodePersistence     = "PERSISTENCE_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrEmptyUsername):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyUsername, "Username is required"}}
	case errors.Is(err, model.ErrUsernameTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodeUsernameTooLong, "Username must be 20 characters or fewer"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username is registered to another device"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrFlipInProgress):
		return &httpError{http.StatusConflict, APIError{CodeFlipInFlight, "A flip is already in progress"}}
	case errors.Is(err, model.ErrInvalidResult):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidResult, "Result must be moon or rug"}}
	case errors.Is(err, model.ErrPersistence):
		return &httpError{http.StatusInternalServerError, APIError{CodePersistence, "Failed to persist game state"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
