package handler

import (
	"net/http"

	"github.com/rfallows/moonrug/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest  = apierr.CodeInvalidRequest
	CodeEmptyUsername   = apierr.CodeEmptyUsername
	CodeUsernameTooLong = apierr.CodeUsernameTooLong
	CodeUsernameTaken   = apierr.CodeUsernameTaken
	CodePlayerNotFound  = apierr.CodePlayerNotFound
	CodeFlipInFlight    = apierr.CodeFlipInFlight
	CodeInvalidResult   = apierr.CodeInvalidResult
	CodePersistence     = apierr.CodePersistence
	CodeInternalError   = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
