package domain

import (
	"errors"
	"net/http"
)

var (
	// ErrAdminRequired is returned when the backend accepts the credentials
	// but the account is not an admin.
	ErrAdminRequired      = errors.New("admin privileges required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginFailed        = errors.New("login failed, please try again")

	ErrTransport    = errors.New("backend unreachable")
	ErrUnauthorized = errors.New("not authorized")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrRemote       = errors.New("backend request failed")

	ErrRequestInFlight     = errors.New("a request is already in progress")
	ErrDialogClosed        = errors.New("dialog is not open")
	ErrNotEditing          = errors.New("dialog is not editing this entity")
	ErrRemovalNotConfirmed = errors.New("removal was not requested")
	ErrAttachmentNotFound  = errors.New("staged attachment not found")
)

// RemoteError is a non-2xx answer from the backend.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Unwrap maps the status onto the error taxonomy so callers can use errors.Is.
func (e *RemoteError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return ErrRemote
}

// MessageOf returns the backend's message carried by err, or fallback when
// err carries none (transport failures, bare statuses).
func MessageOf(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}

// ValidationError is a draft rejected before any request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }
