package handler

import (
	"errors"
	"net/http"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// StatusOf maps a domain error onto the status the console answers with.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrAdminRequired):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAttachmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrRequestInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDialogClosed),
		errors.Is(err, domain.ErrNotEditing),
		errors.Is(err, domain.ErrRemovalNotConfirmed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTransport),
		errors.Is(err, domain.ErrLoginFailed),
		errors.Is(err, domain.ErrRemote):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// MessageOf returns the text shown for err: the backend's or validator's own
// message when there is one, otherwise the sentinel's.
func MessageOf(err error) string {
	if msg := domain.MessageOf(err, ""); msg != "" {
		return msg
	}
	for _, sentinel := range []error{
		domain.ErrAdminRequired, domain.ErrInvalidCredentials, domain.ErrLoginFailed,
		domain.ErrUnauthorized, domain.ErrNotFound, domain.ErrAttachmentNotFound,
		domain.ErrConflict, domain.ErrRequestInFlight, domain.ErrDialogClosed,
		domain.ErrNotEditing, domain.ErrRemovalNotConfirmed, domain.ErrTransport,
		domain.ErrValidation, domain.ErrRemote,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal server error"
}

type errorResponse struct {
	Error string `json:"error"`
}
