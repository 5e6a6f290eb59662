package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"ticket-booking/internal/status"
)

// toApiError maps the workflow error taxonomy onto HTTP responses. External
// failures are reported as bad gateway; the client has to retry explicitly,
// nothing is retried server side.
func toApiError(err error) error {
	switch {
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError(err.Error(), nil)
	case errors.Is(err, status.ErrConflict):
		return apis.NewApiError(http.StatusConflict, err.Error(), nil)
	case errors.Is(err, status.ErrValidation):
		return apis.NewBadRequestError(err.Error(), nil)
	case errors.Is(err, status.ErrExternal):
		return apis.NewApiError(http.StatusBadGateway, err.Error(), nil)
	default:
		return apis.NewApiError(http.StatusInternalServerError, "Something went wrong", err)
	}
}
