// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
)

// RespondError maps catalogue errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrDependentsExist):
		Problem(w, http.StatusConflict, "Dependents Exist", err.Error())
	case errors.Is(err, shared.ErrMissingSupplier),
		errors.Is(err, shared.ErrInvalidField),
		errors.Is(err, shared.ErrInvalidTemporal):
		Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
