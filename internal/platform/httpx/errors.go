package httpx

import (
	"errors"
	"net/http"

	"github.com/forgemart/forgemart/internal/shared"
)

// Client-facing messages are deliberately generic. The precise cause of an
// authentication or authorization failure is logged server side only.
const (
	MsgUnauthorized = "authentication required or token invalid"
	MsgForbidden    = "insufficient permissions"
)

// Unauthorized writes the uniform 401 response.
func Unauthorized(w http.ResponseWriter) {
	Problem(w, http.StatusUnauthorized, "Unauthorized", MsgUnauthorized)
}

// Forbidden writes the uniform 403 response. No detail on which rule failed.
func Forbidden(w http.ResponseWriter) {
	Problem(w, http.StatusForbidden, "Forbidden", MsgForbidden)
}

// RespondError maps domain errors to HTTP problem responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", shared.ErrInvalidCredentials.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
