package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chanspick/PiCom/pkg/errors"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// WriteError writes a standard error response.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// WriteUsecaseError maps a usecase error onto the HTTP status taxonomy.
// Anything without a known code is a plain 500 with no internals leaked.
func WriteUsecaseError(w http.ResponseWriter, err error) {
	details, ok := err.(*errors.ErrorDetails)
	if !ok {
		WriteError(w, http.StatusInternalServerError, string(errors.GeneralInternalServerError), "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch errors.ErrorCode(details.Code) {
	case errors.GeneralBadRequestError, errors.ErrOfferValidation:
		status = http.StatusBadRequest
	case errors.GeneralUnauthenticatedError:
		status = http.StatusUnauthorized
	case errors.GeneralNotFoundError:
		status = http.StatusNotFound
	case errors.ErrTransactionConflict:
		status = http.StatusConflict
	case errors.ErrSelfPurchase, errors.ErrListingUnavailable, errors.ErrStalePrecondition:
		status = http.StatusPreconditionFailed
	}

	WriteJSON(w, status, errorResponse{
		Error:   details.Code,
		Message: details.Message,
		Field:   details.Field,
	})
}

// ParseJSON decodes the request body as JSON into v, rejecting unknown
// fields and non-JSON content types.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return errors.NewErrorDetails(
			"request body must be JSON with Content-Type: application/json",
			string(errors.GeneralBadRequestError),
			"body",
		)
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewErrorDetails(
			"request body must be valid JSON",
			string(errors.GeneralBadRequestError),
			"body",
		)
	}
	return nil
}
