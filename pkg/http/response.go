package http

import (
	"encoding/json"
	"net/http"

	apperrors "woki/pkg/errors"
)

// ErrorResponse is the wire shape for every failure: a stable error kind,
// a human-readable detail, and optional structured details.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Detail  string         `json:"detail,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Kind,
		Detail:  appErr.Detail,
		Details: appErr.Details,
	})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, data)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
