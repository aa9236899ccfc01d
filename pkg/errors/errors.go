// Package errors defines the application error taxonomy. Every failure the
// reservation engine reports to a caller is an *AppError carrying a stable
// machine-readable kind and the HTTP status it maps to.
package errors

import (
	"fmt"
	"net/http"
)

const (
	KindMissingParams        = "missing_params"
	KindRestaurantNotFound   = "restaurant_not_found"
	KindInvalidDate          = "invalid_date"
	KindInvalidDateTime      = "invalid_datetime"
	KindOutsideServiceWindow = "outside_service_window"
	KindNoCapacity           = "no_capacity"
	KindNotFound             = "not_found"
	KindInvalidBody          = "invalid_body"
	KindInternal             = "internal"
)

type AppError struct {
	Kind       string         `json:"error"`
	Detail     string         `json:"detail,omitempty"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Detail, e.Err)
	}
	if e.Detail == "" {
		return e.Kind
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(kind, detail string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Detail:     detail,
		HTTPStatus: httpStatus,
	}
}

func MissingParams(params ...string) *AppError {
	return &AppError{
		Kind:       KindMissingParams,
		Detail:     "required parameters are missing",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"params": params},
	}
}

func RestaurantNotFound(id string) *AppError {
	return &AppError{
		Kind:       KindRestaurantNotFound,
		Detail:     "restaurant not found",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"restaurant_id": id},
	}
}

func InvalidDate(value string) *AppError {
	return &AppError{
		Kind:       KindInvalidDate,
		Detail:     fmt.Sprintf("cannot parse date: %s", value),
		HTTPStatus: http.StatusBadRequest,
	}
}

func InvalidDateTime(value string) *AppError {
	return &AppError{
		Kind:       KindInvalidDateTime,
		Detail:     fmt.Sprintf("cannot parse datetime: %s", value),
		HTTPStatus: http.StatusBadRequest,
	}
}

func OutsideServiceWindow() *AppError {
	return &AppError{
		Kind:       KindOutsideServiceWindow,
		Detail:     "requested time is outside defined shifts",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func NoCapacity() *AppError {
	return &AppError{
		Kind:       KindNoCapacity,
		Detail:     "no available table fits party size at requested time",
		HTTPStatus: http.StatusConflict,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Detail:     fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"id": id},
	}
}

func InvalidBody(detail string, details map[string]any) *AppError {
	return &AppError{
		Kind:       KindInvalidBody,
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func Internal(detail string, err error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Detail:     detail,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError coerces any error into an *AppError; unknown errors become
// internal so the taxonomy stays closed at the HTTP boundary.
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("an unexpected error occurred", err)
}
