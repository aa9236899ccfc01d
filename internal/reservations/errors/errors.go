package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrRestaurantNotFound = errors.New("restaurant not found")

	ErrSectorNotFound = errors.New("sector not found")
)
