// Package repository provides the storage capability set the reservation
// engine consumes. Implementations must be safe for concurrent use; the
// engine's correctness depends on reads observing previously committed
// reservations, not on storage-level locking.
package repository

import (
	"context"
	"time"

	"woki/pkg/model"
)

type Repository interface {
	GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error)
	GetSector(ctx context.Context, id string) (*model.Sector, error)
	GetTablesBySector(ctx context.Context, sectorID string) ([]*model.Table, error)

	// GetConfirmedReservationsBetween returns the sector's CONFIRMED
	// reservations whose half-open interval intersects [start, end).
	GetConfirmedReservationsBetween(ctx context.Context, sectorID string, start, end time.Time) ([]*model.Reservation, error)

	// GetReservationsBySectorBetween returns the sector's reservations of any
	// status intersecting [start, end); availability filters status itself.
	GetReservationsBySectorBetween(ctx context.Context, sectorID string, start, end time.Time) ([]*model.Reservation, error)

	// ListReservationsForDay returns a restaurant's reservations starting in
	// [dayStart, dayEnd), optionally narrowed to one sector.
	ListReservationsForDay(ctx context.Context, restaurantID string, dayStart, dayEnd time.Time, sectorID string) ([]*model.Reservation, error)

	GetReservation(ctx context.Context, id string) (*model.Reservation, error)
	CreateReservation(ctx context.Context, reservation *model.Reservation) error

	// CancelReservation flips the reservation to CANCELLED, stamps updatedAt
	// and returns the updated document; ErrNotFound when absent. Cancelling
	// an already cancelled reservation only refreshes the timestamp.
	CancelReservation(ctx context.Context, id string, updatedAt time.Time) (*model.Reservation, error)
}
