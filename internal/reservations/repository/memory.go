package repository

import (
	"context"
	"sync"
	"time"

	reserrors "woki/internal/reservations/errors"
	"woki/pkg/model"
)

// MemoryRepository is the default store: process-local maps guarded by a
// single RWMutex. List methods return copies so callers never share mutable
// state with the store.
type MemoryRepository struct {
	mu           sync.RWMutex
	restaurants  map[string]*model.Restaurant
	sectors      map[string]*model.Sector
	tables       map[string]*model.Table
	reservations map[string]*model.Reservation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		restaurants:  make(map[string]*model.Restaurant),
		sectors:      make(map[string]*model.Sector),
		tables:       make(map[string]*model.Table),
		reservations: make(map[string]*model.Reservation),
	}
}

// Seed loads reference data. Reservation state is never seeded.
func (r *MemoryRepository) Seed(seed Seed) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range seed.Restaurants {
		rest := seed.Restaurants[i]
		r.restaurants[rest.ID] = &rest
	}
	for i := range seed.Sectors {
		sec := seed.Sectors[i]
		r.sectors[sec.ID] = &sec
	}
	for i := range seed.Tables {
		tab := seed.Tables[i]
		r.tables[tab.ID] = &tab
	}
}

func (r *MemoryRepository) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, reserrors.ErrRestaurantNotFound
	}
	copied := *restaurant
	return &copied, nil
}

func (r *MemoryRepository) GetSector(ctx context.Context, id string) (*model.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sector, ok := r.sectors[id]
	if !ok {
		return nil, reserrors.ErrSectorNotFound
	}
	copied := *sector
	return &copied, nil
}

func (r *MemoryRepository) GetTablesBySector(ctx context.Context, sectorID string) ([]*model.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tables []*model.Table
	for _, t := range r.tables {
		if t.SectorID == sectorID {
			copied := *t
			tables = append(tables, &copied)
		}
	}
	return tables, nil
}

func (r *MemoryRepository) GetConfirmedReservationsBetween(ctx context.Context, sectorID string, start, end time.Time) ([]*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Reservation
	for _, res := range r.reservations {
		if res.SectorID != sectorID || res.Status != model.StatusConfirmed {
			continue
		}
		if res.StartDateTime.Before(end) && start.Before(res.EndDateTime) {
			copied := copyReservation(res)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetReservationsBySectorBetween(ctx context.Context, sectorID string, start, end time.Time) ([]*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Reservation
	for _, res := range r.reservations {
		if res.SectorID != sectorID {
			continue
		}
		if res.StartDateTime.Before(end) && start.Before(res.EndDateTime) {
			out = append(out, copyReservation(res))
		}
	}
	return out, nil
}

func (r *MemoryRepository) ListReservationsForDay(ctx context.Context, restaurantID string, dayStart, dayEnd time.Time, sectorID string) ([]*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Reservation
	for _, res := range r.reservations {
		if res.RestaurantID != restaurantID {
			continue
		}
		if sectorID != "" && res.SectorID != sectorID {
			continue
		}
		if !res.StartDateTime.Before(dayStart) && res.StartDateTime.Before(dayEnd) {
			out = append(out, copyReservation(res))
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, reserrors.ErrNotFound
	}
	return copyReservation(res), nil
}

func (r *MemoryRepository) CreateReservation(ctx context.Context, reservation *model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reservations[reservation.ID] = copyReservation(reservation)
	return nil
}

func (r *MemoryRepository) CancelReservation(ctx context.Context, id string, updatedAt time.Time) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, reserrors.ErrNotFound
	}

	res.Status = model.StatusCancelled
	res.UpdatedAt = updatedAt
	return copyReservation(res), nil
}

// Clear drops all reservations; reference data stays. Test helper.
func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reservations = make(map[string]*model.Reservation)
}

func copyReservation(res *model.Reservation) *model.Reservation {
	copied := *res
	copied.TableIDs = append([]string(nil), res.TableIDs...)
	return &copied
}
