// Package service implements the booking engine: availability computation,
// best-fit table assignment, and the keyed exclusion that keeps reservation
// creation safe under concurrent requests.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	reserrors "woki/internal/reservations/errors"
	"woki/internal/reservations/events"
	"woki/internal/reservations/repository"
	"woki/internal/reservations/validator"
	"woki/pkg/config"
	apperrors "woki/pkg/errors"
	"woki/pkg/idempotency"
	"woki/pkg/keymutex"
	"woki/pkg/model"
	"woki/pkg/sanitizer"
)

type CreateResult struct {
	FromCache   bool
	Reservation *model.Reservation
}

type ReservationService interface {
	GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityReport, error)
	Create(ctx context.Context, req *model.CreateReservationRequest, idempotencyKey string) (*CreateResult, error)
	Cancel(ctx context.Context, id string) error
	ListDay(ctx context.Context, restaurantID, date, sectorID string) ([]*model.Reservation, error)
}

type reservationService struct {
	repo      repository.Repository
	locks     *keymutex.KeyedMutex
	idem      idempotency.Store
	validator *validator.ReservationValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.Repository,
	locks *keymutex.KeyedMutex,
	idem idempotency.Store,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		locks:     locks,
		idem:      idem,
		validator: validator,
		events:    publisher,
		cfg:       cfg,
	}
}

// Create books a table for the request, deduplicating retries by
// idempotency key. When a key is supplied the whole creation runs under that
// key's exclusive section with a second cache check inside, so of two
// concurrent requests sharing a key the first writer wins and the second
// observes its result.
func (s *reservationService) Create(ctx context.Context, req *model.CreateReservationRequest, idempotencyKey string) (*CreateResult, error) {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Reservation payload validation failed", "error", err)
		return nil, apperrors.InvalidBody("reservation payload validation failed", map[string]any{"error": err.Error()})
	}

	if idempotencyKey == "" {
		return s.create(ctx, req, "")
	}

	if prior, ok := s.idem.Get(idempotencyKey); ok {
		return &CreateResult{FromCache: true, Reservation: prior}, nil
	}

	var result *CreateResult
	err := s.locks.Run(ctx, "idem|"+idempotencyKey, func() error {
		if prior, ok := s.idem.Get(idempotencyKey); ok {
			result = &CreateResult{FromCache: true, Reservation: prior}
			return nil
		}
		var createErr error
		result, createErr = s.create(ctx, req, idempotencyKey)
		return createErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reservationService) create(ctx context.Context, req *model.CreateReservationRequest, idempotencyKey string) (*CreateResult, error) {
	restaurant, loc, err := s.resolveRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	start, err := parseStartDateTime(req.StartDateTime, loc)
	if err != nil {
		return nil, apperrors.InvalidDateTime(req.StartDateTime)
	}

	within, err := inShiftWindow(start, restaurant.Shifts)
	if err != nil {
		return nil, apperrors.Internal("invalid shift configuration", err)
	}
	if !within {
		return nil, apperrors.OutsideServiceWindow()
	}

	end := start.Add(time.Duration(s.cfg.ReservationDurationMin) * time.Minute)

	// Keyed on the intended slot, not the table. Normalized to UTC so equal
	// instants written with different offsets share a key.
	slotKey := req.SectorID + "|" + start.UTC().Format(time.RFC3339)

	var reservation *model.Reservation
	err = s.locks.Run(ctx, slotKey, func() error {
		table, assignErr := s.assignTable(ctx, req.SectorID, req.PartySize, start, end)
		if assignErr != nil {
			return assignErr
		}
		if table == nil {
			return apperrors.NoCapacity()
		}

		now := time.Now().UTC()
		reservation = &model.Reservation{
			ID:            "RES_" + uuid.NewString(),
			RestaurantID:  req.RestaurantID,
			SectorID:      req.SectorID,
			TableIDs:      []string{table.ID},
			PartySize:     req.PartySize,
			StartDateTime: start,
			EndDateTime:   end,
			Status:        model.StatusConfirmed,
			Customer: model.Customer{
				Name:      sanitizer.SanitizeName(req.Customer.Name),
				Phone:     sanitizer.SanitizePhone(req.Customer.Phone),
				Email:     sanitizer.SanitizeEmail(req.Customer.Email),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Notes:     req.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if createErr := s.repo.CreateReservation(ctx, reservation); createErr != nil {
			return apperrors.Internal("failed to persist reservation", createErr)
		}

		if idempotencyKey != "" {
			s.idem.Set(idempotencyKey, reservation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeReservationCreated, reservation)

	s.cfg.Log.Info("Reservation created",
		"id", reservation.ID,
		"sector_id", reservation.SectorID,
		"table_id", reservation.TableIDs[0],
		"party_size", reservation.PartySize,
		"start", reservation.StartDateTime,
	)
	return &CreateResult{FromCache: false, Reservation: reservation}, nil
}

// Cancel flips the reservation to CANCELLED. No exclusion key: cancellation
// only restricts future conflict checks, so it is safe and idempotent apart
// from the refreshed update timestamp.
func (s *reservationService) Cancel(ctx context.Context, id string) error {
	reservation, err := s.repo.CancelReservation(ctx, id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.NotFound("reservation", id)
		}
		return apperrors.Internal("failed to cancel reservation", err)
	}

	s.publish(ctx, events.TypeReservationCancelled, reservation)

	s.cfg.Log.Info("Reservation cancelled", "id", id)
	return nil
}

func (s *reservationService) ListDay(ctx context.Context, restaurantID, date, sectorID string) ([]*model.Reservation, error) {
	if restaurantID == "" || date == "" {
		return nil, apperrors.MissingParams("restaurantId", "date")
	}

	_, loc, err := s.resolveRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, apperrors.InvalidDate(date)
	}

	reservations, err := s.repo.ListReservationsForDay(ctx, restaurantID, day, day.AddDate(0, 0, 1), sectorID)
	if err != nil {
		return nil, apperrors.Internal("failed to list reservations", err)
	}
	return reservations, nil
}

// parseStartDateTime accepts RFC3339 and offset-less ISO datetimes. An
// explicit offset pins the instant; without one the value is a wall-clock
// time in the restaurant's timezone. Either way the result is expressed in
// loc.
func parseStartDateTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, loc)
}

func (s *reservationService) resolveRestaurant(ctx context.Context, id string) (*model.Restaurant, *time.Location, error) {
	restaurant, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, reserrors.ErrRestaurantNotFound) {
			return nil, nil, apperrors.RestaurantNotFound(id)
		}
		return nil, nil, apperrors.Internal("failed to load restaurant", err)
	}

	loc, err := time.LoadLocation(restaurant.Timezone)
	if err != nil {
		return nil, nil, apperrors.Internal("invalid restaurant timezone", err)
	}
	return restaurant, loc, nil
}

// publish is fire-and-forget: event delivery never fails a booking.
func (s *reservationService) publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	if err := s.events.Publish(ctx, events.New(eventType, reservation)); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
	}
}
