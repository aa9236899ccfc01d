package service

import (
	"context"
	"time"

	apperrors "woki/pkg/errors"
	"woki/pkg/model"
)

type AvailabilityRequest struct {
	RestaurantID string
	SectorID     string
	Date         string // calendar date, "2006-01-02"
	PartySize    int
}

type AvailabilitySlot struct {
	Start     time.Time `json:"start"`
	Available bool      `json:"available"`
	Tables    []string  `json:"tables,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

type AvailabilityReport struct {
	SlotMinutes     int                `json:"slotMinutes"`
	DurationMinutes int                `json:"durationMinutes"`
	Slots           []AvailabilitySlot `json:"slots"`
}

// GetAvailability builds the per-slot availability view for a sector and
// date. Read-only and lock-free: the result is a point-in-time snapshot that
// concurrent creations may invalidate immediately.
func (s *reservationService) GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityReport, error) {
	if req.RestaurantID == "" || req.SectorID == "" || req.Date == "" || req.PartySize < 1 {
		return nil, apperrors.MissingParams("restaurantId", "sectorId", "date", "partySize")
	}

	restaurant, loc, err := s.resolveRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return nil, apperrors.InvalidDate(req.Date)
	}

	slots, err := SlotsForDay(s.cfg.SlotMinutes, day, restaurant.Shifts)
	if err != nil {
		return nil, apperrors.Internal("invalid shift configuration", err)
	}

	tables, err := s.repo.GetTablesBySector(ctx, req.SectorID)
	if err != nil {
		return nil, apperrors.Internal("failed to load sector tables", err)
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	reservations, err := s.repo.GetReservationsBySectorBetween(ctx, req.SectorID, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.Internal("failed to load sector reservations", err)
	}
	confirmed := confirmedOnly(reservations)

	duration := time.Duration(s.cfg.ReservationDurationMin) * time.Minute

	report := &AvailabilityReport{
		SlotMinutes:     s.cfg.SlotMinutes,
		DurationMinutes: s.cfg.ReservationDurationMin,
		Slots:           []AvailabilitySlot{},
	}
	for slotStart := range slots {
		report.Slots = append(report.Slots, computeSlot(slotStart, duration, req.PartySize, tables, confirmed))
	}
	return report, nil
}

// computeSlot evaluates one slot independently against the sector's
// CONFIRMED reservations. A panic while evaluating degrades that slot to
// reason "error" instead of failing the whole report.
func computeSlot(start time.Time, duration time.Duration, partySize int, tables []*model.Table, confirmed []*model.Reservation) (slot AvailabilitySlot) {
	slot = AvailabilitySlot{Start: start}

	defer func() {
		if r := recover(); r != nil {
			slot = AvailabilitySlot{Start: start, Available: false, Reason: "error"}
		}
	}()

	end := start.Add(duration)

	var free []string
	for _, t := range tables {
		if !fitsParty(t, partySize) {
			continue
		}
		if tableHasConflict(t.ID, confirmed, start, end) {
			continue
		}
		free = append(free, t.ID)
	}

	if len(free) == 0 {
		slot.Reason = "no_capacity"
		return slot
	}

	slot.Available = true
	slot.Tables = free
	return slot
}

func confirmedOnly(reservations []*model.Reservation) []*model.Reservation {
	out := make([]*model.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status == model.StatusConfirmed {
			out = append(out, r)
		}
	}
	return out
}
