package service

import (
	"context"
	"sort"
	"time"

	apperrors "woki/pkg/errors"
	"woki/pkg/model"
)

// overlaps implements half-open interval intersection: [s1,e1) and [s2,e2)
// intersect iff s1 < e2 && s2 < e1, so back-to-back reservations never
// conflict.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// tableHasConflict is the conflict oracle: true when any of the given
// reservations holds the table for an interval intersecting [start, end).
// Callers pass CONFIRMED reservations only.
func tableHasConflict(tableID string, reservations []*model.Reservation, start, end time.Time) bool {
	for _, res := range reservations {
		if !overlaps(res.StartDateTime, res.EndDateTime, start, end) {
			continue
		}
		for _, id := range res.TableIDs {
			if id == tableID {
				return true
			}
		}
	}
	return false
}

// fitsParty applies the inclusive capacity bounds.
func fitsParty(t *model.Table, partySize int) bool {
	return t.MinSize <= partySize && partySize <= t.MaxSize
}

// sortBestFit orders candidates tightest capacity range first, smallest
// table as tie-break, so the assignment wastes the least capacity.
func sortBestFit(tables []*model.Table) {
	sort.Slice(tables, func(i, j int) bool {
		rangeI := tables[i].MaxSize - tables[i].MinSize
		rangeJ := tables[j].MaxSize - tables[j].MinSize
		if rangeI != rangeJ {
			return rangeI < rangeJ
		}
		return tables[i].MinSize < tables[j].MinSize
	})
}

// assignTable picks one table for the party, or nil when the sector has no
// free fitting table. Greedy single pass: it never reconsiders a choice and
// never combines tables.
func (s *reservationService) assignTable(ctx context.Context, sectorID string, partySize int, start, end time.Time) (*model.Table, error) {
	tables, err := s.repo.GetTablesBySector(ctx, sectorID)
	if err != nil {
		return nil, apperrors.Internal("failed to load sector tables", err)
	}

	candidates := make([]*model.Table, 0, len(tables))
	for _, t := range tables {
		if fitsParty(t, partySize) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sortBestFit(candidates)

	reservations, err := s.repo.GetConfirmedReservationsBetween(ctx, sectorID, start, end)
	if err != nil {
		return nil, apperrors.Internal("failed to load sector reservations", err)
	}

	for _, t := range candidates {
		if !tableHasConflict(t.ID, reservations, start, end) {
			return t, nil
		}
	}
	return nil, nil
}
