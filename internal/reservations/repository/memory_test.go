package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	reserrors "woki/internal/reservations/errors"
	"woki/pkg/model"
)

func seededRepo(t *testing.T) *MemoryRepository {
	t.Helper()
	repo := NewMemoryRepository()
	repo.Seed(DefaultSeed())
	return repo
}

func mustCreate(t *testing.T, repo *MemoryRepository, res *model.Reservation) {
	t.Helper()
	if err := repo.CreateReservation(context.Background(), res); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
}

func TestGetRestaurantUnknown(t *testing.T) {
	repo := seededRepo(t)

	if _, err := repo.GetRestaurant(context.Background(), "R999"); !errors.Is(err, reserrors.ErrRestaurantNotFound) {
		t.Errorf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestGetTablesBySector(t *testing.T) {
	repo := seededRepo(t)

	tables, err := repo.GetTablesBySector(context.Background(), "S1")
	if err != nil {
		t.Fatalf("GetTablesBySector: %v", err)
	}
	if len(tables) != 3 {
		t.Errorf("expected 3 tables in S1, got %d", len(tables))
	}
}

func TestConfirmedReservationsBetweenHalfOpen(t *testing.T) {
	repo := seededRepo(t)

	base := time.Date(2025, 9, 8, 20, 0, 0, 0, time.UTC)
	mustCreate(t, repo, &model.Reservation{
		ID:            "RES_a",
		SectorID:      "S1",
		TableIDs:      []string{"T1"},
		Status:        model.StatusConfirmed,
		StartDateTime: base,
		EndDateTime:   base.Add(90 * time.Minute),
	})

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"fully inside", base.Add(10 * time.Minute), base.Add(20 * time.Minute), 1},
		{"straddles start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), 1},
		{"straddles end", base.Add(60 * time.Minute), base.Add(2 * time.Hour), 1},
		{"ends exactly at start", base.Add(-time.Hour), base, 0},
		{"starts exactly at end", base.Add(90 * time.Minute), base.Add(3 * time.Hour), 0},
		{"disjoint before", base.Add(-3 * time.Hour), base.Add(-2 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetConfirmedReservationsBetween(context.Background(), "S1", tt.start, tt.end)
			if err != nil {
				t.Fatalf("GetConfirmedReservationsBetween: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d reservations, got %d", tt.want, len(got))
			}
		})
	}
}

func TestConfirmedReservationsBetweenSkipsCancelled(t *testing.T) {
	repo := seededRepo(t)

	base := time.Date(2025, 9, 8, 20, 0, 0, 0, time.UTC)
	mustCreate(t, repo, &model.Reservation{
		ID:            "RES_cancelled",
		SectorID:      "S1",
		Status:        model.StatusCancelled,
		StartDateTime: base,
		EndDateTime:   base.Add(90 * time.Minute),
	})

	got, err := repo.GetConfirmedReservationsBetween(context.Background(), "S1", base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetConfirmedReservationsBetween: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected cancelled reservations to be excluded, got %d", len(got))
	}
}

func TestListReservationsForDay(t *testing.T) {
	repo := seededRepo(t)

	dayStart := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	mustCreate(t, repo, &model.Reservation{
		ID: "RES_in", RestaurantID: "R1", SectorID: "S1",
		StartDateTime: dayStart.Add(20 * time.Hour),
		EndDateTime:   dayStart.Add(20 * time.Hour).Add(90 * time.Minute),
	})
	mustCreate(t, repo, &model.Reservation{
		ID: "RES_other_sector", RestaurantID: "R1", SectorID: "S2",
		StartDateTime: dayStart.Add(13 * time.Hour),
		EndDateTime:   dayStart.Add(13 * time.Hour).Add(90 * time.Minute),
	})
	mustCreate(t, repo, &model.Reservation{
		ID: "RES_next_day", RestaurantID: "R1", SectorID: "S1",
		StartDateTime: dayEnd.Add(12 * time.Hour),
		EndDateTime:   dayEnd.Add(12 * time.Hour).Add(90 * time.Minute),
	})

	all, err := repo.ListReservationsForDay(context.Background(), "R1", dayStart, dayEnd, "")
	if err != nil {
		t.Fatalf("ListReservationsForDay: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 reservations for the day, got %d", len(all))
	}

	onlyS1, err := repo.ListReservationsForDay(context.Background(), "R1", dayStart, dayEnd, "S1")
	if err != nil {
		t.Fatalf("ListReservationsForDay: %v", err)
	}
	if len(onlyS1) != 1 || onlyS1[0].ID != "RES_in" {
		t.Errorf("expected only RES_in for S1, got %v", onlyS1)
	}
}

func TestCancelReservation(t *testing.T) {
	repo := seededRepo(t)

	base := time.Date(2025, 9, 8, 20, 0, 0, 0, time.UTC)
	mustCreate(t, repo, &model.Reservation{
		ID: "RES_a", SectorID: "S1", Status: model.StatusConfirmed,
		StartDateTime: base, EndDateTime: base.Add(90 * time.Minute),
	})

	cancelledAt := base.Add(time.Hour)
	res, err := repo.CancelReservation(context.Background(), "RES_a", cancelledAt)
	if err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if res.Status != model.StatusCancelled {
		t.Errorf("status = %s, want %s", res.Status, model.StatusCancelled)
	}
	if !res.UpdatedAt.Equal(cancelledAt) {
		t.Errorf("UpdatedAt = %v, want %v", res.UpdatedAt, cancelledAt)
	}

	if _, err := repo.CancelReservation(context.Background(), "RES_missing", cancelledAt); !errors.Is(err, reserrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	repo := seededRepo(t)

	base := time.Date(2025, 9, 8, 20, 0, 0, 0, time.UTC)
	mustCreate(t, repo, &model.Reservation{
		ID: "RES_a", SectorID: "S1", Status: model.StatusConfirmed,
		TableIDs:      []string{"T1"},
		StartDateTime: base, EndDateTime: base.Add(90 * time.Minute),
	})

	got, err := repo.GetReservation(context.Background(), "RES_a")
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	got.Status = model.StatusCancelled
	got.TableIDs[0] = "T9"

	again, err := repo.GetReservation(context.Background(), "RES_a")
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if again.Status != model.StatusConfirmed {
		t.Error("mutating a returned reservation must not affect the store")
	}
	if again.TableIDs[0] != "T1" {
		t.Error("mutating a returned table list must not affect the store")
	}
}
