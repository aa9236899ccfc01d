package repository

import (
	"time"

	"woki/pkg/model"
)

// Seed holds the reference data a single restaurant needs to take
// reservations: the restaurant, its sectors and their tables.
type Seed struct {
	Restaurants []model.Restaurant
	Sectors     []model.Sector
	Tables      []model.Table
}

// DefaultSeed is the demo restaurant: lunch and dinner shifts in Buenos
// Aires, a main room and a terrace.
func DefaultSeed() Seed {
	now := time.Now().UTC()

	return Seed{
		Restaurants: []model.Restaurant{
			{
				ID:       "R1",
				Name:     "La Parrilla del Puerto",
				Timezone: "America/Argentina/Buenos_Aires",
				Shifts: []model.Shift{
					{Start: "12:00", End: "15:00"},
					{Start: "19:00", End: "23:00"},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Sectors: []model.Sector{
			{ID: "S1", RestaurantID: "R1", Name: "Main Room", CreatedAt: now, UpdatedAt: now},
			{ID: "S2", RestaurantID: "R1", Name: "Terrace", CreatedAt: now, UpdatedAt: now},
		},
		Tables: []model.Table{
			{ID: "T1", SectorID: "S1", Name: "M1", MinSize: 1, MaxSize: 2, CreatedAt: now, UpdatedAt: now},
			{ID: "T2", SectorID: "S1", Name: "M2", MinSize: 2, MaxSize: 4, CreatedAt: now, UpdatedAt: now},
			{ID: "T3", SectorID: "S1", Name: "M3", MinSize: 4, MaxSize: 6, CreatedAt: now, UpdatedAt: now},
			{ID: "T4", SectorID: "S2", Name: "X1", MinSize: 2, MaxSize: 4, CreatedAt: now, UpdatedAt: now},
			{ID: "T5", SectorID: "S2", Name: "X2", MinSize: 2, MaxSize: 8, CreatedAt: now, UpdatedAt: now},
		},
	}
}
