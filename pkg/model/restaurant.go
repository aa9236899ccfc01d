package model

import "time"

// Shift is a named service window in the restaurant's local wall-clock time.
// End is exclusive: a reservation may not start at the shift's end.
type Shift struct {
	Start string `json:"start" bson:"start" validate:"required,valid_wallclock"`
	End   string `json:"end" bson:"end" validate:"required,valid_wallclock"`
}

type Restaurant struct {
	ID        string    `json:"id" bson:"_id" validate:"required"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Timezone  string    `json:"timezone" bson:"timezone" validate:"required,timezone"`
	Shifts    []Shift   `json:"shifts,omitempty" bson:"shifts,omitempty" validate:"omitempty,dive"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type Sector struct {
	ID           string    `json:"id" bson:"_id" validate:"required"`
	RestaurantID string    `json:"restaurant_id" bson:"restaurant_id" validate:"required"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// Table capacity bounds are inclusive: a party fits when
// MinSize <= partySize <= MaxSize.
type Table struct {
	ID        string    `json:"id" bson:"_id" validate:"required"`
	SectorID  string    `json:"sector_id" bson:"sector_id" validate:"required"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=50"`
	MinSize   int       `json:"min_size" bson:"min_size" validate:"required,min=1"`
	MaxSize   int       `json:"max_size" bson:"max_size" validate:"required,gtefield=MinSize"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}
