package model

import "time"

const (
	StatusConfirmed = "CONFIRMED"
	StatusPending   = "PENDING"
	StatusCancelled = "CANCELLED"
)

// Customer is an embedded snapshot taken at reservation time; it is never
// shared or updated across reservations.
type Customer struct {
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,min=2,max=20"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// Reservation holds a half-open interval [StartDateTime, EndDateTime).
// PENDING is declared but the engine only ever produces CONFIRMED and the
// terminal CANCELLED.
type Reservation struct {
	ID            string    `json:"id" bson:"_id" validate:"required"`
	RestaurantID  string    `json:"restaurant_id" bson:"restaurant_id" validate:"required"`
	SectorID      string    `json:"sector_id" bson:"sector_id" validate:"required"`
	TableIDs      []string  `json:"table_ids" bson:"table_ids" validate:"required,min=1"`
	PartySize     int       `json:"party_size" bson:"party_size" validate:"required,min=1"`
	StartDateTime time.Time `json:"start_date_time" bson:"start_date_time" validate:"required"`
	EndDateTime   time.Time `json:"end_date_time" bson:"end_date_time" validate:"required,gtfield=StartDateTime"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=CONFIRMED PENDING CANCELLED"`
	Customer      Customer  `json:"customer" bson:"customer"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// CreateReservationRequest is the wire payload for reservation creation.
type CreateReservationRequest struct {
	RestaurantID  string          `json:"restaurantId" validate:"required"`
	SectorID      string          `json:"sectorId" validate:"required"`
	PartySize     int             `json:"partySize" validate:"required,min=1"`
	StartDateTime string          `json:"startDateTime" validate:"required"`
	Customer      CustomerRequest `json:"customer" validate:"required"`
	Notes         string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type CustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Phone string `json:"phone" validate:"required,min=2,max=20"`
	Email string `json:"email" validate:"required,email"`
}
