package validator

import (
	"io"
	"strings"
	"testing"

	"woki/pkg/logger"
	"woki/pkg/model"
)

func newValidator(t *testing.T) *ReservationValidator {
	t.Helper()
	return NewReservationValidator(logger.New(logger.Config{Output: io.Discard}))
}

func validRequest() *model.CreateReservationRequest {
	return &model.CreateReservationRequest{
		RestaurantID:  "R1",
		SectorID:      "S1",
		PartySize:     2,
		StartDateTime: "2025-09-08T20:00:00-03:00",
		Customer: model.CustomerRequest{
			Name:  "Juan Perez",
			Phone: "+5491145678901",
			Email: "juan@example.com",
		},
	}
}

func TestValidateCreateRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.CreateReservationRequest)
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid request",
			mutate:  func(r *model.CreateReservationRequest) {},
			wantErr: false,
		},
		{
			name:      "missing restaurant id",
			mutate:    func(r *model.CreateReservationRequest) { r.RestaurantID = "" },
			wantErr:   true,
			wantField: "RestaurantID",
		},
		{
			name:      "missing sector id",
			mutate:    func(r *model.CreateReservationRequest) { r.SectorID = "" },
			wantErr:   true,
			wantField: "SectorID",
		},
		{
			name:      "zero party size",
			mutate:    func(r *model.CreateReservationRequest) { r.PartySize = 0 },
			wantErr:   true,
			wantField: "PartySize",
		},
		{
			name:      "missing start datetime",
			mutate:    func(r *model.CreateReservationRequest) { r.StartDateTime = "" },
			wantErr:   true,
			wantField: "StartDateTime",
		},
		{
			name:      "missing customer name",
			mutate:    func(r *model.CreateReservationRequest) { r.Customer.Name = "" },
			wantErr:   true,
			wantField: "Name",
		},
		{
			name:      "invalid email",
			mutate:    func(r *model.CreateReservationRequest) { r.Customer.Email = "not-an-email" },
			wantErr:   true,
			wantField: "Email",
		},
		{
			name:      "phone too short",
			mutate:    func(r *model.CreateReservationRequest) { r.Customer.Phone = "1" },
			wantErr:   true,
			wantField: "Phone",
		},
		{
			name:      "notes too long",
			mutate:    func(r *model.CreateReservationRequest) { r.Notes = strings.Repeat("x", 501) },
			wantErr:   true,
			wantField: "Notes",
		},
	}

	v := newValidator(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not mention field %s", err.Error(), tt.wantField)
			}
		})
	}
}

func TestValidateRestaurant(t *testing.T) {
	v := newValidator(t)

	valid := &model.Restaurant{
		ID:       "R1",
		Name:     "La Parrilla del Puerto",
		Timezone: "America/Argentina/Buenos_Aires",
		Shifts: []model.Shift{
			{Start: "12:00", End: "15:00"},
		},
	}
	if err := v.ValidateRestaurant(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	badTimezone := *valid
	badTimezone.Timezone = "Mars/Olympus_Mons"
	if err := v.ValidateRestaurant(&badTimezone); err == nil {
		t.Error("expected error for unknown timezone")
	}

	badShift := *valid
	badShift.Shifts = []model.Shift{{Start: "9:00", End: "15:00"}}
	if err := v.ValidateRestaurant(&badShift); err == nil {
		t.Error("expected error for single-digit hour shift")
	}
}
