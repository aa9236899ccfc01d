package service

import (
	"testing"
	"time"

	"woki/pkg/model"
)

func collectSlots(t *testing.T, slotMinutes int, day time.Time, shifts []model.Shift) []time.Time {
	t.Helper()
	seq, err := SlotsForDay(slotMinutes, day, shifts)
	if err != nil {
		t.Fatalf("SlotsForDay: %v", err)
	}
	var out []time.Time
	for slot := range seq {
		out = append(out, slot)
	}
	return out
}

func TestSlotsForDayWithShifts(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	shifts := []model.Shift{
		{Start: "12:00", End: "15:00"},
		{Start: "19:00", End: "23:00"},
	}

	slots := collectSlots(t, 15, day, shifts)

	// 12 quarter-hours in the lunch shift plus 16 in the dinner shift.
	if len(slots) != 28 {
		t.Fatalf("expected 28 slots, got %d", len(slots))
	}

	if want := day.Add(12 * time.Hour); !slots[0].Equal(want) {
		t.Errorf("first slot = %v, want %v", slots[0], want)
	}
	if want := day.Add(14*time.Hour + 45*time.Minute); !slots[11].Equal(want) {
		t.Errorf("last lunch slot = %v, want %v", slots[11], want)
	}
	if want := day.Add(19 * time.Hour); !slots[12].Equal(want) {
		t.Errorf("first dinner slot = %v, want %v", slots[12], want)
	}

	// The shift end instant itself is never a slot.
	last := slots[len(slots)-1]
	if want := day.Add(22*time.Hour + 45*time.Minute); !last.Equal(want) {
		t.Errorf("last slot = %v, want %v", last, want)
	}
}

func TestSlotsForDayNoShiftsCoversWholeDay(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	slots := collectSlots(t, 15, day, nil)

	if len(slots) != 96 {
		t.Fatalf("expected 96 slots for a full day, got %d", len(slots))
	}
	if !slots[0].Equal(day) {
		t.Errorf("first slot = %v, want midnight", slots[0])
	}
	if want := day.Add(23*time.Hour + 45*time.Minute); !slots[95].Equal(want) {
		t.Errorf("last slot = %v, want %v", slots[95], want)
	}
}

func TestSlotsForDayGranularity(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	shifts := []model.Shift{{Start: "19:00", End: "21:00"}}

	slots := collectSlots(t, 30, day, shifts)

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots at 30-minute granularity, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if got := slots[i].Sub(slots[i-1]); got != 30*time.Minute {
			t.Errorf("slot spacing = %v, want 30m", got)
		}
	}
}

func TestSlotsForDayRestartable(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	shifts := []model.Shift{{Start: "12:00", End: "13:00"}}

	seq, err := SlotsForDay(15, day, shifts)
	if err != nil {
		t.Fatalf("SlotsForDay: %v", err)
	}

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	if first, second := count(), count(); first != second || first != 4 {
		t.Errorf("expected both passes to yield 4 slots, got %d then %d", first, second)
	}
}

func TestSlotsForDayInvalidShift(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	if _, err := SlotsForDay(15, day, []model.Shift{{Start: "25:00", End: "26:00"}}); err == nil {
		t.Error("expected error for invalid wall-clock shift")
	}
}

func TestInShiftWindow(t *testing.T) {
	shifts := []model.Shift{
		{Start: "12:00", End: "15:00"},
		{Start: "19:00", End: "23:00"},
	}
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"inside dinner", day.Add(20 * time.Hour), true},
		{"shift start inclusive", day.Add(19 * time.Hour), true},
		{"shift end exclusive", day.Add(23 * time.Hour), false},
		{"between shifts", day.Add(17 * time.Hour), false},
		{"early morning", day.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inShiftWindow(tt.at, shifts)
			if err != nil {
				t.Fatalf("inShiftWindow: %v", err)
			}
			if got != tt.want {
				t.Errorf("inShiftWindow(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}

	// Without configured shifts every instant is in service.
	got, err := inShiftWindow(day.Add(3*time.Hour), nil)
	if err != nil {
		t.Fatalf("inShiftWindow: %v", err)
	}
	if !got {
		t.Error("expected any instant to be in service when no shifts are configured")
	}
}
