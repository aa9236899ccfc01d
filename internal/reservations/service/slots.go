package service

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"woki/pkg/model"
)

// parseWallClock parses an "HH:mm" local wall-clock value.
func parseWallClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid wall-clock value: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid wall-clock hour: %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid wall-clock minute: %q", s)
	}
	return hour, minute, nil
}

type window struct {
	start time.Time
	end   time.Time
}

// shiftWindows anchors the shift wall-clock values to day's calendar date in
// day's location. Windows are half-open: the end instant is excluded.
func shiftWindows(day time.Time, shifts []model.Shift) ([]window, error) {
	windows := make([]window, 0, len(shifts))
	for _, shift := range shifts {
		startHour, startMinute, err := parseWallClock(shift.Start)
		if err != nil {
			return nil, err
		}
		endHour, endMinute, err := parseWallClock(shift.End)
		if err != nil {
			return nil, err
		}

		y, m, d := day.Date()
		windows = append(windows, window{
			start: time.Date(y, m, d, startHour, startMinute, 0, 0, day.Location()),
			end:   time.Date(y, m, d, endHour, endMinute, 0, 0, day.Location()),
		})
	}
	return windows, nil
}

// SlotsForDay yields candidate reservation start instants for the calendar
// day anchored at day (local midnight), in ascending order per shift. Shifts
// are not merged or deduplicated against each other; without shifts the day
// runs from local midnight to the next local midnight, exclusive. The
// sequence is restartable: each range re-yields from the beginning.
func SlotsForDay(slotMinutes int, day time.Time, shifts []model.Shift) (iter.Seq[time.Time], error) {
	granularity := time.Duration(slotMinutes) * time.Minute

	var windows []window
	if len(shifts) > 0 {
		var err error
		windows, err = shiftWindows(day, shifts)
		if err != nil {
			return nil, err
		}
	} else {
		// AddDate handles DST days with 23 or 25 hours.
		windows = []window{{start: day, end: day.AddDate(0, 0, 1)}}
	}

	return func(yield func(time.Time) bool) {
		for _, w := range windows {
			for t := w.start; t.Before(w.end); t = t.Add(granularity) {
				if !yield(t) {
					return
				}
			}
		}
	}, nil
}

// inShiftWindow reports whether t falls inside any of the restaurant's shift
// windows on t's own calendar day. With no shifts configured every instant
// is in service.
func inShiftWindow(t time.Time, shifts []model.Shift) (bool, error) {
	if len(shifts) == 0 {
		return true, nil
	}

	windows, err := shiftWindows(t, shifts)
	if err != nil {
		return false, err
	}
	for _, w := range windows {
		if !t.Before(w.start) && t.Before(w.end) {
			return true, nil
		}
	}
	return false, nil
}
