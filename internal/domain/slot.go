package domain

import "github.com/framehaus/StudioBookingService/pkg/types"

// TimeSlot represents one candidate session start time on a given date.
// Slots are recomputed per request and never persisted.
type TimeSlot struct {
	StartTime types.TimeString
	Available bool
}

// OccupiedRange is the minute interval during which an existing booking
// holds a layout. Derived transiently from booking rows for a single
// date; half-open: [StartMinutes, EndMinutes).
type OccupiedRange struct {
	StartMinutes    int
	EndMinutes      int
	SourceBookingID int64 // used only to exclude self when rescheduling
}

// Overlaps reports whether the half-open interval [startMinutes, endMinutes)
// overlaps this range. Touching endpoints do not count as overlap, which
// allows back-to-back bookings.
func (r OccupiedRange) Overlaps(startMinutes, endMinutes int) bool {
	return startMinutes < r.EndMinutes && endMinutes > r.StartMinutes
}
