package domain

import "github.com/framehaus/StudioBookingService/pkg/types"

// OperatingWindow is the daily time range a studio accepts bookings,
// plus the granularity at which slots are offered. Built once per
// request and threaded into both slot generation and availability
// resolution, so every call site works from the same values.
type OperatingWindow struct {
	StartTime      types.TimeString // inclusive lower bound of the operating day
	EndTime        types.TimeString // exclusive upper bound - no session may end after this
	SlotGapMinutes int              // spacing between consecutive candidate start times
}

// IsValid reports whether the window can produce slots:
// start strictly before end and a positive gap.
func (w OperatingWindow) IsValid() bool {
	if w.SlotGapMinutes <= 0 {
		return false
	}
	start, err := w.StartTime.Minutes()
	if err != nil {
		return false
	}
	end, err := w.EndTime.Minutes()
	if err != nil {
		return false
	}
	return start < end
}
