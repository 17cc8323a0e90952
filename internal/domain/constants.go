package domain

import "github.com/framehaus/StudioBookingService/pkg/types"

// Default configuration values, used when a studio has no stored
// schedule configuration at any level of the hierarchy
const (
	DefaultOperatingStartTime     = types.TimeString("09:00")
	DefaultOperatingEndTime       = types.TimeString("18:00")
	DefaultSlotGapMinutes         = 30
	DefaultSessionDurationMinutes = 60
)

// Business validation constants
const (
	MinSlotGapMinutes           = 5
	MaxSlotGapMinutes           = 240 // 4 hours
	MinSessionDurationMinutes   = 15
	MaxSessionDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NonOccupyingStatuses список статусов, не занимающих время на расписании
// Используется для фильтрации при расчете доступных слотов
var NonOccupyingStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// OccupyingStatuses список статусов, занимающих время на расписании
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusRescheduled,
}
