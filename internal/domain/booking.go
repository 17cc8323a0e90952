package domain

import (
	"time"

	"github.com/framehaus/StudioBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusInProgress  BookingStatus = "in_progress"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusNoShow      BookingStatus = "no_show"
	StatusRescheduled BookingStatus = "rescheduled"
)

// OccupiesTime reports whether a booking in this status holds its time
// range on the schedule. Only cancelled and no-show bookings free their
// slot. Unknown statuses occupy time: wrongly blocking a slot is
// recoverable, silently double-booking one is not.
func (s BookingStatus) OccupiesTime() bool {
	switch s {
	case StatusCancelled, StatusNoShow:
		return false
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusRescheduled:
		return true
	default:
		return true
	}
}

// IsValid reports whether the status is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	default:
		return false
	}
}

// Booking represents a studio session booking in the system
type Booking struct {
	ID              int64
	CustomerID      int64
	StudioID        int64
	LayoutID        int64  // bookable setup/room within the studio
	PhotographerID  *int64 // assigned staff member, nil until assigned
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString // always derived as StartTime + DurationMinutes
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	LayoutName   string
	SessionPrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesTime reports whether the booking holds its time range on the schedule
func (b *Booking) OccupiesTime() bool {
	return b.Status.OccupiesTime()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusRescheduled
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusRescheduled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsFinished returns true if the booking is completed or was a no-show
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// StudioBookingsFilter фильтр для получения бронирований студии
type StudioBookingsFilter struct {
	StudioID        int64          // Обязательный параметр
	LayoutID        *int64         // Фильтр по layout (опционально, если nil - все layout)
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли бронирования, не занимающие время (cancelled, no_show)
}
