package reschedule_booking

import (
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	UserID    int64            // ID пользователя, выполняющего перенос
	BookingID int64            // ID переносимого бронирования
	NewDate   time.Time        // Новая дата (без времени)
	StartTime types.TimeString // Новое время начала (например, "14:00")
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID              int64            // ID бронирования
	CustomerID      int64            // ID клиента
	StudioID        int64            // ID студии
	LayoutID        int64            // ID зала
	BookingDate     time.Time        // Новая дата бронирования
	StartTime       types.TimeString // Новое время начала
	EndTime         types.TimeString // Новое время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования (rescheduled)

	LayoutName   string  // Название зала
	SessionPrice float64 // Цена сессии
}

func fromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		StudioID:        b.StudioID,
		LayoutID:        b.LayoutID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		LayoutName:      b.LayoutName,
		SessionPrice:    b.SessionPrice,
	}
}
