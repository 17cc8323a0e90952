package reschedule_booking

import (
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	rescheduleBooking "github.com/framehaus/StudioBookingService/internal/usecase/reschedule_booking"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate   string `json:"newDate"`   // "2025-10-16"
	StartTime string `json:"startTime"` // "14:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	StudioID        int64   `json:"studioId"`
	LayoutID        int64   `json:"layoutId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	LayoutName      string  `json:"layoutName"`
	SessionPrice    float64 `json:"sessionPrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(userID, bookingID int64) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		UserID:    userID,
		BookingID: bookingID,
		NewDate:   newDate,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		StudioID:        resp.StudioID,
		LayoutID:        resp.LayoutID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		LayoutName:      resp.LayoutName,
		SessionPrice:    resp.SessionPrice,
	}
}
