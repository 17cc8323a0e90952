package assign_photographer

import (
	"context"

	"github.com/framehaus/StudioBookingService/internal/service/bookings/models"
)

type BookingService interface {
	AssignPhotographer(ctx context.Context, bookingID int64, req *models.AssignPhotographerRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
