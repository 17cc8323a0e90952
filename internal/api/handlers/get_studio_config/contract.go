package get_studio_config

import (
	"context"

	"github.com/framehaus/StudioBookingService/internal/service/scheduleconfig/models"
)

type ConfigService interface {
	GetAllByStudio(ctx context.Context, studioID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
