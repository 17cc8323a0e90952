package update_studio_config

import (
	"context"

	"github.com/framehaus/StudioBookingService/internal/service/scheduleconfig/models"
)

type ConfigService interface {
	Upsert(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
