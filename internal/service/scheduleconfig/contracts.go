package scheduleconfig

import (
	"context"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/internal/integrations/studioservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error)
	GetByStudioAndLayout(ctx context.Context, studioID int64, layoutID *int64) (*domain.ScheduleConfig, error)
	GetAllByStudio(ctx context.Context, studioID int64) ([]*domain.ScheduleConfig, error)
	Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Delete(ctx context.Context, id int64) error
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetStudio(ctx context.Context, studioID int64) (*studioservice.Studio, error)
	GetLayout(ctx context.Context, studioID, layoutID int64) (*studioservice.Layout, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
