package models

import (
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

// Request модели

// CreateConfigRequest запрос на создание конфигурации расписания
type CreateConfigRequest struct {
	UserID                 int64  `json:"userId"`
	StudioID               int64  `json:"studioId"`
	LayoutID               *int64 `json:"layoutId,omitempty"` // NULL = для всех залов студии
	OperatingStartTime     string `json:"operatingStartTime"` // "09:00"
	OperatingEndTime       string `json:"operatingEndTime"`   // "18:00"
	SlotGapMinutes         int    `json:"slotGapMinutes"`     // 15, 30, 60, etc.
	SessionDurationMinutes *int   `json:"sessionDurationMinutes,omitempty"`
}

// UpdateConfigRequest запрос на обновление конфигурации расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	UserID                 int64   `json:"userId"`
	OperatingStartTime     *string `json:"operatingStartTime,omitempty"`
	OperatingEndTime       *string `json:"operatingEndTime,omitempty"`
	SlotGapMinutes         *int    `json:"slotGapMinutes,omitempty"`
	SessionDurationMinutes *int    `json:"sessionDurationMinutes,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID                     int64     `json:"id"`
	StudioID               int64     `json:"studioId"`
	LayoutID               *int64    `json:"layoutId,omitempty"`
	OperatingStartTime     string    `json:"operatingStartTime"`
	OperatingEndTime       string    `json:"operatingEndTime"`
	SlotGapMinutes         int       `json:"slotGapMinutes"`
	SessionDurationMinutes *int      `json:"sessionDurationMinutes,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                     c.ID,
		StudioID:               c.StudioID,
		LayoutID:               c.LayoutID,
		OperatingStartTime:     c.OperatingStartTime.String(),
		OperatingEndTime:       c.OperatingEndTime.String(),
		SlotGapMinutes:         c.SlotGapMinutes,
		SessionDurationMinutes: c.SessionDurationMinutes,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}

// ToDomainConfig конвертирует CreateConfigRequest в domain модель
func (r *CreateConfigRequest) ToDomainConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		StudioID:               r.StudioID,
		LayoutID:               r.LayoutID,
		OperatingStartTime:     types.TimeString(r.OperatingStartTime),
		OperatingEndTime:       types.TimeString(r.OperatingEndTime),
		SlotGapMinutes:         r.SlotGapMinutes,
		SessionDurationMinutes: r.SessionDurationMinutes,
	}
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.ScheduleConfig) {
	if r.OperatingStartTime != nil {
		config.OperatingStartTime = types.TimeString(*r.OperatingStartTime)
	}
	if r.OperatingEndTime != nil {
		config.OperatingEndTime = types.TimeString(*r.OperatingEndTime)
	}
	if r.SlotGapMinutes != nil {
		config.SlotGapMinutes = *r.SlotGapMinutes
	}
	if r.SessionDurationMinutes != nil {
		config.SessionDurationMinutes = r.SessionDurationMinutes
	}
}
