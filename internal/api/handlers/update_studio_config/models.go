package update_studio_config

import (
	"github.com/framehaus/StudioBookingService/internal/service/scheduleconfig/models"
)

// UpdateStudioConfigRequest HTTP request model
type UpdateStudioConfigRequest struct {
	LayoutID               *int64 `json:"layoutId,omitempty"` // NULL = конфигурация для всех залов
	OperatingStartTime     string `json:"operatingStartTime"` // "09:00"
	OperatingEndTime       string `json:"operatingEndTime"`   // "18:00"
	SlotGapMinutes         int    `json:"slotGapMinutes"`
	SessionDurationMinutes *int   `json:"sessionDurationMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStudioConfigRequest) ToServiceRequest(userID, studioID int64) *models.CreateConfigRequest {
	return &models.CreateConfigRequest{
		UserID:                 userID,
		StudioID:               studioID,
		LayoutID:               r.LayoutID,
		OperatingStartTime:     r.OperatingStartTime,
		OperatingEndTime:       r.OperatingEndTime,
		SlotGapMinutes:         r.SlotGapMinutes,
		SessionDurationMinutes: r.SessionDurationMinutes,
	}
}
