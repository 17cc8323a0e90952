package delete_studio_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/framehaus/StudioBookingService/internal/api/handlers"
	"github.com/framehaus/StudioBookingService/internal/api/middleware"
	"github.com/framehaus/StudioBookingService/internal/service/scheduleconfig"
)

const (
	msgInvalidConfigID = "некорректный ID конфигурации"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "конфигурация не найдена"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schedule-configs/{configId}
// Доступно только менеджерам студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	configID, err := strconv.ParseInt(vars["configId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule-configs/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /schedule-configs/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), configID, userID); err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrConfigNotFound):
			h.logger.Warn("DELETE /schedule-configs/{id} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleconfig.ErrStudioNotFound):
			h.logger.Warn("DELETE /schedule-configs/{id} - Studio not found for config id=%d", configID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleconfig.ErrAccessDenied):
			h.logger.Warn("DELETE /schedule-configs/{id} - Access denied: config_id=%d, user_id=%d",
				configID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /schedule-configs/{id} - Failed to delete config: config_id=%d, error=%v",
				configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule-configs/{id} - Config deleted successfully: config_id=%d, user_id=%d",
		configID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
