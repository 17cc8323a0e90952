package get_studio_config

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
	msgInvalidStudioID = "некорректный ID студии"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgStudioNotFound  = "студия не найдена"
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

// Handle GET /api/v1/studios/{studioId}/schedule-config
// Возвращает все конфигурации студии (общестудийную и для отдельных залов)
// Доступно только менеджерам студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/schedule-config - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/schedule-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetAllByStudio(r.Context(), studioID, userID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/schedule-config - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, scheduleconfig.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/schedule-config - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /studios/{id}/schedule-config - Failed to get configs: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/schedule-config - Retrieved %d configs: studio_id=%d, user_id=%d",
		len(result.Configs), studioID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
