package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/framehaus/StudioBookingService/internal/api/handlers"
	getAvailableSlots "github.com/framehaus/StudioBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgInvalidLayoutID = "некорректный ID зала"
	msgInvalidParams   = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgStudioNotFound  = "студия не найдена"
	msgLayoutNotFound  = "зал не найден"
	msgLayoutInactive  = "зал временно не принимает бронирования"
	msgBookingNotFound = "бронирование не найдено"
	msgInvalidDate     = "некорректная дата бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/layouts/{layoutId}/available-slots
// Query params: date=YYYY-MM-DD (обязательный), excludeBookingId (опционально, для диалога переноса)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	layoutID, err := strconv.ParseInt(vars["layoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Invalid layout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLayoutID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(
		0, // endpoint публичный, пользователь не известен
		studioID,
		layoutID,
		r.URL.Query().Get("date"),
		r.URL.Query().Get("excludeBookingId"),
	)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, getAvailableSlots.ErrLayoutNotFound):
			h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Layout not found: layout_id=%d", layoutID)
			handlers.RespondNotFound(w, msgLayoutNotFound)

		case errors.Is(err, getAvailableSlots.ErrLayoutInactive):
			h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Layout inactive: layout_id=%d", layoutID)
			handlers.RespondBadRequest(w, msgLayoutInactive)

		case errors.Is(err, getAvailableSlots.ErrBookingNotFound):
			h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Booking not found: exclude_booking_id=%v",
				useCaseReq.ExcludeBookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Invalid date: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/layouts/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /studios/{id}/layouts/{id}/slots - Failed to get slots: studio_id=%d, layout_id=%d, error=%v",
				studioID, layoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/layouts/{id}/slots - Resolved %d slots: studio_id=%d, layout_id=%d",
		len(result.Slots), studioID, layoutID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
