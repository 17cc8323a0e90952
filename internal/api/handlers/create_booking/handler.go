package create_booking

import (
	"errors"
	"net/http"

	"github.com/framehaus/StudioBookingService/internal/api/handlers"
	"github.com/framehaus/StudioBookingService/internal/api/middleware"
	createBooking "github.com/framehaus/StudioBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgStudioNotFound     = "студия не найдена"
	msgLayoutNotFound     = "зал не найден"
	msgLayoutInactive     = "зал временно не принимает бронирования"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrStudioNotFound):
			h.logger.Warn("POST /bookings - Studio not found: studio_id=%d", req.StudioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, createBooking.ErrLayoutNotFound):
			h.logger.Warn("POST /bookings - Layout not found: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondNotFound(w, msgLayoutNotFound)

		case errors.Is(err, createBooking.ErrLayoutInactive):
			h.logger.Warn("POST /bookings - Layout inactive: user_id=%d, layout_id=%d", userID, req.LayoutID)
			handlers.RespondBadRequest(w, msgLayoutInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, studio_id=%d, error=%v",
				userID, req.StudioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, studio_id=%d",
		result.ID, userID, req.StudioID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
