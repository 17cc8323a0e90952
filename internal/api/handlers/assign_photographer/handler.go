package assign_photographer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/framehaus/StudioBookingService/internal/api/handlers"
	"github.com/framehaus/StudioBookingService/internal/api/middleware"
	"github.com/framehaus/StudioBookingService/internal/service/bookings"
	"github.com/framehaus/StudioBookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID      = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidPhotographerID = "некорректный ID фотографа"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "бронирование не найдено"
	msgForbidden             = "доступ запрещен"
	msgBookingNotActive      = "нельзя назначить фотографа на неактивную съёмку"
)

// AssignPhotographerRequest HTTP request model
type AssignPhotographerRequest struct {
	PhotographerID int64 `json:"photographerId"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/photographer
// Доступно только менеджерам студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/photographer - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/photographer - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AssignPhotographerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/photographer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.PhotographerID <= 0 {
		h.logger.Warn("PATCH /bookings/{id}/photographer - Invalid photographer ID: %d", req.PhotographerID)
		handlers.RespondBadRequest(w, msgInvalidPhotographerID)
		return
	}

	serviceReq := &models.AssignPhotographerRequest{
		UserID:         userID,
		PhotographerID: req.PhotographerID,
	}

	if err := h.service.AssignPhotographer(r.Context(), bookingID, serviceReq); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/photographer - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/photographer - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/photographer - Booking not active: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingNotActive)

		default:
			h.logger.Error("PATCH /bookings/{id}/photographer - Failed to assign photographer: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/photographer - Photographer assigned successfully: booking_id=%d, photographer_id=%d, user_id=%d",
		bookingID, req.PhotographerID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
