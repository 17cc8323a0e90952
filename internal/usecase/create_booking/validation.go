package create_booking

import (
	"fmt"
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/internal/scheduling"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}

	if req.LayoutID <= 0 {
		return fmt.Errorf("%w: layoutID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if scheduling.DateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotOnGrid проверяет, что время начала попадает в сетку расписания:
// лежит внутри рабочего окна и отстоит от открытия на целое число шагов
func validateSlotOnGrid(startTime types.TimeString, window domain.OperatingWindow) error {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	openMinutes, err := window.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid operating window: %v", ErrInternal, err)
	}
	closeMinutes, err := window.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid operating window: %v", ErrInternal, err)
	}

	if startMinutes < openMinutes || startMinutes >= closeMinutes {
		return fmt.Errorf("%w: start time %s is outside operating hours %s-%s",
			ErrInvalidTimeSlot, startTime, window.StartTime, window.EndTime)
	}

	if (startMinutes-openMinutes)%window.SlotGapMinutes != 0 {
		return fmt.Errorf("%w: start time %s is not aligned to the %d-minute grid",
			ErrInvalidTimeSlot, startTime, window.SlotGapMinutes)
	}

	return nil
}

// validateNotInPastToday проверяет, что слот сегодняшнего дня ещё не прошёл
func validateNotInPastToday(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if !scheduling.SameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if !startTime.IsAfter(currentTime) {
		return fmt.Errorf("%w: slot %s has already started", ErrTooLateToBook, startTime)
	}

	return nil
}
