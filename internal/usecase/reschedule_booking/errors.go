package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("reschedule_booking: studio not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается, когда бронирование нельзя перенести
	// (завершено, отменено или клиент не пришёл)
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной дате переноса
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда целевой слот занят
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время слота некорректно
	// (не попадает в сетку расписания или сессия не помещается до закрытия)
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrTooLateToBook возвращается при попытке переноса на уже прошедшее время
	ErrTooLateToBook = errors.New("reschedule_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
