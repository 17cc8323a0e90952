package get_available_slots

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("studio not found")

	// ErrLayoutNotFound возвращается, когда зал не найден в студии
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrLayoutInactive возвращается, когда зал временно не принимает бронирования
	ErrLayoutInactive = errors.New("layout is not active")

	// ErrBookingNotFound возвращается, когда переносимое бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
