package studioservice

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("studio not found")

	// ErrLayoutNotFound возвращается, когда layout не найден в студии
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("studioservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("studioservice client: invalid response")
)
