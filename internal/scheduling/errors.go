package scheduling

import "errors"

var (
	// ErrInvalidDuration возвращается при нулевой или отрицательной длительности сессии
	ErrInvalidDuration = errors.New("scheduling: invalid session duration")

	// ErrMalformedTime возвращается при некорректном времени в слоте или бронировании
	// Некорректное время - это ошибка, а не "слот свободен": молчаливая
	// ложная доступность ведет к двойному бронированию
	ErrMalformedTime = errors.New("scheduling: malformed time value")
)
