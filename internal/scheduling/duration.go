package scheduling

import "github.com/framehaus/StudioBookingService/internal/domain"

// ResolveDuration разрешает длительность сессии в минутах по единому
// правилу приоритета, одинаковому для нового бронирования и переноса:
//
//  1. Настроенная длительность пакета/layout (ScheduleConfig);
//  2. Собственная длительность бронирования;
//  3. Дефолт 60 минут.
//
// Нулевые и отрицательные значения источника считаются отсутствующими.
func ResolveDuration(configuredMinutes *int, bookingMinutes *int) int {
	if configuredMinutes != nil && *configuredMinutes > 0 {
		return *configuredMinutes
	}
	if bookingMinutes != nil && *bookingMinutes > 0 {
		return *bookingMinutes
	}
	return domain.DefaultSessionDurationMinutes
}
