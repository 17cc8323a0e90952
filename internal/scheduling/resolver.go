package scheduling

import (
	"fmt"

	"github.com/framehaus/StudioBookingService/internal/domain"
)

// BuildOccupiedRanges строит занятые минутные интервалы из бронирований
// на одну дату. Пропускаются бронирования, не занимающие время
// (cancelled, no_show), и бронирование с excludeBookingID - при переносе
// собственный прежний интервал не должен конфликтовать сам с собой.
//
// Конец интервала: start + duration; при нулевой длительности
// используется дефолт 60 минут. Отрицательная длительность и
// некорректное время начала - ошибка, а не пропуск.
func BuildOccupiedRanges(bookings []*domain.Booking, excludeBookingID *int64) ([]domain.OccupiedRange, error) {
	ranges := make([]domain.OccupiedRange, 0, len(bookings))

	for _, booking := range bookings {
		if !booking.OccupiesTime() {
			continue
		}
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}

		startMinutes, err := booking.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d start_time=%q: %v",
				ErrMalformedTime, booking.ID, booking.StartTime, err)
		}

		duration := booking.DurationMinutes
		if duration < 0 {
			return nil, fmt.Errorf("%w: booking id=%d has negative duration %d",
				ErrInvalidDuration, booking.ID, duration)
		}
		if duration == 0 {
			duration = domain.DefaultSessionDurationMinutes
		}

		ranges = append(ranges, domain.OccupiedRange{
			StartMinutes:    startMinutes,
			EndMinutes:      startMinutes + duration,
			SourceBookingID: booking.ID,
		})
	}

	return ranges, nil
}

// ResolveAvailability рассчитывает финальную доступность кандидатных
// слотов для сессии длительностью durationMinutes.
//
// Слот недоступен, если:
//   - генератор уже пометил его недоступным (прошедшее время сегодня);
//   - сессия пересекается с занятым интервалом: slotStart < range.End
//     И slotEnd > range.Start (полуоткрытые интервалы - граничащие
//     впритык бронирования не конфликтуют);
//   - сессия заканчивается позже закрытия: slotEnd > window.End.
//
// Возвращает новый слайс в том же порядке. Арифметика в минутах от
// полуночи, поэтому slotEnd за полночь сравнивается корректно и
// отсекается границей окна.
func ResolveAvailability(
	slots []domain.TimeSlot,
	durationMinutes int,
	ranges []domain.OccupiedRange,
	window domain.OperatingWindow,
) ([]domain.TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	closeMinutes, err := window.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: operating end %q: %v", ErrMalformedTime, window.EndTime, err)
	}

	resolved := make([]domain.TimeSlot, len(slots))

	for i, slot := range slots {
		resolved[i] = slot

		if !slot.Available {
			continue
		}

		slotStart, err := slot.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: slot start %q: %v", ErrMalformedTime, slot.StartTime, err)
		}
		slotEnd := slotStart + durationMinutes

		if slotEnd > closeMinutes {
			resolved[i].Available = false
			continue
		}

		if overlapsAny(slotStart, slotEnd, ranges) {
			resolved[i].Available = false
		}
	}

	return resolved, nil
}

// overlapsAny проверяет пересечение слота хотя бы с одним занятым
// интервалом. Достаточно первого найденного - результат булев,
// конкретный "виновник" не атрибутируется
func overlapsAny(slotStart, slotEnd int, ranges []domain.OccupiedRange) bool {
	for _, r := range ranges {
		if r.Overlaps(slotStart, slotEnd) {
			return true
		}
	}
	return false
}
