// Package scheduling содержит чистую логику расписания: генерацию
// кандидатных слотов и расчет их доступности. Никакого состояния и I/O -
// все функции детерминированы относительно своих аргументов
// (текущее время всегда передается явно, см. TimeProvider в usecases).
package scheduling

import (
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

// GenerateSlots генерирует упорядоченный список кандидатных слотов на дату.
// Кандидаты идут от начала рабочего окна с шагом SlotGapMinutes, пока
// начало слота строго раньше конца окна. Слот, чья сессия выходит за
// закрытие, все равно эмитится - отсечение по границе делает resolver.
//
// Правило "сегодня": для текущей даты кандидаты, начинающиеся не позже
// now, помечаются Available=false. Для дат в прошлом недоступны все.
//
// Некорректное окно (start >= end, gap <= 0) дает пустой список, а не
// ошибку: для вызывающего "нет слотов" и "студия не настроена"
// неразличимы на этом уровне.
func GenerateSlots(date time.Time, window domain.OperatingWindow, now time.Time) []domain.TimeSlot {
	if !window.IsValid() {
		return []domain.TimeSlot{}
	}

	// Окно уже проверено IsValid, ошибки невозможны
	startMinutes, _ := window.StartTime.Minutes()
	endMinutes, _ := window.EndTime.Minutes()

	pastDay := DateInPast(date, now)
	today := SameDay(date, now)
	nowMinutes := now.Hour()*60 + now.Minute()

	slots := make([]domain.TimeSlot, 0)

	for m := startMinutes; m < endMinutes; m += window.SlotGapMinutes {
		startTime, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}

		available := true
		if pastDay {
			available = false
		} else if today && m <= nowMinutes {
			// Слоты "в момент now" тоже недоступны
			available = false
		}

		slots = append(slots, domain.TimeSlot{
			StartTime: startTime,
			Available: available,
		})
	}

	return slots
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func DateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
