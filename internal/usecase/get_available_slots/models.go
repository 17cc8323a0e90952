package get_available_slots

import (
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID           int64     // ID пользователя (для логирования, не влияет на результат)
	StudioID         int64     // ID студии
	LayoutID         int64     // ID зала (съемочного сетапа)
	Date             time.Time // Дата для получения слотов (без времени)
	ExcludeBookingID *int64    // ID переносимого бронирования: его занятое время не учитывается
}

// Response модель ответа со списком слотов дня
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	StudioID        int64     // ID студии
	LayoutID        int64     // ID зала
	DurationMinutes int       // Длительность сессии, применённая при расчёте
	Slots           []Slot    // Полная сетка слотов дня с признаком доступности
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Available bool             // Свободен ли слот для бронирования
}

func fromDomainSlots(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			StartTime: s.StartTime,
			Available: s.Available,
		}
	}
	return result
}
