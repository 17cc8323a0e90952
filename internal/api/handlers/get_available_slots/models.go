package get_available_slots

import (
	"strconv"
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	getAvailableSlots "github.com/framehaus/StudioBookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"` // "2025-10-15"
	StudioID        int64          `json:"studioId"`
	LayoutID        int64          `json:"layoutId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(userID, studioID, layoutID int64, dateStr, excludeBookingIDStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		UserID:   userID,
		StudioID: studioID,
		LayoutID: layoutID,
		Date:     date,
	}

	if excludeBookingIDStr != "" {
		excludeBookingID, err := strconv.ParseInt(excludeBookingIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeBookingID = &excludeBookingID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		StudioID:        resp.StudioID,
		LayoutID:        resp.LayoutID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
