package get_studio_bookings

import (
	"strconv"
	"time"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(
	userID, studioID int64,
	layoutIDStr, startDateStr, endDateStr, status, includeInactiveStr string,
) (*models.GetStudioBookingsRequest, error) {
	req := &models.GetStudioBookingsRequest{
		UserID:   userID,
		StudioID: studioID,
	}

	if layoutIDStr != "" {
		layoutID, err := strconv.ParseInt(layoutIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.LayoutID = &layoutID
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status != "" {
		req.Status = &status
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
