package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/framehaus/StudioBookingService/internal/domain"
	bookingRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/booking"
	configRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/scheduleconfig"
	studioClient "github.com/framehaus/StudioBookingService/internal/integrations/studioservice"
	"github.com/framehaus/StudioBookingService/internal/scheduling"
	"github.com/framehaus/StudioBookingService/pkg/ptr"
)

// UseCase use case для получения сетки слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	studioClient StudioServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		studioClient: studioClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов дня
//
// При указанном ExcludeBookingID возвращает сетку для диалога переноса:
// занятое этим бронированием время не считается конфликтом, а его
// длительность используется при расчёте доступности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, studio=%d, layout=%d, date=%s, excludeBooking=%v",
		req.UserID, req.StudioID, req.LayoutID, req.Date.Format(domain.DateFormat), req.ExcludeBookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование студии
	if _, err := uc.studioClient.GetStudio(ctx, req.StudioID); err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			uc.logger.Warn("GetAvailableSlots: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 5. Проверяем существование и активность зала
	layout, err := uc.studioClient.GetLayout(ctx, req.StudioID, req.LayoutID)
	if err != nil {
		if errors.Is(err, studioClient.ErrLayoutNotFound) {
			uc.logger.Warn("GetAvailableSlots: layout id=%d not found in studio id=%d", req.LayoutID, req.StudioID)
			return nil, ErrLayoutNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get layout id=%d: %v", req.LayoutID, err)
		return nil, fmt.Errorf("%w: failed to get layout: %v", ErrInternal, err)
	}
	if !layout.IsActive {
		uc.logger.Warn("GetAvailableSlots: layout id=%d is not active", req.LayoutID)
		return nil, ErrLayoutInactive
	}

	// 6. Если запрошена сетка для переноса - получаем переносимое бронирование
	var rescheduledBooking *domain.Booking
	if req.ExcludeBookingID != nil {
		rescheduledBooking, err = uc.bookingRepo.GetByID(ctx, *req.ExcludeBookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("GetAvailableSlots: booking id=%d not found", *req.ExcludeBookingID)
				return nil, ErrBookingNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get booking id=%d: %v", *req.ExcludeBookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
	}

	// 7. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.StudioID, ptr.Ptr(req.LayoutID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = domain.DefaultScheduleConfig(req.StudioID)
		uc.logger.Info("GetAvailableSlots: using default config for studio=%d, layout=%d",
			req.StudioID, req.LayoutID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	// 8. Определяем длительность сессии: конфигурация пакета ->
	// длительность переносимого бронирования -> дефолт
	var bookingMinutes *int
	if rescheduledBooking != nil {
		bookingMinutes = ptr.Ptr(rescheduledBooking.DurationMinutes)
	}
	durationMinutes := scheduling.ResolveDuration(config.SessionDurationMinutes, bookingMinutes)

	// 9. Генерируем сетку слотов дня
	window := config.Window()
	slots := scheduling.GenerateSlots(req.Date, window, now)
	if len(slots) == 0 {
		// Некорректное окно работы: сетка недоступна, но это не ошибка запроса
		uc.logger.Warn("GetAvailableSlots: empty slot grid for studio=%d, layout=%d (window %s-%s, gap=%d)",
			req.StudioID, req.LayoutID, window.StartTime, window.EndTime, window.SlotGapMinutes)
		return &Response{
			Date:            req.Date,
			StudioID:        req.StudioID,
			LayoutID:        req.LayoutID,
			DurationMinutes: durationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 10. Получаем бронирования зала на эту дату
	filter := domain.StudioBookingsFilter{
		StudioID:        req.StudioID,
		LayoutID:        ptr.Ptr(req.LayoutID),
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только занимающие время бронирования
	}

	bookings, err := uc.bookingRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 11. Строим занятые интервалы, исключая переносимое бронирование
	ranges, err := scheduling.BuildOccupiedRanges(bookings, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build occupied ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to build occupied ranges: %v", ErrInternal, err)
	}

	// 12. Вычисляем доступность каждого слота
	resolved, err := scheduling.ResolveAvailability(slots, durationMinutes, ranges, window)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots for studio=%d, layout=%d, date=%s",
		len(resolved), req.StudioID, req.LayoutID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		StudioID:        req.StudioID,
		LayoutID:        req.LayoutID,
		DurationMinutes: durationMinutes,
		Slots:           fromDomainSlots(resolved),
	}, nil
}
