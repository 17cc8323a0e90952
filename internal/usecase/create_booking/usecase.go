package create_booking

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

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	studioClient StudioServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	studioClient StudioServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		studioClient: studioClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// на один слот зала допускается не более одного активного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, studio=%d, layout=%d, date=%s, time=%s",
		req.CustomerID, req.StudioID, req.LayoutID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование студии
	if _, err := uc.studioClient.GetStudio(ctx, req.StudioID); err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			uc.logger.Warn("CreateBooking: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("CreateBooking: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 5. Получаем зал для проверки активности и денормализации данных
	layout, err := uc.studioClient.GetLayout(ctx, req.StudioID, req.LayoutID)
	if err != nil {
		if errors.Is(err, studioClient.ErrLayoutNotFound) {
			uc.logger.Warn("CreateBooking: layout id=%d not found in studio id=%d", req.LayoutID, req.StudioID)
			return nil, ErrLayoutNotFound
		}
		uc.logger.Error("CreateBooking: failed to get layout id=%d: %v", req.LayoutID, err)
		return nil, fmt.Errorf("%w: failed to get layout: %v", ErrInternal, err)
	}
	if !layout.IsActive {
		uc.logger.Warn("CreateBooking: layout id=%d is not active", req.LayoutID)
		return nil, ErrLayoutInactive
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.StudioID, ptr.Ptr(req.LayoutID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = domain.DefaultScheduleConfig(req.StudioID)
			uc.logger.Info("CreateBooking: using default config for studio=%d, layout=%d",
				req.StudioID, req.LayoutID)
		} else {
			uc.logger.Info("CreateBooking: using config id=%d", config.ID)
		}

		window := config.Window()
		if !window.IsValid() {
			uc.logger.Warn("CreateBooking: misconfigured operating window for studio=%d (%s-%s, gap=%d)",
				req.StudioID, window.StartTime, window.EndTime, window.SlotGapMinutes)
			return ErrInvalidTimeSlot
		}

		// 6.2. Проверяем, что время начала попадает в сетку расписания
		if err := validateSlotOnGrid(req.StartTime, window); err != nil {
			uc.logger.Warn("CreateBooking: slot grid validation failed: %v", err)
			return err
		}

		// 6.3. Проверяем, что слот сегодняшнего дня ещё не прошёл
		if err := validateNotInPastToday(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 6.4. Определяем длительность сессии: конфигурация пакета -> дефолт
		durationMinutes := scheduling.ResolveDuration(config.SessionDurationMinutes, nil)

		// Сессия должна заканчиваться не позже закрытия и не переходить через полночь
		endTime, err := req.StartTime.AddMinutes(durationMinutes)
		if err != nil {
			uc.logger.Warn("CreateBooking: session runs past midnight: start=%s, duration=%d",
				req.StartTime, durationMinutes)
			return fmt.Errorf("%w: session must end within the same day", ErrInvalidTimeSlot)
		}

		// 6.5. Получаем все активные бронирования зала на эту дату с блокировкой (FOR UPDATE)
		filter := domain.StudioBookingsFilter{
			StudioID:        req.StudioID,
			LayoutID:        ptr.Ptr(req.LayoutID),
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только занимающие время бронирования
		}

		bookings, err := uc.bookingRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.6. Проверяем доступность слота через общий резолвер
		ranges, err := scheduling.BuildOccupiedRanges(bookings, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to build occupied ranges: %v", err)
			return fmt.Errorf("%w: failed to build occupied ranges: %v", ErrInternal, err)
		}

		requested := []domain.TimeSlot{{StartTime: req.StartTime, Available: true}}
		resolved, err := scheduling.ResolveAvailability(requested, durationMinutes, ranges, window)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve availability: %v", err)
			return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}
		if !resolved[0].Available {
			uc.logger.Warn("CreateBooking: slot %s is not available for layout=%d on %s",
				req.StartTime, req.LayoutID, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 6.7. Создаем бронирование с денормализацией данных зала
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			StudioID:        req.StudioID,
			LayoutID:        req.LayoutID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация данных зала
			LayoutName:   layout.Name,
			SessionPrice: getSessionPrice(layout),
			// Пожелания
			Notes: req.Notes,
		}

		// 6.8. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Гонка на уникальном индексе: слот заняли между проверкой и вставкой
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s was taken concurrently", req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return fromDomainBooking(result), nil
}

// getSessionPrice извлекает цену сессии из зала
// Если цена не указана (nil), возвращает 0.0
func getSessionPrice(layout *studioClient.Layout) float64 {
	if layout.SessionPrice == nil {
		return 0.0
	}
	return *layout.SessionPrice
}
