package reschedule_booking

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

// UseCase use case для переноса бронирования на другой слот
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

// Execute выполняет use case переноса бронирования
//
// Ключевое правило разрешения конфликтов: занятое самим переносимым
// бронированием время не считается конфликтом, поэтому перенос внутри
// собственного интервала (например сдвиг на полчаса при часовой сессии)
// разрешён. Чужие активные бронирования зала учитываются полностью.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: user=%d, booking=%d, newDate=%s, newTime=%s",
		req.UserID, req.BookingID, req.NewDate.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация новой даты
	if err := validateDate(req.NewDate, now); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 5. Проверяем права доступа: владелец или менеджер студии
	if booking.CustomerID != req.UserID {
		if err := uc.checkManagerAccess(ctx, booking.StudioID, req.UserID); err != nil {
			uc.logger.Warn("RescheduleBooking: access denied for user=%d to booking id=%d",
				req.UserID, req.BookingID)
			return nil, err
		}
	}

	// 6. Проверяем, что бронирование можно перенести
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d cannot be rescheduled, status=%s",
			req.BookingID, booking.Status)
		return nil, ErrCannotReschedule
	}

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, booking.StudioID, ptr.Ptr(booking.LayoutID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("RescheduleBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = domain.DefaultScheduleConfig(booking.StudioID)
			uc.logger.Info("RescheduleBooking: using default config for studio=%d, layout=%d",
				booking.StudioID, booking.LayoutID)
		} else {
			uc.logger.Info("RescheduleBooking: using config id=%d", config.ID)
		}

		window := config.Window()
		if !window.IsValid() {
			uc.logger.Warn("RescheduleBooking: misconfigured operating window for studio=%d (%s-%s, gap=%d)",
				booking.StudioID, window.StartTime, window.EndTime, window.SlotGapMinutes)
			return ErrInvalidTimeSlot
		}

		// 7.2. Проверяем, что время начала попадает в сетку расписания
		if err := validateSlotOnGrid(req.StartTime, window); err != nil {
			uc.logger.Warn("RescheduleBooking: slot grid validation failed: %v", err)
			return err
		}

		// 7.3. Проверяем, что слот сегодняшнего дня ещё не прошёл
		if err := validateNotInPastToday(req.NewDate, req.StartTime, now); err != nil {
			uc.logger.Warn("RescheduleBooking: booking time validation failed: %v", err)
			return err
		}

		// 7.4. Определяем длительность сессии: конфигурация пакета ->
		// длительность самого бронирования -> дефолт
		durationMinutes := scheduling.ResolveDuration(
			config.SessionDurationMinutes, ptr.Ptr(booking.DurationMinutes))

		// Сессия должна заканчиваться не позже закрытия и не переходить через полночь
		endTime, err := req.StartTime.AddMinutes(durationMinutes)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: session runs past midnight: start=%s, duration=%d",
				req.StartTime, durationMinutes)
			return fmt.Errorf("%w: session must end within the same day", ErrInvalidTimeSlot)
		}

		// 7.5. Получаем активные бронирования зала на новую дату с блокировкой (FOR UPDATE)
		filter := domain.StudioBookingsFilter{
			StudioID:        booking.StudioID,
			LayoutID:        ptr.Ptr(booking.LayoutID),
			StartDate:       &req.NewDate,
			EndDate:         &req.NewDate,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.6. Строим занятые интервалы, исключая само переносимое бронирование
		ranges, err := scheduling.BuildOccupiedRanges(bookings, ptr.Ptr(booking.ID))
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to build occupied ranges: %v", err)
			return fmt.Errorf("%w: failed to build occupied ranges: %v", ErrInternal, err)
		}

		requested := []domain.TimeSlot{{StartTime: req.StartTime, Available: true}}
		resolved, err := scheduling.ResolveAvailability(requested, durationMinutes, ranges, window)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to resolve availability: %v", err)
			return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}
		if !resolved[0].Available {
			uc.logger.Warn("RescheduleBooking: slot %s is not available for layout=%d on %s",
				req.StartTime, booking.LayoutID, req.NewDate.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 7.7. Переносим бронирование
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewDate, req.StartTime, endTime, durationMinutes); err != nil {
			// Гонка на уникальном индексе: слот заняли между проверкой и обновлением
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleBooking: slot %s was taken concurrently", req.StartTime)
				return ErrSlotNotAvailable
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		// Обновляем локальную копию для ответа
		booking.BookingDate = req.NewDate
		booking.StartTime = req.StartTime
		booking.EndTime = endTime
		booking.DurationMinutes = durationMinutes
		booking.Status = domain.StatusRescheduled

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to %s %s",
		booking.ID, req.NewDate.Format(domain.DateFormat), req.StartTime)

	return fromDomainBooking(booking), nil
}

// checkManagerAccess проверяет, что пользователь является менеджером студии
func (uc *UseCase) checkManagerAccess(ctx context.Context, studioID int64, userID int64) error {
	studio, err := uc.studioClient.GetStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			return ErrStudioNotFound
		}
		return fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	for _, managerID := range studio.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	return ErrAccessDenied
}
