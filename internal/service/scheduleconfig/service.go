package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/framehaus/StudioBookingService/internal/domain"
	configRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/scheduleconfig"
	studioClient "github.com/framehaus/StudioBookingService/internal/integrations/studioservice"
	"github.com/framehaus/StudioBookingService/internal/service/scheduleconfig/models"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo   ConfigRepository
	studioClient StudioServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:   configRepo,
		studioClient: studioClient,
		logger:       logger,
	}
}

// Create создает новую конфигурацию расписания
// Доступно только менеджерам студии
// Проверяет существование студии и зала (если указан)
func (s *Service) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Create: creating config for studio=%d, layout=%v by user=%d",
		req.StudioID, req.LayoutID, req.UserID)

	// 1. Валидируем входные данные
	domainConfig := req.ToDomainConfig()
	if err := s.validateConfigData(domainConfig); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем студию для проверки прав доступа
	studio, err := s.studioClient.GetStudio(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("Create: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("Create: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер студии)
	if !s.isManager(studio, req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of studio=%d", req.UserID, req.StudioID)
		return nil, ErrAccessDenied
	}

	// 4. Если указан layoutID, проверяем его существование
	if req.LayoutID != nil {
		if _, err := s.studioClient.GetLayout(ctx, req.StudioID, *req.LayoutID); err != nil {
			if errors.Is(err, studioClient.ErrLayoutNotFound) {
				s.logger.Warn("Create: layout id=%d not found in studio=%d", *req.LayoutID, req.StudioID)
				return nil, ErrLayoutNotFound
			}
			s.logger.Error("Create: failed to get layout id=%d: %v", *req.LayoutID, err)
			return nil, fmt.Errorf("%w: failed to get layout: %v", ErrInternal, err)
		}
	}

	// 5. Проверяем, не существует ли уже конфигурация с такими параметрами
	existingConfig, err := s.configRepo.GetByStudioAndLayout(ctx, req.StudioID, req.LayoutID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Create: failed to check existing config: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
	}
	if existingConfig != nil {
		s.logger.Warn("Create: config already exists for studio=%d, layout=%v", req.StudioID, req.LayoutID)
		return nil, ErrConfigAlreadyExists
	}

	// 6. Создаем конфигурацию
	createdConfig, err := s.configRepo.Create(ctx, domainConfig)
	if err != nil {
		if errors.Is(err, configRepo.ErrDuplicateConfig) {
			return nil, ErrConfigAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created config id=%d", createdConfig.ID)
	return models.FromDomainConfig(createdConfig), nil
}

// Upsert создает конфигурацию или обновляет существующую для пары (студия, зал)
// Доступно только менеджерам студии
func (s *Service) Upsert(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for studio=%d, layout=%v by user=%d",
		req.StudioID, req.LayoutID, req.UserID)

	existing, err := s.configRepo.GetByStudioAndLayout(ctx, req.StudioID, req.LayoutID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return s.Create(ctx, req)
		}
		s.logger.Error("Upsert: failed to check existing config: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
	}

	updateReq := &models.UpdateConfigRequest{
		UserID:                 req.UserID,
		OperatingStartTime:     &req.OperatingStartTime,
		OperatingEndTime:       &req.OperatingEndTime,
		SlotGapMinutes:         &req.SlotGapMinutes,
		SessionDurationMinutes: req.SessionDurationMinutes,
	}

	return s.Update(ctx, existing.ID, updateReq)
}

// GetAllByStudio получает все конфигурации студии
// Доступно только менеджерам студии
func (s *Service) GetAllByStudio(ctx context.Context, studioID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByStudio: fetching configs for studio=%d by user=%d", studioID, userID)

	// Получаем студию для проверки прав доступа
	studio, err := s.studioClient.GetStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("GetAllByStudio: studio id=%d not found", studioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("GetAllByStudio: failed to get studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер студии)
	if !s.isManager(studio, userID) {
		s.logger.Warn("GetAllByStudio: user=%d is not a manager of studio=%d", userID, studioID)
		return nil, ErrAccessDenied
	}

	configs, err := s.configRepo.GetAllByStudio(ctx, studioID)
	if err != nil {
		s.logger.Error("GetAllByStudio: repository error for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: GetAllByStudio - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByStudio: successfully fetched %d configs for studio=%d", len(configs), studioID)
	return models.FromDomainConfigList(configs), nil
}

// Update обновляет существующую конфигурацию
// Доступно только менеджерам студии
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config id=%d by user=%d", id, req.UserID)

	// 1. Получаем существующую конфигурацию
	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем обновления к копии и валидируем результат
	tempConfig := *config
	req.ApplyToConfig(&tempConfig)

	if err := s.validateConfigData(&tempConfig); err != nil {
		s.logger.Warn("Update: validation failed for config id=%d: %v", id, err)
		return nil, err
	}

	// 3. Получаем студию для проверки прав доступа
	studio, err := s.studioClient.GetStudio(ctx, config.StudioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("Update: studio id=%d not found", config.StudioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("Update: failed to get studio id=%d: %v", config.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 4. Проверяем права доступа (только менеджер студии)
	if !s.isManager(studio, req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of studio=%d", req.UserID, config.StudioID)
		return nil, ErrAccessDenied
	}

	// 5. Применяем обновления к оригинальной конфигурации
	req.ApplyToConfig(config)

	// 6. Обновляем конфигурацию в БД
	updatedConfig, err := s.configRepo.Update(ctx, id, config)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found during update", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config id=%d", id)
	return models.FromDomainConfig(updatedConfig), nil
}

// Delete удаляет конфигурацию по ID
// Доступно только менеджерам студии
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting config id=%d by user=%d", id, userID)

	// 1. Получаем конфигурацию для проверки прав доступа
	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found", id)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// 2. Получаем студию для проверки прав доступа
	studio, err := s.studioClient.GetStudio(ctx, config.StudioID)
	if err != nil {
		if errors.Is(err, studioClient.ErrStudioNotFound) {
			s.logger.Warn("Delete: studio id=%d not found", config.StudioID)
			return ErrStudioNotFound
		}
		s.logger.Error("Delete: failed to get studio id=%d: %v", config.StudioID, err)
		return fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер студии)
	if !s.isManager(studio, userID) {
		s.logger.Warn("Delete: user=%d is not a manager of studio=%d", userID, config.StudioID)
		return ErrAccessDenied
	}

	// 4. Удаляем конфигурацию
	if err := s.configRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found during deletion", id)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", id)
	return nil
}

// Вспомогательные методы

// isManager проверяет, что пользователь входит в список менеджеров студии
func (s *Service) isManager(studio *studioClient.Studio, userID int64) bool {
	for _, managerID := range studio.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// validateConfigData валидирует бизнес-правила конфигурации расписания
func (s *Service) validateConfigData(config *domain.ScheduleConfig) error {
	startMinutes, err := config.OperatingStartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid operating start time %q", ErrInvalidInput, config.OperatingStartTime)
	}
	endMinutes, err := config.OperatingEndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid operating end time %q", ErrInvalidInput, config.OperatingEndTime)
	}

	// Окно работы не может переходить через полночь
	if startMinutes >= endMinutes {
		return fmt.Errorf("%w: operating start time must be before end time", ErrInvalidInput)
	}

	if config.SlotGapMinutes < domain.MinSlotGapMinutes || config.SlotGapMinutes > domain.MaxSlotGapMinutes {
		return fmt.Errorf("%w: slot gap must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotGapMinutes, domain.MaxSlotGapMinutes)
	}

	if config.SessionDurationMinutes != nil {
		duration := *config.SessionDurationMinutes
		if duration < domain.MinSessionDurationMinutes || duration > domain.MaxSessionDurationMinutes {
			return fmt.Errorf("%w: session duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
		}
	}

	// Канонизируем формат времени (например "9:00" не допускается)
	if err := validateCanonicalTime(config.OperatingStartTime); err != nil {
		return err
	}
	if err := validateCanonicalTime(config.OperatingEndTime); err != nil {
		return err
	}

	return nil
}

func validateCanonicalTime(t types.TimeString) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	}
	return nil
}
