package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignPhotographerHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/assign_photographer"
	cancelBookingHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/create_booking"
	deleteStudioConfigHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/delete_studio_config"
	getAvailableSlotsHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/get_customer_bookings"
	getStudioBookingsHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/get_studio_bookings"
	getStudioConfigHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/get_studio_config"
	rescheduleBookingHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/update_booking_status"
	updateStudioConfigHandler "github.com/framehaus/StudioBookingService/internal/api/handlers/update_studio_config"
	"github.com/framehaus/StudioBookingService/internal/api/middleware"
	"github.com/framehaus/StudioBookingService/internal/config"
	bookingRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/booking"
	configRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/scheduleconfig"
	studioServiceClient "github.com/framehaus/StudioBookingService/internal/integrations/studioservice"
	bookingsService "github.com/framehaus/StudioBookingService/internal/service/bookings"
	configService "github.com/framehaus/StudioBookingService/internal/service/scheduleconfig"
	createBookingUC "github.com/framehaus/StudioBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/framehaus/StudioBookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/framehaus/StudioBookingService/internal/usecase/reschedule_booking"
	"github.com/framehaus/StudioBookingService/pkg/dbmetrics"
	"github.com/framehaus/StudioBookingService/pkg/logger"
	"github.com/framehaus/StudioBookingService/pkg/metrics"
	"github.com/framehaus/StudioBookingService/pkg/simpletxmanager"
	"github.com/framehaus/StudioBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting StudioBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента StudioService
	studioClient := studioServiceClient.NewClient(
		cfg.StudioService.URL,
		time.Duration(cfg.StudioService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StudioService=%s timeout=%ds)",
		cfg.StudioService.URL, cfg.StudioService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		configRepository  *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		studioClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		studioClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		studioClient,
		txMgr,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		studioClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		configRepository,
		studioClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	assignPhotographer := assignPhotographerHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getStudioBookings := getStudioBookingsHandler.NewHandler(bookingSvc, log)
	getStudioConfig := getStudioConfigHandler.NewHandler(configSvc, log)
	updateStudioConfig := updateStudioConfigHandler.NewHandler(configSvc, log)
	deleteStudioConfig := deleteStudioConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов зала на день (параметр excludeBookingId включает режим переноса)
	api.HandleFunc("/studios/{studioId}/layouts/{layoutId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования на другой слот
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (менеджер студии)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Назначение фотографа на бронирование (менеджер студии)
	protected.HandleFunc("/bookings/{bookingId}/photographer", assignPhotographer.Handle).Methods(http.MethodPatch)

	// --- Управление студией (для менеджеров) ---
	// Список бронирований студии
	protected.HandleFunc("/studios/{studioId}/bookings", getStudioBookings.Handle).Methods(http.MethodGet)

	// Конфигурации расписания студии
	protected.HandleFunc("/studios/{studioId}/schedule-config", getStudioConfig.Handle).Methods(http.MethodGet)

	// Создание/обновление конфигурации расписания
	protected.HandleFunc("/studios/{studioId}/schedule-config", updateStudioConfig.Handle).Methods(http.MethodPut)

	// Удаление конфигурации расписания
	protected.HandleFunc("/schedule-configs/{configId}", deleteStudioConfig.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
