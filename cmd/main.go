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
	"github.com/robfig/cron/v3"

	changeBookingStatusHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/change_booking_status"
	checkAvailabilityHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/create_booking"
	extendBookingHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/extend_booking"
	getBookingHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/get_schedule"
	getScheduleConfigHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/get_schedule_config"
	issueBookingHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/issue_booking"
	listBookingsHandler "github.com/m04kA/SMC-RentalSchedule/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-RentalSchedule/internal/api/middleware"
	"github.com/m04kA/SMC-RentalSchedule/internal/config"
	bookingRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/resource"
	"github.com/m04kA/SMC-RentalSchedule/internal/jobs"
	bookingsService "github.com/m04kA/SMC-RentalSchedule/internal/service/bookings"
	checkAvailabilityUC "github.com/m04kA/SMC-RentalSchedule/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-RentalSchedule/internal/usecase/create_booking"
	extendBookingUC "github.com/m04kA/SMC-RentalSchedule/internal/usecase/extend_booking"
	getScheduleUC "github.com/m04kA/SMC-RentalSchedule/internal/usecase/get_schedule"
	issueBookingUC "github.com/m04kA/SMC-RentalSchedule/internal/usecase/issue_booking"
	"github.com/m04kA/SMC-RentalSchedule/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalSchedule/pkg/logger"
	"github.com/m04kA/SMC-RentalSchedule/pkg/metrics"
	"github.com/m04kA/SMC-RentalSchedule/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-RentalSchedule...")
	log.Info("Configuration loaded from %s", configPath)

	scheduleCfg, err := cfg.Schedule.Domain()
	if err != nil {
		log.Fatal("Invalid schedule config: %v", err)
	}
	loc := scheduleCfg.Loc()
	log.Info("Schedule: %d-%d min, slot=%d min, tz=%s",
		scheduleCfg.WorkStartMinute, scheduleCfg.WorkEndMinute, scheduleCfg.SlotMinutes, loc)

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории и сервисы
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	resourceRepository := resourceRepo.NewRepository(wrappedDB)

	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)

	// Инициализируем use cases
	getScheduleUseCase := getScheduleUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		scheduleCfg,
		cfg.Schedule.MaxRangeDays,
		metricsCollector,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		loc,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		txMgr,
		loc,
		metricsCollector,
		log,
	)
	extendBookingUseCase := extendBookingUC.NewUseCase(bookingRepository, txMgr, loc, metricsCollector, log)
	issueBookingUseCase := issueBookingUC.NewUseCase(bookingRepository, txMgr, loc, metricsCollector, log)

	// Инициализируем handlers
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, loc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleCfg, cfg.Schedule.MaxRangeDays, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, loc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	extendBooking := extendBookingHandler.NewHandler(extendBookingUseCase, log)
	issueBooking := issueBookingHandler.NewHandler(issueBookingUseCase, log)
	reserveBooking := changeBookingStatusHandler.NewHandler(bookingSvc, changeBookingStatusHandler.ActionReserve, log)
	returnBooking := changeBookingStatusHandler.NewHandler(bookingSvc, changeBookingStatusHandler.ActionReturn, log)
	cancelBooking := changeBookingStatusHandler.NewHandler(bookingSvc, changeBookingStatusHandler.ActionCancel, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.MetricsMiddleware(metricsCollector))

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

	// Сетка занятости одного или нескольких ресурсов
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Рабочие часы и шаг сетки
	api.HandleFunc("/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)

	// Проверка доступности интервала
	api.HandleFunc("/resources/{resourceId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Список и карточка бронирования
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирований (одно на каждый ресурс)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Жизненный цикл аренды
	protected.HandleFunc("/bookings/{bookingId}/reserve", reserveBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/issue", issueBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/extend", extendBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/return", returnBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	handler := middleware.Recovery(log)(middleware.CORS(cfg.CORS.AllowedOrigins)(r))

	// Фоновая отмена забытых черновиков
	scheduler := cron.New(cron.WithLocation(loc))
	if cfg.Jobs.DraftCleanupEnabled {
		draftCleanup := jobs.NewDraftCleanup(
			bookingRepository,
			time.Duration(cfg.Jobs.DraftTTLMinutes)*time.Minute,
			metricsCollector,
			log,
		)
		if _, err := draftCleanup.Schedule(scheduler, cfg.Jobs.DraftCleanupCron); err != nil {
			log.Fatal("Failed to schedule draft cleanup: %v", err)
		}
		scheduler.Start()
		log.Info("Draft cleanup scheduled (%s, ttl=%d min)", cfg.Jobs.DraftCleanupCron, cfg.Jobs.DraftTTLMinutes)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Дожидаемся текущей очистки черновиков
	<-scheduler.Stop().Done()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
