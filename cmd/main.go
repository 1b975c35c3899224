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
	"github.com/redis/go-redis/v9"

	adminDeleteBookingHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/admin_delete_booking"
	adminListBookingsHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/admin_list_bookings"
	adminUpdateBookingHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/admin_update_booking"
	confirmBookingHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/decline_booking"
	expireBookingsHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/expire_bookings"
	getBookingHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/get_booking"
	getSettingsHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/get_settings"
	getSlotsHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/get_slots"
	streamBookingsHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/stream_bookings"
	updateSettingHandler "github.com/m04kA/SMC-RitualService/internal/api/handlers/update_setting"
	"github.com/m04kA/SMC-RitualService/internal/api/middleware"
	"github.com/m04kA/SMC-RitualService/internal/config"
	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-RitualService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-RitualService/internal/infra/storage/settings"
	identityServiceClient "github.com/m04kA/SMC-RitualService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-RitualService/internal/integrations/whatsapp"
	bookingsService "github.com/m04kA/SMC-RitualService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-RitualService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-RitualService/internal/usecase/create_booking"
	expireBookingsUC "github.com/m04kA/SMC-RitualService/internal/usecase/expire_bookings"
	resolveSlotsUC "github.com/m04kA/SMC-RitualService/internal/usecase/resolve_slots"
	"github.com/m04kA/SMC-RitualService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RitualService/pkg/logger"
	"github.com/m04kA/SMC-RitualService/pkg/metrics"
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

	log.Info("Starting SMC-RitualService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Подключаемся к Redis (канал уведомлений об изменениях бронирований)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	publisher := events.NewPublisher(redisClient)
	subscriber := events.NewSubscriber(redisClient)

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	expiryWindow := time.Duration(cfg.Booking.ExpiryWindowMinutes) * time.Minute
	composer := whatsapp.NewComposer(
		cfg.Booking.BusinessPhone,
		cfg.Booking.ConfirmBaseURL,
		cfg.Booking.PaymentPageURL,
		expiryWindow,
	)
	notifier := whatsapp.NewClient(
		cfg.WhatsApp.Token,
		cfg.WhatsApp.PhoneID,
		time.Duration(cfg.WhatsApp.Timeout)*time.Second,
		log,
	)
	if notifier.Configured() {
		log.Info("WhatsApp Cloud API notifications enabled")
	} else {
		log.Info("WhatsApp Cloud API notifications disabled (no token), deep links only")
	}

	// Каталог слотов задаётся конфигурацией деплоймента
	catalog := slotCatalog(cfg.Booking.Slots)
	log.Info("Slot catalog loaded: %d slots, expiry window %s", len(catalog), expiryWindow)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		settingsRepository,
		identityClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		identityClient,
		publisher,
		notifier,
		composer,
		catalog,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		publisher,
		composer,
		catalog,
		metricsCollector,
		log,
	)
	resolveSlotsUseCase := resolveSlotsUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		catalog,
		log,
	)
	expireBookingsUseCase := expireBookingsUC.NewUseCase(
		bookingRepository,
		publisher,
		expiryWindow,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getSlots := getSlotsHandler.NewHandler(resolveSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	expireBookings := expireBookingsHandler.NewHandler(expireBookingsUseCase, log)
	streamBookings := streamBookingsHandler.NewHandler(subscriber, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	adminListBookings := adminListBookingsHandler.NewHandler(bookingSvc, log)
	adminUpdateBooking := adminUpdateBookingHandler.NewHandler(bookingSvc, log)
	adminDeleteBooking := adminDeleteBookingHandler.NewHandler(bookingSvc, log)
	updateSetting := updateSettingHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Статусы слотов на дату и SSE-поток изменений
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/stream", streamBookings.Handle).Methods(http.MethodGet)

	// Настройки системы бронирования (гейт для фронтенда)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// Создание бронирования (аутентификация опциональна)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Идемпотентный запуск sweeper-а (клиентский триггер по истечении отсчёта)
	api.HandleFunc("/bookings/expire", expireBookings.Handle).Methods(http.MethodPost)

	// Capability-операции: знание ID бронирования и есть право на действие
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/decline", declineBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID header; роль проверяет сервис)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)

	admin.HandleFunc("/bookings", adminListBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", adminUpdateBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}", adminDeleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/settings/{key}", updateSetting.Handle).Methods(http.MethodPut)

	// Фоновый sweep: клиентский триггер не обязателен, сервер сам
	// переводит просроченные pending-записи в expired
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runSweepLoop(sweepCtx, expireBookingsUseCase, cfg.Booking.SweepIntervalSec, log)

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

	stopSweep()

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

// slotCatalog конвертирует конфигурацию слотов в domain-каталог
func slotCatalog(slots []config.SlotConfig) []domain.Slot {
	catalog := make([]domain.Slot, len(slots))
	for i, s := range slots {
		catalog[i] = domain.Slot{
			Key:   s.Key,
			Label: s.Label,
			Time:  s.Time,
		}
	}
	return catalog
}

// runSweepLoop периодически запускает sweeper просроченных pending-записей
func runSweepLoop(ctx context.Context, uc *expireBookingsUC.UseCase, intervalSec int, log *logger.Logger) {
	if intervalSec <= 0 {
		log.Warn("Sweep loop disabled: sweep_interval_sec=%d", intervalSec)
		return
	}

	interval := time.Duration(intervalSec) * time.Second
	log.Info("Sweep loop started with interval %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Sweep loop stopped")
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				log.Error("Sweep loop: run failed: %v", err)
			}
		}
	}
}
