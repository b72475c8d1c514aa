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

	bookingsHandler "github.com/m04kA/SMC-ShopAdmin/internal/api/handlers/bookings"
	contactHandler "github.com/m04kA/SMC-ShopAdmin/internal/api/handlers/contact"
	dashboardHandler "github.com/m04kA/SMC-ShopAdmin/internal/api/handlers/dashboard"
	paymentsHandler "github.com/m04kA/SMC-ShopAdmin/internal/api/handlers/payments"
	servicesHandler "github.com/m04kA/SMC-ShopAdmin/internal/api/handlers/services"
	usersHandler "github.com/m04kA/SMC-ShopAdmin/internal/api/handlers/users"
	"github.com/m04kA/SMC-ShopAdmin/internal/api/middleware"
	"github.com/m04kA/SMC-ShopAdmin/internal/config"
	dashboardCache "github.com/m04kA/SMC-ShopAdmin/internal/infra/cache/dashboard"
	"github.com/m04kA/SMC-ShopAdmin/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/payment"
	serviceRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/service"
	statsRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/stats"
	userRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/user"
	"github.com/m04kA/SMC-ShopAdmin/internal/integrations/semaphore"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookingcode"
	bookingsService "github.com/m04kA/SMC-ShopAdmin/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-ShopAdmin/internal/service/catalog"
	notificationsService "github.com/m04kA/SMC-ShopAdmin/internal/service/notifications"
	paymentsService "github.com/m04kA/SMC-ShopAdmin/internal/service/payments"
	usersService "github.com/m04kA/SMC-ShopAdmin/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-ShopAdmin/internal/usecase/create_booking"
	getDashboardUC "github.com/m04kA/SMC-ShopAdmin/internal/usecase/get_dashboard"
	"github.com/m04kA/SMC-ShopAdmin/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopAdmin/pkg/logger"
	"github.com/m04kA/SMC-ShopAdmin/pkg/metrics"
	"github.com/m04kA/SMC-ShopAdmin/pkg/txmanager"
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

	log.Info("Starting SMC-ShopAdmin...")
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

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	statsRepository := statsRepo.NewRepository(wrappedDB)

	// Кэш дашборда (опционально)
	var cache getDashboardUC.Cache
	var redisCache *dashboardCache.Cache
	if cfg.Redis.Enabled {
		redisCache = dashboardCache.NewCache(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.DashboardTTL)*time.Second,
		)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn("Redis is unavailable, dashboard cache disabled: %v", err)
			_ = redisCache.Close()
			redisCache = nil
		} else {
			cache = redisCache
			log.Info("Dashboard cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.DashboardTTL)
		}
		cancel()
	}

	// Публикация событий бронирований (опционально)
	var publisher notificationsService.EventPublisher
	var producer *events.Producer
	if cfg.Kafka.Enabled {
		producer = events.NewProducer(
			cfg.Kafka.Brokers,
			cfg.Kafka.BookingTopic,
			time.Duration(cfg.Kafka.PublishTimeout)*time.Second,
		)
		publisher = producer
		log.Info("Booking events enabled (brokers=%v, topic=%s, timeout=%ds)", cfg.Kafka.Brokers, cfg.Kafka.BookingTopic, cfg.Kafka.PublishTimeout)
	}

	// SMS шлюз (опционально)
	var smsSender notificationsService.SMSSender
	if cfg.SMS.Enabled {
		smsSender = semaphore.NewClient(
			cfg.SMS.BaseURL,
			cfg.SMS.APIKey,
			cfg.SMS.SenderName,
			time.Duration(cfg.SMS.Timeout)*time.Second,
			log,
		)
		log.Info("SMS notifications enabled (base_url=%s, sender=%s)", cfg.SMS.BaseURL, cfg.SMS.SenderName)
	}

	// Инициализируем сервисы
	notifier := notificationsService.NewService(
		smsSender,
		publisher,
		userRepository,
		metricsCollector,
		notificationsService.Config{
			FallbackNumber: cfg.SMS.FallbackNumber,
			Signature:      cfg.SMS.Signature,
		},
		log,
	)
	codeAllocator := bookingcode.NewService(bookingRepository, cfg.Booking.CodeMaxAttempts, log)
	userSvc := usersService.NewService(userRepository, usersService.NewBcryptHasher(0), log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, notifier, txMgr, log)
	paymentSvc := paymentsService.NewService(paymentRepository, bookingRepository, notifier, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		codeAllocator,
		notifier,
		txMgr,
		log,
	)
	getDashboardUseCase := getDashboardUC.NewUseCase(
		bookingRepository,
		statsRepository,
		cache,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	users := usersHandler.NewHandler(userSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	bookings := bookingsHandler.NewHandler(bookingSvc, createBookingUseCase, log)
	payments := paymentsHandler.NewHandler(paymentSvc, log)
	dashboard := dashboardHandler.NewHandler(getDashboardUseCase, log)
	contact := contactHandler.NewHandler(notifier, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/contact", contact.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Клиент ---
	protected.HandleFunc("/bookings/book-now", bookings.BookNow).Methods(http.MethodPost)
	protected.HandleFunc("/me/bookings", bookings.MyBookings).Methods(http.MethodGet)
	protected.HandleFunc("/me/bookings/{id}/cancel", bookings.Cancel).Methods(http.MethodPatch)
	protected.HandleFunc("/me/profile", users.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/me/profile", users.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/services/select", services.Options).Methods(http.MethodGet)
	protected.HandleFunc("/payments", payments.Submit).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-ID администратора)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(userSvc, log))

	// --- Дашборд ---
	admin.HandleFunc("/dashboard", dashboard.Summary).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/report", dashboard.Report).Methods(http.MethodGet)

	// --- Пользователи ---
	admin.HandleFunc("/users", users.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/select", users.Options).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}", users.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}", users.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id:[0-9]+}", users.Delete).Methods(http.MethodDelete)

	// --- Услуги ---
	admin.HandleFunc("/services", services.List).Methods(http.MethodGet)
	admin.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id:[0-9]+}", services.Get).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id:[0-9]+}", services.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id:[0-9]+}", services.Delete).Methods(http.MethodDelete)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}", bookings.Get).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}", bookings.Update).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{id:[0-9]+}", bookings.Delete).Methods(http.MethodDelete)

	// --- Оплаты ---
	admin.HandleFunc("/payments", payments.List).Methods(http.MethodGet)
	admin.HandleFunc("/payments", payments.Create).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id:[0-9]+}", payments.Get).Methods(http.MethodGet)
	admin.HandleFunc("/payments/{id:[0-9]+}", payments.Update).Methods(http.MethodPut)
	admin.HandleFunc("/payments/{id:[0-9]+}", payments.Delete).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close kafka producer: %v", err)
		}
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
