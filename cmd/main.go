package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	authSignInHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/auth_sign_in"
	authSignUpHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/auth_sign_up"
	createCourtBlockHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_court_block"
	createReservationHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_reservation"
	deleteCourtBlockHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/delete_court_block"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_available_slots"
	getCheckoutHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_checkout"
	getContactLinkHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_contact_link"
	getPublicSettingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_public_settings"
	getReservationHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_schedule"
	getSettingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_settings"
	getStatsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_stats"
	getVenueHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_venue"
	getWeekAvailabilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_week_availability"
	listCourtBlocksHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_court_blocks"
	listCourtsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_courts"
	listPaymentProofsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_payment_proofs"
	listReservationsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_reservations"
	listVenuesHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_venues"
	submitPaymentProofHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/submit_payment_proof"
	updateReservationStatusHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/update_reservation_status"
	updateSettingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/config"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/cache"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/migrations"
	catalogRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/catalog"
	courtBlockRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/courtblock"
	paymentProofRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/paymentproof"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	roleRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/role"
	settingsRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"
	blocksService "github.com/m04kA/SMC-CourtBooking/internal/service/blocks"
	catalogService "github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
	reservationsService "github.com/m04kA/SMC-CourtBooking/internal/service/reservations"
	settingsService "github.com/m04kA/SMC-CourtBooking/internal/service/settings"
	createReservationUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
	getCheckoutUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_checkout"
	"github.com/m04kA/SMC-CourtBooking/internal/worker/holdreaper"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-CourtBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, _ := cfg.Booking.Location() // проверено в config.Validate

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

	if cfg.Database.AutoMigrate {
		if err := migrations.NewRunner(db, log).Up(); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка над БД: без метрик запросы не наблюдаются, но API одинаковый
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: кэш каталога, лимит создания бронирований и идемпотентность
	var (
		catalogCache *cache.Cache
		limiter      createReservationUC.RateLimiter
		idempotency  createReservationUC.IdempotencyStore
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewClient(context.Background(), cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		catalogCache = cache.New(redisClient, metricsCollector)
		if cfg.Redis.RateLimitPerMinute > 0 {
			limiter = cache.NewSlidingWindowLimiter(redisClient, "reservations", time.Minute, cfg.Redis.RateLimitPerMinute)
		}
		idempotency = cache.NewIdempotencyStore(redisClient, "reservations",
			time.Duration(cfg.Redis.IdempotencyTTLSeconds)*time.Second)

		log.Info("Redis connected (addr=%s, catalog_ttl=%ds, rate_limit=%d/min)",
			cfg.Redis.Addr, cfg.Redis.CatalogTTLSeconds, cfg.Redis.RateLimitPerMinute)
	} else {
		log.Warn("Redis disabled: catalog cache, rate limiting and idempotency are off")
	}

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	paymentProofRepository := paymentProofRepo.NewRepository(wrappedDB)
	courtBlockRepository := courtBlockRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	roleRepository := roleRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		catalogRepository,
		catalogCache,
		time.Duration(cfg.Redis.CatalogTTLSeconds)*time.Second,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		paymentProofRepository,
		txMgr,
		location,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		catalogSvc,
		txMgr,
		settingsService.ContactDefaults{
			WhatsApp: cfg.Contact.DefaultWhatsApp,
			Message:  cfg.Contact.DefaultMessage,
		},
		log,
	)
	blocksSvc := blocksService.NewService(courtBlockRepository, catalogSvc, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogSvc,
		reservationRepository,
		courtBlockRepository,
		location,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		catalogSvc,
		reservationRepository,
		limiter,
		idempotency,
		metricsCollector,
		createReservationUC.Options{
			HoldDuration: cfg.Booking.HoldDuration(),
			Location:     location,
		},
		log,
	)
	getCheckoutUseCase := getCheckoutUC.NewUseCase(
		reservationRepository,
		catalogSvc,
		settingsSvc,
		cfg.Booking.DefaultPaymentLink,
		log,
	)

	// Инициализируем интеграционных клиентов
	authClient := authprovider.NewClient(
		cfg.Auth.ProviderURL,
		cfg.Auth.ProviderAPIKey,
		time.Duration(cfg.Auth.Timeout)*time.Second,
		log,
	)

	// Инициализируем handlers
	listVenues := listVenuesHandler.NewHandler(catalogSvc, log)
	getVenue := getVenueHandler.NewHandler(catalogSvc, log)
	listCourts := listCourtsHandler.NewHandler(catalogSvc, log)
	getSchedule := getScheduleHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getWeekAvailability := getWeekAvailabilityHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getCheckout := getCheckoutHandler.NewHandler(getCheckoutUseCase, log)
	submitPaymentProof := submitPaymentProofHandler.NewHandler(reservationsSvc, log)
	getPublicSettings := getPublicSettingsHandler.NewHandler(settingsSvc, log)
	getContactLink := getContactLinkHandler.NewHandler(settingsSvc, log)
	authSignIn := authSignInHandler.NewHandler(authClient, log)
	authSignUp := authSignUpHandler.NewHandler(authClient, log)

	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	listPaymentProofs := listPaymentProofsHandler.NewHandler(reservationsSvc, log)
	getStats := getStatsHandler.NewHandler(reservationsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	listCourtBlocks := listCourtBlocksHandler.NewHandler(blocksSvc, log)
	createCourtBlock := createCourtBlockHandler.NewHandler(blocksSvc, log)
	deleteCourtBlock := deleteCourtBlockHandler.NewHandler(blocksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Адрес клиента для лимита запросов: заголовки прокси принимаются только от доверенных адресов
	trustedProxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal("Invalid server.trusted_proxies: %v", err)
	}
	r.Use(middleware.RealIP(trustedProxies))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/venues", listVenues.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}", getVenue.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/courts", listCourts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/venues/{venueId}/courts/{courtId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/courts/{courtId}/availability", getWeekAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирование и оплата ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}/checkout", getCheckout.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/payment-proofs", submitPaymentProof.Handle).Methods(http.MethodPost)

	// --- Настройки и контакт ---
	api.HandleFunc("/settings", getPublicSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/contact/whatsapp", getContactLink.Handle).Methods(http.MethodGet)

	// --- Аутентификация ---
	api.HandleFunc("/auth/sign-in", authSignIn.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/sign-up", authSignUp.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT + роль admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, log))
	admin.Use(middleware.RequireRole(roleRepository, domain.RoleAdmin, log))

	admin.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{reservationId}/payment-proofs", listPaymentProofs.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	admin.HandleFunc("/courts/{courtId}/blocks", listCourtBlocks.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/courts/{courtId}/blocks", createCourtBlock.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocks/{blockId}", deleteCourtBlock.Handle).Methods(http.MethodDelete)

	// Статика SPA: неизвестные пути отдают index.html
	if cfg.Server.StaticDir != "" {
		r.PathPrefix("/").Handler(spaHandler(cfg.Server.StaticDir)).Methods(http.MethodGet)
		log.Info("Serving static files from %s", cfg.Server.StaticDir)
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
	}).Handler(r)

	// Фоновое освобождение просроченных удержаний
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	reaperDone := make(chan struct{})
	if cfg.Booking.ReaperEnabled {
		reaper := holdreaper.New(reservationRepository, metricsCollector, holdreaper.Options{
			Interval:       time.Duration(cfg.Booking.ReaperIntervalSeconds) * time.Second,
			ReleasePending: cfg.Booking.ReaperReleasePending,
		}, log)
		go func() {
			defer close(reaperDone)
			reaper.Run(workerCtx)
		}()
	} else {
		close(reaperDone)
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

	stopWorkers()
	<-reaperDone

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

// spaHandler отдает файлы из dir, а для отсутствующих путей index.html
func spaHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, index)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
