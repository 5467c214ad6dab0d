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

	createAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_available_slots"
	getBarberAbsencesHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_barber_absences"
	getBarberAgendaHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_barber_agenda"
	getBarberHistoryHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_barber_history"
	getClientAppointmentsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_client_appointments"
	getClosureCalendarHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_closure_calendar"
	getWorkingHoursHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_working_hours"
	healthHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/health"
	listBarbersHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_barbers"
	listServicesHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_services"
	registerAbsenceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/register_absence"
	removeAbsenceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/remove_absence"
	replaceWorkingHoursHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/replace_working_hours"
	updateStatusHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/config"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	slotCache "github.com/m04kA/SMC-BarberService/internal/infra/cache/slots"
	absenceRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/absence"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/migrations"
	scheduleRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/schedule"
	userServiceClient "github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	absencesService "github.com/m04kA/SMC-BarberService/internal/service/absences"
	appointmentsService "github.com/m04kA/SMC-BarberService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BarberService/internal/service/catalog"
	scheduleService "github.com/m04kA/SMC-BarberService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
	getClosureCalendarUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_closure_calendar"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// slotCacheBackend кеш слотов: Redis или заглушка
type slotCacheBackend interface {
	Get(ctx context.Context, date time.Time, serviceID, barberID int64) ([]string, slotCache.Version, bool, error)
	Set(ctx context.Context, date time.Time, serviceID, barberID int64, version slotCache.Version, slots []string) error
	Invalidate(ctx context.Context, date time.Time) error
	InvalidateAll(ctx context.Context) error
}

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

	log.Info("Starting SMC-BarberService...")
	log.Info("Configuration loaded from %s", configPath)

	shop, err := shopHours(cfg.Shop)
	if err != nil {
		log.Fatal("Invalid shop configuration: %v", err)
	}
	log.Info("Shop hours %s-%s (%s), slot step %s", shop.Open, shop.Close, shop.Location, shop.SlotStep)

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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	if cfg.Database.RunMigrations {
		if err := migrations.Run(context.Background(), wrappedDB, txMgr, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	absenceRepository := absenceRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Кеш слотов
	var cache slotCacheBackend = slotCache.Noop{}
	if cfg.Cache.Enabled {
		redisClient := slotCache.NewRedisClient(context.Background(), cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, log)
		defer redisClient.Close()
		cache = slotCache.NewCache(redisClient, time.Duration(cfg.Cache.TTLSeconds)*time.Second, metricsCollector, log)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		userClient,
		cache,
		txMgr,
		shop,
		time.Duration(cfg.Shop.CancellationLeadHours)*time.Hour,
		cfg.History.PageSize,
		log,
	)
	absenceSvc := absencesService.NewService(absenceRepository, catalogRepository, cache, shop, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, catalogRepository, cache, txMgr, shop.SlotStep, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		absenceRepository,
		scheduleRepository,
		appointmentRepository,
		cache,
		shop,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		catalogRepository,
		absenceRepository,
		scheduleRepository,
		appointmentRepository,
		cache,
		metricsCollector,
		txMgr,
		shop,
		domain.AppointmentStatus(cfg.Booking.DefaultStatus),
		log,
	)
	getClosureCalendarUseCase := getClosureCalendarUC.NewUseCase(
		absenceRepository,
		catalogRepository,
		shop,
		cfg.Closures.LookbackDays,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listBarbers := listBarbersHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, shop.Location, log)
	getClosureCalendar := getClosureCalendarHandler.NewHandler(getClosureCalendarUseCase, shop.Location, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, shop.Location, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := updateStatusHandler.NewHandler(appointmentSvc, updateStatusHandler.ActionCancel, log)
	completeAppointment := updateStatusHandler.NewHandler(appointmentSvc, updateStatusHandler.ActionComplete, log)
	confirmAppointment := updateStatusHandler.NewHandler(appointmentSvc, updateStatusHandler.ActionConfirm, log)
	markNoShow := updateStatusHandler.NewHandler(appointmentSvc, updateStatusHandler.ActionNoShow, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBarberAgenda := getBarberAgendaHandler.NewHandler(appointmentSvc, shop.Location, log)
	getBarberHistory := getBarberHistoryHandler.NewHandler(appointmentSvc, log)
	getBarberAbsences := getBarberAbsencesHandler.NewHandler(absenceSvc, shop.Location, log)
	registerAbsence := registerAbsenceHandler.NewHandler(absenceSvc, log)
	removeAbsence := removeAbsenceHandler.NewHandler(absenceSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	replaceWorkingHours := replaceWorkingHoursHandler.NewHandler(scheduleSvc, log)
	health := healthHandler.NewHandler(db, 2*time.Second, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/closures", getClosureCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи клиентов ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Рабочее место барбера ---
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/barbers/{barberId}/agenda", getBarberAgenda.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId}/history", getBarberHistory.Handle).Methods(http.MethodGet)

	// --- Отсутствия и расписание ---
	protected.HandleFunc("/barbers/{barberId}/absences", getBarberAbsences.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId}/absences", registerAbsence.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/absences/{absenceId}", removeAbsence.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/barbers/{barberId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId}/working-hours", replaceWorkingHours.Handle).Methods(http.MethodPut)

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

	log.Info("Server stopped gracefully")
}

// shopHours собирает часы работы барбершопа из конфигурации
func shopHours(cfg config.ShopConfig) (domain.ShopHours, error) {
	loc, err := cfg.Location()
	if err != nil {
		return domain.ShopHours{}, err
	}
	open, err := types.NewTimeStringFromString(cfg.OpenTime)
	if err != nil {
		return domain.ShopHours{}, err
	}
	closeTime, err := types.NewTimeStringFromString(cfg.CloseTime)
	if err != nil {
		return domain.ShopHours{}, err
	}

	return domain.ShopHours{
		Open:     open,
		Close:    closeTime,
		Location: loc,
		SlotStep: time.Duration(cfg.SlotStepMinutes) * time.Minute,
	}, nil
}
