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

	bookAppointmentHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/book_appointment"
	createLeadHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/create_lead"
	getAvailableSlotsHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/get_available_slots"
	getLeadHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/get_lead"
	getSummaryHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/get_summary"
	healthHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/health"
	listLeadsHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/list_leads"
	updateLeadHandler "github.com/jals-dev/JALS-LeadService/internal/api/handlers/update_lead"
	"github.com/jals-dev/JALS-LeadService/internal/api/middleware"
	"github.com/jals-dev/JALS-LeadService/internal/config"
	leadRepo "github.com/jals-dev/JALS-LeadService/internal/infra/storage/lead"
	"github.com/jals-dev/JALS-LeadService/internal/integrations/mailer"
	"github.com/jals-dev/JALS-LeadService/internal/integrations/smsgateway"
	"github.com/jals-dev/JALS-LeadService/internal/scheduler/reminder"
	leadsService "github.com/jals-dev/JALS-LeadService/internal/service/leads"
	"github.com/jals-dev/JALS-LeadService/internal/service/notifications"
	bookAppointmentUC "github.com/jals-dev/JALS-LeadService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/jals-dev/JALS-LeadService/internal/usecase/get_available_slots"
	"github.com/jals-dev/JALS-LeadService/pkg/logger"
	"github.com/jals-dev/JALS-LeadService/pkg/metrics"
	"github.com/jals-dev/JALS-LeadService/pkg/phone"
	"github.com/jals-dev/JALS-LeadService/pkg/txmanager"
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

	log.Info("Starting JALS-LeadService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем репозиторий и транзакционный менеджер
	leadRepository := leadRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Нормализатор телефонов
	phones := phone.NewNormalizer(cfg.Booking.DefaultCountry)

	// Каналы уведомлений: выключенный канал остается nil
	dispatchTimeout := time.Duration(cfg.Reminder.DispatchTimeoutSeconds) * time.Second

	var mailSender notifications.EmailSender
	if cfg.Mail.Enabled() {
		mailSender = mailer.NewClient(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
			cfg.Mail.FromName, cfg.Mail.FromEmail,
			log,
		)
		log.Info("Email channel enabled (host=%s, from=%s)", cfg.Mail.Host, cfg.Mail.FromEmail)
	} else {
		log.Warn("Email channel disabled: smtp host not configured")
	}

	var smsSender notifications.SMSSender
	if cfg.Twilio.Enabled() {
		smsSender = smsgateway.NewClient(
			cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber,
			dispatchTimeout,
			log,
		)
		log.Info("SMS channel enabled (from=%s)", cfg.Twilio.FromNumber)
	} else {
		log.Warn("SMS channel disabled: twilio credentials not configured")
	}

	notifSvc := notifications.NewService(
		mailSender,
		smsSender,
		cfg.Admin.Email,
		cfg.Mail.LeadAutoreply,
		cfg.Booking.CalendarTimezone,
		dispatchTimeout,
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	leadsSvc := leadsService.NewService(leadRepository, phones, notifSvc, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase, err := getAvailableSlotsUC.NewUseCase(
		leadRepository,
		getAvailableSlotsUC.Settings{
			CalendarTimezone:    cfg.Booking.CalendarTimezone,
			WorkDayStartHour:    cfg.Booking.WorkDayStartHour,
			WorkDayEndHour:      cfg.Booking.WorkDayEndHour,
			SlotIntervalMinutes: cfg.Booking.SlotIntervalMinutes,
			ConsultationMinutes: cfg.Booking.ConsultationMinutes,
		},
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize slots use case: %v", err)
	}

	bookAppointmentUseCase, err := bookAppointmentUC.NewUseCase(
		leadRepository,
		phones,
		notifSvc,
		txMgr,
		bookAppointmentUC.Settings{
			CalendarTimezone: cfg.Booking.CalendarTimezone,
		},
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize booking use case: %v", err)
	}

	// Запускаем цикл напоминаний
	scannerCtx, stopScanner := context.WithCancel(context.Background())
	defer stopScanner()

	reminderScanner := reminder.NewScanner(
		leadRepository,
		notifSvc,
		time.Duration(cfg.Reminder.PollIntervalMinutes)*time.Minute,
		time.Duration(cfg.Reminder.WindowToleranceMinutes)*time.Minute,
		log,
	)
	go reminderScanner.Run(scannerCtx)

	// Инициализируем handlers
	createLead := createLeadHandler.NewHandler(leadsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, metricsCollector, log)
	listLeads := listLeadsHandler.NewHandler(leadsSvc, log)
	getLead := getLeadHandler.NewHandler(leadsSvc, log)
	updateLead := updateLeadHandler.NewHandler(leadsSvc, log)
	getSummary := getSummaryHandler.NewHandler(leadsSvc, log)
	health := healthHandler.NewHandler(db, cfg.Metrics.ServiceName)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (форма на сайте и виджет бронирования)
	// ============================================================

	api.HandleFunc("/leads", createLead.Handle).Methods(http.MethodPost)
	api.HandleFunc("/leads/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/leads/{id:[0-9]+}/book", bookAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Password header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Password))

	admin.HandleFunc("/leads", listLeads.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/leads/{id:[0-9]+}", getLead.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/leads/{id:[0-9]+}", updateLead.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/stats/summary", getSummary.Handle).Methods(http.MethodGet)

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

	// Останавливаем цикл напоминаний
	stopScanner()

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
