package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	getAvailableSlotsHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/get_available_slots"
	getChatEventsHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/get_chat_events"
	getChatMessagesHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/get_chat_messages"
	listCalendarEventsHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/list_calendar_events"
	listChatsHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/list_chats"
	markChatReadHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/mark_chat_read"
	relayIncomingHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/relay_incoming"
	scheduleBookingHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/schedule_booking"
	sendReplyHandler "github.com/m04kA/sto-booking-bot/internal/api/handlers/send_reply"
	"github.com/m04kA/sto-booking-bot/internal/api/middleware"
	"github.com/m04kA/sto-booking-bot/internal/config"
	"github.com/m04kA/sto-booking-bot/internal/domain"
	chatRepo "github.com/m04kA/sto-booking-bot/internal/infra/storage/chat"
	memoryRepo "github.com/m04kA/sto-booking-bot/internal/infra/storage/memory"
	calendarClient "github.com/m04kA/sto-booking-bot/internal/integrations/calendar"
	relayClient "github.com/m04kA/sto-booking-bot/internal/integrations/relay"
	"github.com/m04kA/sto-booking-bot/internal/integrations/telegram"
	"github.com/m04kA/sto-booking-bot/internal/service/catalog"
	chatsService "github.com/m04kA/sto-booking-bot/internal/service/chats"
	"github.com/m04kA/sto-booking-bot/internal/service/session"
	"github.com/m04kA/sto-booking-bot/internal/service/slots"
	createBookingUC "github.com/m04kA/sto-booking-bot/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/sto-booking-bot/internal/usecase/get_available_slots"
	handleMessageUC "github.com/m04kA/sto-booking-bot/internal/usecase/handle_message"
	scheduleBookingUC "github.com/m04kA/sto-booking-bot/internal/usecase/schedule_booking"
	sendRemindersUC "github.com/m04kA/sto-booking-bot/internal/usecase/send_reminders"
	"github.com/m04kA/sto-booking-bot/internal/worker"
	"github.com/m04kA/sto-booking-bot/pkg/dbmetrics"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
	"github.com/m04kA/sto-booking-bot/pkg/metrics"
	"github.com/m04kA/sto-booking-bot/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

// calendarAPI клиент календаря; nil, если календарь не настроен
type calendarAPI interface {
	CreateEvent(ctx context.Context, req domain.CalendarEventRequest) (string, error)
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error)
}

// messengerAPI транспорт мессенджера; nil, если бот не настроен
type messengerAPI interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
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

	log.Info("Starting sto-booking-bot...")
	log.Info("Configuration loaded from %s", configPath)

	if missing := cfg.Validate(); len(missing) > 0 {
		log.Warn("CONFIG_MISSING: %s", strings.Join(missing, ", "))
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	workingHours, err := cfg.WorkingHours()
	if err != nil {
		log.Fatal("Invalid working hours: %v", err)
	}
	serviceTypes := cfg.DomainServiceTypes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	recorder := metrics.NewRecorder(metricsCollector)

	// Хранилище чатов: PostgreSQL или память процесса
	var chatRepository chatsService.ChatRepository

	if cfg.DatabaseReady() {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
			chatRepository = chatRepo.NewRepository(wrappedDB, txmanager.NewTransactionManager(wrappedDB))
		} else {
			chatRepository = chatRepo.NewRepository(db, txmanager.NewTransactionManager(txmanager.SQLDB{DB: db}))
		}
	} else {
		chatRepository = memoryRepo.NewRepository()
		log.Warn("Database is not configured, chat history is kept in memory")
	}

	// Google Calendar
	var calendar calendarAPI
	if cfg.CalendarReady() {
		client, err := calendarClient.NewClient(
			ctx,
			cfg.Calendar.CredentialsFile,
			time.Duration(cfg.Calendar.Timeout)*time.Second,
			location,
			log,
		)
		if err != nil {
			log.Error("Calendar client is disabled: %v", err)
		} else {
			calendar = client
			log.Info("Calendar client initialized (timezone=%s, timeout=%ds)", location, cfg.Calendar.Timeout)
		}
	}

	// Telegram
	var bot *telegram.Bot
	var sender messengerAPI
	if cfg.TelegramReady() {
		bot, err = telegram.New(telegram.Config{
			Token:              cfg.Telegram.BotToken,
			ManagerToken:       cfg.Telegram.ManagerBotToken,
			PollTimeout:        cfg.Telegram.PollTimeout,
			Workers:            cfg.Telegram.Workers,
			RateLimitPerSecond: cfg.Telegram.RateLimitPerSecond,
			Timeout:            time.Duration(cfg.Telegram.Timeout) * time.Second,
		}, log)
		if err != nil {
			log.Error("Telegram bot is disabled: %v", err)
			bot = nil
		} else {
			sender = bot
		}
	}

	// Пересылка входящих во внешний компаньон
	var relay handleMessageUC.RelayClient
	if cfg.Relay.PushURL != "" && cfg.Relay.SharedSecret != "" {
		relay = relayClient.NewClient(
			cfg.Relay.PushURL,
			cfg.Relay.SharedSecret,
			time.Duration(cfg.Relay.Timeout)*time.Second,
		)
		log.Info("Relay push enabled (url=%s)", cfg.Relay.PushURL)
	}

	// Сервисы
	chatSvc := chatsService.NewService(chatRepository, sender, log)
	calculator := slots.NewCalculator(
		workingHours,
		location,
		cfg.Booking.SlotMinutes,
		cfg.Booking.HorizonDays,
		cfg.Booking.CutoffHour,
	)
	sessions := session.NewStore(session.Dependencies{
		ServiceTypes: serviceTypes,
		Catalog:      catalog.NewDefault(),
		Slots:        calculator,
	}, cfg.SessionTTL())

	externalTimeout := time.Duration(cfg.Calendar.Timeout) * time.Second

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		calendar,
		calculator,
		recorder,
		serviceTypes,
		externalTimeout,
		log,
	)

	var wg sync.WaitGroup
	scheduler := worker.NewScheduler(location, log)

	if bot != nil {
		createBookingUseCase := createBookingUC.NewUseCase(
			calendar,
			bot,
			chatSvc,
			recorder,
			serviceTypes,
			createBookingUC.Options{
				TimeZone:      location.String(),
				EventDuration: time.Duration(cfg.Calendar.DefaultDurationMinutes) * time.Minute,
				Timeout:       externalTimeout,
			},
			log,
		)

		handleMessageUseCase := handleMessageUC.NewUseCase(
			sessions,
			bot,
			chatSvc,
			relay,
			createBookingUseCase,
			recorder,
			time.Duration(cfg.Telegram.Timeout)*time.Second,
			log,
		)

		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.Run(ctx, handleMessageUseCase)
		}()
		log.Info("Telegram polling started (workers=%d)", cfg.Telegram.Workers)

		if cfg.Reminders.Enabled && calendar != nil {
			sendRemindersUseCase := sendRemindersUC.NewUseCase(
				calendar,
				bot,
				chatSvc,
				recorder,
				cfg.CalendarIDs(),
				location,
				externalTimeout,
				log,
			)
			if err := scheduler.AddReminders(cfg.Reminders.SameDaySpec, sendRemindersUC.OffsetSameDay, sendRemindersUseCase); err != nil {
				log.Fatal("Failed to schedule reminders: %v", err)
			}
			if err := scheduler.AddReminders(cfg.Reminders.DayBeforeSpec, sendRemindersUC.OffsetDayBefore, sendRemindersUseCase); err != nil {
				log.Fatal("Failed to schedule reminders: %v", err)
			}
		}

		if sessions.TTL() > 0 {
			if err := scheduler.AddSessionSweep(worker.SessionSweepSpec, sessions, recorder); err != nil {
				log.Fatal("Failed to schedule session sweep: %v", err)
			}
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Локальный релей входящих сообщений (подпись HMAC вместо токена оператора)
	if cfg.RelayReady() {
		relayIncoming := relayIncomingHandler.NewHandler(chatSvc, cfg.Relay.SharedSecret, log)
		r.HandleFunc("/api/telegram/incoming", relayIncoming.Handle).Methods(http.MethodPost)
		log.Info("Relay endpoint enabled at /api/telegram/incoming")
	}

	// ============================================================
	// OPERATOR ROUTES (Authorization: Bearer, если задан api.operator_token)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.OperatorAuth(cfg.API.OperatorToken))
	if cfg.API.OperatorToken == "" {
		log.Warn("Operator API is running without authorization")
	}

	// --- Чаты ---
	api.HandleFunc("/chats", listChatsHandler.NewHandler(chatSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/chats/{chatId}/messages", getChatMessagesHandler.NewHandler(chatSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/chats/{chatId}/messages", sendReplyHandler.NewHandler(chatSvc, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/chats/{chatId}/read", markChatReadHandler.NewHandler(chatSvc, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/chats/{chatId}/calendar-events", getChatEventsHandler.NewHandler(chatSvc, log).Handle).Methods(http.MethodGet)

	// --- Слоты ---
	api.HandleFunc("/available-slots",
		getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log).Handle).Methods(http.MethodGet)

	// --- Календарь ---
	if calendar != nil {
		scheduleBookingUseCase := scheduleBookingUC.NewUseCase(
			calendar,
			sender,
			chatSvc,
			recorder,
			serviceTypes,
			location,
			cfg.Calendar.DefaultDurationMinutes,
			externalTimeout,
			log,
		)
		api.HandleFunc("/calendars/{calendarId}/events",
			listCalendarEventsHandler.NewHandler(calendar, location, log).Handle).Methods(http.MethodGet)
		api.HandleFunc("/chats/{chatId}/schedule",
			scheduleBookingHandler.NewHandler(scheduleBookingUseCase, location, log).Handle).Methods(http.MethodPost)
	} else {
		log.Warn("Calendar routes are disabled")
	}

	// Планировщик
	if scheduler.Len() > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scheduler.Start(ctx)
		}()
	}

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Ждём бота и планировщик
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn("Background workers did not stop in time")
	}

	close(stopMetricsCh)
	log.Info("Server exited")
}
