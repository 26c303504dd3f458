package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-scheduling/config"
	deliveryHttp "go-clinic-scheduling/internal/delivery/http"
	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/infrastructure/cache"
	"go-clinic-scheduling/internal/infrastructure/database"
	"go-clinic-scheduling/internal/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/clock"
	"go-clinic-scheduling/pkg/jwt"
	"go-clinic-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config           *config.Config
	DB               *gorm.DB
	RedisClient      redis.UniversalClient
	NotificationSink *service.RedisNotificationSink
	Server           *http.Server
}

// New connects to every backing service and wires the HTTP server
func New() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg.App)
	log.Info("Configuration loaded successfully")

	app := &App{Config: cfg}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			app.Close()
			return nil, err
		}
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.initializeServer(log)

	return app, nil
}

// setupLogger configures the standard logrus logger from APP_LOG_LEVEL
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func (app *App) initializeServer(log *logrus.Logger) {
	cfg := app.Config

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	transactor := database.NewTransactor(app.DB)
	clk := clock.NewRealClock()

	// Repositories
	doctorRepo := repository.NewDoctorProfileRepository()
	patientRepo := repository.NewPatientProfileRepository()
	availabilityRepo := repository.NewWeeklyAvailabilityRepository()
	slotRepo := repository.NewSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	slotCache := service.NewSlotCacheService(app.RedisClient, cfg.Booking.OpenSlotCacheTTL, log)
	app.NotificationSink = service.NewRedisNotificationSink(app.RedisClient, cfg.Notification, log)
	auditService := service.NewAuditService(transactor, log, auditLogRepo)

	// Usecases
	registry := usecase.NewScheduleRegistry(transactor, log, availabilityRepo, doctorRepo)
	generator := usecase.NewSlotGenerator(transactor, log, registry, slotRepo, doctorRepo, slotCache, cfg.Booking)
	engine := usecase.NewSlotBookingEngine(transactor, log, slotRepo, slotCache)
	lifecycle := usecase.NewAppointmentLifecycle(transactor, log, appointmentRepo, clk, cfg.Booking)

	availabilityUsecase := usecase.NewAvailabilityUsecase(log, registry, generator, engine, auditService, cfg.Booking)
	appointmentUsecase := usecase.NewAppointmentUsecase(
		transactor, log, engine, lifecycle, doctorRepo, patientRepo, app.NotificationSink, auditService, clk,
	)
	auditLogUsecase := usecase.NewAuditLogUsecase(transactor, log, auditLogRepo)

	// Handlers
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	slotHandler := handler.NewSlotHandler(availabilityUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	healthHandler := handler.NewHealthHandler(log, map[string]handler.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := app.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return app.RedisClient.Ping(ctx).Err()
		},
	})

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	router := deliveryHttp.NewRouter(
		availabilityHandler,
		slotHandler,
		appointmentHandler,
		auditLogHandler,
		healthHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close drains pending notifications, then closes Redis and the database.
// The sink publishes through Redis, so it must stop first.
func (app *App) Close() {
	if app.NotificationSink != nil {
		app.NotificationSink.Stop()
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			logrus.Warnf("Failed to close Redis: %v", err)
		}
	}

	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
