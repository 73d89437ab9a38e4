package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/auth"
	authPostgres "github.com/contractly/timesheet-management/internal/auth/postgres"
	"github.com/contractly/timesheet-management/internal/core/events"
	"github.com/contractly/timesheet-management/internal/report"
	reportPostgres "github.com/contractly/timesheet-management/internal/report/postgres"
	"github.com/contractly/timesheet-management/internal/timesheet"
	timesheetPostgres "github.com/contractly/timesheet-management/internal/timesheet/postgres"
	"github.com/contractly/timesheet-management/internal/transport/middleware"
	"github.com/contractly/timesheet-management/internal/transport/rest"
	"github.com/contractly/timesheet-management/internal/transport/swagger"
	"github.com/contractly/timesheet-management/internal/user"
	userPostgres "github.com/contractly/timesheet-management/internal/user/postgres"
	"github.com/contractly/timesheet-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler      *auth.Handler
	UserHandler      *user.Handler
	TimesheetHandler *timesheet.Handler
	ReportHandler    *report.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	deps.Router.Use(middleware.LoggingMiddleware(deps.Logger))
	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.UserHandler,
		deps.TimesheetHandler,
		deps.ReportHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	// Validate the served OpenAPI document up front
	if _, err := swagger.LoadSpec(context.Background(), "./api/openapi.yml"); err != nil {
		lg.Warn("openapi spec could not be validated", "error", err)
	}

	eventBus := events.NewEventBus(lg)
	registerNotificationHandlers(eventBus, lg)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, cfg.Security.BCryptCost, lg)
	userHandler := user.NewHandler(userService)

	authRepo := authPostgres.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, lg)
	authHandler := auth.NewHandler(authService)

	timesheetRepo := timesheetPostgres.NewTimesheetRepository(gormDB)
	timesheetService := timesheet.NewService(timesheetRepo, eventBus, lg)
	timesheetHandler := timesheet.NewHandler(timesheetService)

	reportRepo := reportPostgres.NewReportRepository(gormDB)
	reportService := report.NewService(reportRepo, lg)
	reportHandler := report.NewHandler(reportService)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
		Logger: lg,

		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		TimesheetHandler: timesheetHandler,
		ReportHandler:    reportHandler,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the existing pgx connection pool.
// TranslateError is required so unique violations surface as
// gorm.ErrDuplicatedKey.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
	})
}

// registerNotificationHandlers logs lifecycle events. Notification delivery
// (email, Slack) would hook in here.
func registerNotificationHandlers(bus *events.EventBus, lg *slog.Logger) {
	bus.Subscribe(events.EventTypeTimesheetCreated, func(ctx context.Context, event events.Event) error {
		lg.Info("notification: timesheet submitted",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
	bus.Subscribe(events.EventTypeTimesheetApproved, func(ctx context.Context, event events.Event) error {
		lg.Info("notification: timesheet approved",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
	bus.Subscribe(events.EventTypeTimesheetRejected, func(ctx context.Context, event events.Event) error {
		lg.Info("notification: timesheet rejected",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
}
