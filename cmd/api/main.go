package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-backend-go/internal/service/attendance"
	holidayService "github.com/cmlabs-hris/payroll-backend-go/internal/service/holiday"
	salaryService "github.com/cmlabs-hris/payroll-backend-go/internal/service/salary"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logLevel := parseLogLevel(cfg.App.LogLevel)
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Error("failed to apply schema", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)

	feed, err := newHolidayFeed(ctx, cfg.Holiday)
	if err != nil {
		logger.Error("failed to initialize holiday calendar feed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if feed == nil {
		logger.Warn("holiday calendar feed disabled, holidays must be loaded into the database directly")
	}

	engineCfg := salaryService.DefaultEngineConfig()
	engineCfg.Tolerances = salaryService.MatchTolerances{
		PreStart:      cfg.Salary.PreStartTolerance,
		LateCheckout:  cfg.Salary.LateCheckoutTolerance,
		EarlyCheckout: cfg.Salary.EarlyCheckoutTolerance,
	}
	engineCfg.FullDayThreshold = cfg.Salary.FullDayThreshold
	engineCfg.HalfDayThreshold = cfg.Salary.HalfDayThreshold
	engineCfg.Workers = cfg.Salary.Workers
	engineCfg.Seed = cfg.Salary.Seed
	engineCfg.Location = cfg.Location()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, feed, logger)
	engine := salaryService.NewEngine(engineCfg, holidaySvc, logger)
	salarySvc := salaryService.NewSalaryService(transactor, engine, employeeRepo, punchRepo, salaryRepo, logger)
	attendanceSvc := attendanceService.NewAttendanceService(punchRepo, employeeRepo, engineCfg.Location, logger)

	scheduler := cron.NewScheduler(logger)
	if feed != nil {
		cron.NewHolidayJobs(holidaySvc, cfg.Holiday.SyncInterval, logger).RegisterJobs(scheduler)
		scheduler.Start()
	}
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Logger:         logger,
			LogLevel:       logLevel,
		},
		JWTService,
		appHTTP.NewSalaryHandler(salarySvc),
		appHTTP.NewHolidayHandler(holidaySvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// newHolidayFeed returns nil when no calendar is configured.
func newHolidayFeed(ctx context.Context, cfg config.HolidayConfig) (holiday.Feed, error) {
	if cfg.CalendarID == "" {
		return nil, nil
	}
	credentials, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read holiday credentials: %w", err)
	}
	feed, err := calendar.NewGoogleCalendarFeed(ctx, calendar.GoogleCalendarConfig{
		CalendarID:      cfg.CalendarID,
		CredentialsJSON: credentials,
		BaseURL:         cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
