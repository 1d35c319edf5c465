package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/config"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	appHTTP "github.com/cmlabs-hris/hris-reconciliation-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/ttlcache"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/repository/postgresql"
	allowanceService "github.com/cmlabs-hris/hris-reconciliation-go/internal/service/allowance"
	leaveService "github.com/cmlabs-hris/hris-reconciliation-go/internal/service/leave"
	reconciliationService "github.com/cmlabs-hris/hris-reconciliation-go/internal/service/reconciliation"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-reconciliation"),
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
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			logger.Error("Error applying schema", "error", err)
			os.Exit(1)
		}
		logger.Info("Database schema applied")
	}

	// Validated by config.Load
	defaultZone, _ := time.LoadLocation(cfg.App.DefaultTimezone)

	calendarRepo := postgresql.NewCalendarRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	leaveGrantRepo := postgresql.NewLeaveGrantRepository(db)
	dutyRepo := postgresql.NewDutyAssignmentRepository(db)
	orgUnitRepo := postgresql.NewOrgUnitRepository(db)
	allowanceRepo := postgresql.NewAllowanceRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	orgUnitCache := ttlcache.New[string, orgunit.OrgUnit](cfg.Cache.TimezoneTTL)
	badgeCache := ttlcache.New[string, int64](cfg.Cache.BadgeTTL)
	hub := sse.NewHub()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	reconciliationSvc := reconciliationService.NewReconciliationService(
		calendarRepo,
		recordRepo,
		leaveGrantRepo,
		dutyRepo,
		orgUnitRepo,
		reconciliationService.Config{
			DefaultTimezone: defaultZone,
			OrgUnits:        orgUnitCache,
			Logger:          logger,
		},
	)
	allowanceSvc := allowanceService.NewAllowanceService(allowanceRepo, orgUnitRepo, allowanceService.Config{
		DefaultTimezone: defaultZone,
		OrgUnits:        orgUnitCache,
		Logger:          logger,
	})
	leaveSvc := leaveService.NewLeaveService(txRunner, leaveGrantRepo, hub, leaveService.Config{
		Badges: badgeCache,
		Logger: logger,
	})
	defer leaveSvc.Stop()

	scheduler := cron.NewScheduler(logger)
	cron.NewCacheJobs(logger).
		Track("org_units", orgUnitCache).
		Track("pending_badges", badgeCache).
		RegisterJobs(scheduler, cfg.Cache.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewReconciliationHandler(reconciliationSvc),
		appHTTP.NewAllowanceHandler(allowanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewEventsHandler(leaveSvc, JWTService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	// Open streams never finish on their own
	hub.Close()
	leaveSvc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
