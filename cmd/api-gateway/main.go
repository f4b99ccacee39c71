package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/print-request-api/api/swagger"
	"github.com/noah-isme/print-request-api/internal/handler"
	"github.com/noah-isme/print-request-api/internal/middleware"
	"github.com/noah-isme/print-request-api/internal/repository"
	"github.com/noah-isme/print-request-api/internal/service"
	"github.com/noah-isme/print-request-api/pkg/cache"
	"github.com/noah-isme/print-request-api/pkg/config"
	"github.com/noah-isme/print-request-api/pkg/export"
	"github.com/noah-isme/print-request-api/pkg/jobs"
	"github.com/noah-isme/print-request-api/pkg/kvstore"
	"github.com/noah-isme/print-request-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/print-request-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/print-request-api/pkg/middleware/requestid"
	"github.com/noah-isme/print-request-api/pkg/storage"
)

const (
	jobExportsCleanup = "exports.cleanup"
	jobDraftsSweep    = "drafts.sweep"
	jobDashboardSweep = "dashboard.sweep"
)

// @title Print Request API
// @version 1.0.0
// @description Copy request intake and printing room workflow
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return err
	}

	backend, err := openBackend(ctx, cfg, redisClient, logr)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return err
	}
	defer backend.Close() //nolint:errcheck
	if redisClient != nil && cfg.Store.Driver != kvstore.DriverRedis {
		defer redisClient.Close() //nolint:errcheck
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	requests, err := repository.NewPrintRequestRepository(ctx, backend, cfg.Store.Key, logr.Named("store"), metricsSvc)
	if err != nil {
		return err
	}
	drafts := repository.NewDraftRepository(redisClient, logr.Named("drafts"))

	exportFiles, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return fmt.Errorf("prepare export storage: %w", err)
	}

	intakeSvc := service.NewIntakeService(requests, drafts, metricsSvc, validate, logr.Named("intake"), service.IntakeConfig{DraftTTL: cfg.Drafts.TTL})
	staffSvc := service.NewStaffService(requests, metricsSvc, validate, logr.Named("staff"), service.StaffConfig{
		PhotoMaxWidth:  cfg.Capture.PhotoMaxWidth,
		PhotoMaxHeight: cfg.Capture.PhotoMaxHeight,
	})
	dashboardSvc := service.NewDashboardService(staffSvc, logr.Named("dashboard"), service.DashboardConfig{
		ClearDelay: cfg.Dashboard.ClearDelay,
		SessionTTL: cfg.Dashboard.SessionTTL,
	})
	printableSvc := service.NewPrintableService(staffSvc, logr.Named("printable"), service.PrintableConfig{
		SchoolName: cfg.Printable.SchoolName,
		FormCode:   cfg.Printable.FormCode,
	})
	// No barcode detector ships with the server; scans report UNSUPPORTED.
	scanSvc := service.NewScanService(nil, staffSvc, metricsSvc, logr.Named("scan"), service.ScanConfig{
		Interval: cfg.Capture.ScanInterval,
		Timeout:  cfg.Capture.ScanTimeout,
	})
	exportSvc := service.NewExportService(
		requests,
		exportFiles,
		storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		metricsSvc,
		service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Exports.SignedURLTTL},
		logr.Named("exports"),
		export.NewCSVExporter(),
		export.NewPDFExporter(),
	)
	authSvc := service.NewAuthService(validate, logr.Named("auth"), service.AuthConfig{
		PasscodeHash:      cfg.Staff.PasscodeHash,
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "print-request-api",
	})

	queue := jobs.NewQueue("maintenance", jobs.Dispatch(map[string]jobs.Handler{
		jobExportsCleanup: func(ctx context.Context, job jobs.Job) error {
			_, err := exportSvc.Cleanup(0)
			return err
		},
		jobDraftsSweep: func(ctx context.Context, job jobs.Job) error {
			drafts.Sweep()
			return nil
		},
		jobDashboardSweep: func(ctx context.Context, job jobs.Job) error {
			dashboardSvc.Sweep()
			return nil
		},
	}), jobs.QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: 30 * time.Second, Logger: logr})
	queue.Start(ctx)
	defer queue.Stop()

	scheduler := jobs.NewScheduler(queue, logr)
	if err := scheduler.Every(cfg.Exports.CleanupCron, jobExportsCleanup); err != nil {
		return err
	}
	if err := scheduler.Every(cfg.Drafts.SweepCron, jobDraftsSweep); err != nil {
		return err
	}
	if err := scheduler.Every(cfg.Dashboard.SweepCron, jobDashboardSweep); err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	checks := map[string]handler.ReadinessCheck{"store": storeCheck(backend, cfg.Store.Key)}
	if redisClient != nil {
		checks["redis"] = cache.Check(redisClient)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Staff.AuthEnabled && cfg.Staff.PasscodeHash == "" {
		logr.Warn("staff auth enabled without STAFF_PASSCODE_HASH, logins will be refused")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metricsSvc))

	registerRoutes(r, handlers{
		requests:  handler.NewPrintRequestHandler(intakeSvc, staffSvc, cfg.APIPrefix),
		drafts:    handler.NewDraftHandler(intakeSvc, cfg.APIPrefix),
		printable: handler.NewPrintableHandler(printableSvc),
		staff:     handler.NewStaffHandler(staffSvc, scanSvc, logr.Named("staff")),
		dashboard: handler.NewDashboardHandler(dashboardSvc),
		exports:   handler.NewExportHandler(exportSvc),
		auth:      handler.NewAuthHandler(authSvc),
		metrics:   handler.NewMetricsHandler(metricsSvc, checks),
	}, routeOptions{
		apiPrefix:  cfg.APIPrefix,
		docs:       cfg.Env != config.EnvProduction,
		staffGuard: middleware.StaffOnly(cfg.Staff.AuthEnabled, authSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
