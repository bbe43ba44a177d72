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

	"homestay/config"
	"homestay/dto"
	"homestay/jobs"
	middlewares "homestay/middleware"
	"homestay/repositories"
	"homestay/repositories/memstore"
	"homestay/routes"
	"homestay/services"
	"homestay/services/logger"
	"homestay/validator"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(logger.ParseLevel(cfg.LogLevel), cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// run không được gọi os.Exit, defer bên trong đóng Redis, AMQP và cron
	err = run(cfg, appLog)
	if err != nil {
		appLog.Error("%v", err)
	}
	_ = appLog.Zap().Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLog *logger.ZapLogger) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("múi giờ %s không hợp lệ: %w", cfg.DBTimezone, err)
	}
	dto.SetLocation(loc)

	if err := validator.Register(); err != nil {
		return fmt.Errorf("đăng ký validator thất bại: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg, appLog)
	if err != nil {
		return err
	}

	opts := services.Options{
		Store:                  store,
		Logger:                 appLog,
		Location:               loc,
		JWTSecret:              []byte(cfg.JWTSecret),
		TokenExpiry:            cfg.TokenExpiry(),
		DepositCheckInOverride: cfg.DepositCheckInOverride,
		DashboardCacheTTL:      cfg.DashboardCacheTTL,
		MaxUploadSize:          cfg.MaxUploadSize(),
	}

	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		opts.Cache = services.NewRedisCache(rdb)
		opts.Revoker = services.NewRedisTokenRevoker(rdb)
	} else {
		appLog.Warn("Không cấu hình REDIS_ADDR, dashboard không cache và danh sách token thu hồi chỉ giữ trong bộ nhớ")
	}

	if opts.Storage, err = config.NewStorage(cfg); err != nil {
		return err
	}

	publisher, err := config.NewPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()
	opts.Publisher = publisher

	svc := services.New(opts)

	if cfg.AdminEmail != "" {
		created, err := svc.Users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("tạo tài khoản admin thất bại: %w", err)
		}
		if created {
			appLog.Info("Đã tạo tài khoản admin %s", cfg.AdminEmail)
		}
	}

	c := cron.New(cron.WithLocation(loc))
	if err := jobs.InitCronJobs(c, svc.Dashboard, appLog); err != nil {
		return fmt.Errorf("failed to initialize cron jobs: %w", err)
	}
	c.Start()
	defer c.Stop()

	router := config.InitApp(cfg, appLog.Zap())
	routerOpts := routes.RouterOptions{
		Services:     svc,
		LoginLimiter: middlewares.NewRateLimiter(cfg.LoginRatePerMinute, 0, appLog.Zap()),
	}
	if cfg.StorageDriver == "local" {
		routerOpts.UploadDir = cfg.UploadDir
	}
	routes.SetupRoutes(router, routerOpts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLog.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("failed to start server: %w", err)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	appLog.Info("Đang tắt server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server lỗi: %w", err)
	}
	return nil
}

// openStore STORE_DRIVER=memory dùng cho chạy thử, dữ liệu mất khi tắt
func openStore(cfg *config.Config, appLog logger.Logger) (repositories.Store, error) {
	if cfg.StoreDriver == "memory" {
		appLog.Warn("Đang dùng store trong bộ nhớ")
		return memstore.New(), nil
	}
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	appLog.Info("Successfully connected to db")
	return repositories.NewGormStore(db), nil
}
