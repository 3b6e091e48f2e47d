package main

import (
	"context"
	"log"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskflow/backend/api/handler"
	"github.com/taskflow/backend/internal/config"
	"github.com/taskflow/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskflow/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskflow/backend/internal/infrastructure/redis"
	"github.com/taskflow/backend/internal/middleware"
	"github.com/taskflow/backend/internal/router"
	"github.com/taskflow/backend/internal/services/lifecycle"
	"github.com/taskflow/backend/internal/services/notify"
	"github.com/taskflow/backend/internal/session"
	"github.com/taskflow/backend/internal/validate"
	"github.com/taskflow/backend/pkg/httpcontext"
	"github.com/taskflow/backend/pkg/logger"
	"github.com/taskflow/backend/repository/postgres"
	"github.com/taskflow/backend/usecase"
	authUC "github.com/taskflow/backend/usecase/auth"
	taskUC "github.com/taskflow/backend/usecase/task"
	userUC "github.com/taskflow/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	// The change notifier is best-effort: a missing or unreachable Redis
	// leaves the service fully functional without broadcasts.
	var notifier usecase.ChangeNotifier = notify.Noop{}
	var redisClient *goRedis.Client
	if cfg.NotifierEnabled() {
		redisClient, err = redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Warn("change notifier disabled", zap.Error(err))
			redisClient = nil
		} else {
			notifier = notify.NewPublisher(redisClient, cfg.Redis.Channel, zapLogger)
			manager.Register("redis", func(ctx context.Context) error {
				return redisClient.Close()
			})
		}
	}

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	authUseCase := authUC.New(userRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, notifier, zapLogger)
	userUseCase := userUC.New(userRepo, zapLogger)

	sessions := session.NewManager(cfg.Session)
	validator := validate.New()
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, sessions, validator, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, validator, ctxAdapter, zapLogger),
		User:   apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	sessionAuth := middleware.SessionAuth(sessions, zapLogger)
	r := router.New(handlers, sessionAuth)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
