package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodify/cmd"
	httpin "foodify/internal/adapters/in/http"
	"foodify/internal/adapters/out/postgres"
	"foodify/internal/adapters/out/redisbus"
	"foodify/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	zapLogger, err := logger.Initialize(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	slogger, err := logger.NewSlog(os.Stderr, configs.LogLevel)
	if err != nil {
		zap.L().Fatal("failed to build slog logger", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := configs.DatabaseSettings().DSN()
	if err := postgres.Migrate(ctx, dsn); err != nil {
		zap.L().Fatal("failed to apply migrations", zap.Error(err))
	}

	gormDB, err := postgres.Open(dsn)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	rdb := connectRedis(ctx, configs.RedisURL)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	app := cmd.NewCompositionRoot(configs, gormDB, rdb, slogger)

	if relay := app.CreateRedisRelay(); relay != nil {
		go func() {
			if err := relay.Run(ctx); err != nil {
				zap.L().Error("redis relay stopped", zap.Error(err))
			}
		}()
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		zap.L().Fatal("failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.ParseConfig()
	if err != nil {
		log.Fatal(err)
	}
	return config
}

func connectRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		zap.L().Info("REDIS_URL not set, status events stay in process")
		return nil
	}

	rdb, err := redisbus.Connect(ctx, redisURL)
	if err != nil {
		zap.L().Fatal("failed to connect to redis", zap.Error(err))
	}
	return rdb
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		zap.L().Fatal("invalid OpenAPI document", zap.Error(err))
	}

	e := httpin.NewRouter(app.CreateHTTPServer(), doc, httpin.RouterConfig{
		QuietErrors:  configs.IsTest(),
		LogRequests:  !configs.IsTest(),
		AllowOrigins: configs.CORSAllowedOrigins,
	})
	e.Logger.SetLevel(log.INFO)
	// Requests inherit ctx so open event streams end on shutdown.
	e.Server.BaseContext = func(net.Listener) context.Context { return ctx }

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%d", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
