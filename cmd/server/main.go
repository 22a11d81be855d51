package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"trip-planner/internal/bootstrap"
	"trip-planner/internal/config"
	"trip-planner/internal/db"
	"trip-planner/internal/kafka"
	"trip-planner/internal/metrics"
	"trip-planner/internal/workers"
)

func main() {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting trip-planner", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pg, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(ctx, pg); err != nil {
		pg.Close()
		return err
	}

	redisClient, err := db.ConnectRedis(ctx, cfg.RedisURL, logger)
	if err != nil {
		pg.Close()
		return err
	}

	kafkaBundle, err := kafka.InitKafka(cfg.Kafka, logger)
	if err != nil {
		redisClient.Close()
		pg.Close()
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	app := bootstrap.InitBootstrap(cfg, pg, redisClient, kafkaBundle, m, logger)

	workers.StartAllWorkers(ctx, workers.Deps{
		Rates:         app.Currency,
		Snapshots:     app.Repositories.SnapshotRepo,
		Users:         app.Repositories.UserRegistry,
		UserSource:    kafkaBundle.UserConsumer,
		PopularSource: kafkaBundle.PopularConsumer,
		Logger:        logger,
	})
	bootstrap.StartCronJobs(ctx, app.Repositories.RequestLogRepo, kafkaBundle.PopularProducer, cfg.PopularInterval, m, logger)

	router := bootstrap.InitRoutes(app.Handlers, app.Repositories.UserRegistry, reg, logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := bootstrap.GracefulShutdown(ctx, srv, pg, redisClient, kafkaBundle, logger)

	logger.Info("server started", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
