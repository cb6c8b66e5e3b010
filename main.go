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

	"eventpro-backend/clock"
	"eventpro-backend/config"
	"eventpro-backend/consumer"
	"eventpro-backend/controllers"
	"eventpro-backend/monitoring"
	"eventpro-backend/repository"
	"eventpro-backend/routes"
	"eventpro-backend/services"
	"eventpro-backend/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	monitoring.Init()
	clk := clock.NewSystem()

	db, err := config.ConnectDB(cfg.Database, clk)
	if err != nil {
		return err
	}
	if err := repository.Migrate(db); err != nil {
		return err
	}
	store := repository.New(db)

	if cfg.SentryDSN != "" {
		if err := utils.InitSentry(cfg.SentryDSN, cfg.AppEnv, cfg.AppVersion); err != nil {
			slog.Warn("Sentry disabled", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	var cache utils.RedisClient
	if cfg.RedisAddr != "" {
		if cache, err = utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis disabled", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var search utils.ElasticsearchClient
	if cfg.ElasticsearchURL != "" {
		if search, err = utils.NewElasticsearchClient(cfg.ElasticsearchURL); err != nil {
			slog.Warn("Elasticsearch disabled", "error", err)
			search = nil
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home := services.NewHomeService(store, cache, cfg.HomeCacheTTL)
	activity := consumer.NewActivityConsumer(store, search, home)

	var producer utils.KafkaProducer
	if cfg.KafkaBroker != "" {
		if producer, err = utils.NewKafkaProducer(cfg.KafkaBroker, cfg.KafkaTopic); err != nil {
			slog.Warn("Kafka disabled, applying changes in process", "error", err)
			producer = nil
		} else {
			defer producer.Close()
			activity.WithReader(utils.NewKafkaReader(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID))
			go activity.Run(ctx)
		}
	}
	feed := services.NewActivityFeed(producer, activity.Handle, clk)

	if cfg.Twilio.Enabled() {
		notifier := services.NewTwilioNotifier(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
		reminders := services.NewReminderService(store, notifier, clk, cfg.ReminderWindow)
		if err := reminders.StartScheduler(cfg.ReminderSchedule); err != nil {
			return err
		}
		defer reminders.Stop()
	} else {
		slog.Info("Twilio not configured, task reminders disabled")
	}

	h := controllers.NewHandler(controllers.Deps{
		Store:   store,
		Home:    home,
		Reports: services.NewReportService(store, clk),
		Feed:    feed,
		Search:  search,
		Cache:   cache,
		Clock:   clk,
	})
	r := routes.SetupRouter(cfg, h)
	printRoutes(r)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		slog.Info("api listening", "port", cfg.Port)
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		slog.Debug("route", "method", route.Method, "path", route.Path)
	}
}
