package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/stoxly/stoxly/internal/api"
	"github.com/stoxly/stoxly/internal/config"
	"github.com/stoxly/stoxly/internal/database"
	"github.com/stoxly/stoxly/internal/kafka"
	"github.com/stoxly/stoxly/internal/ledger"
	"github.com/stoxly/stoxly/internal/session"
	"github.com/stoxly/stoxly/internal/view"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config (optional, env vars otherwise)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log, err := newLogger(cfg.Env)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync()

	db, err := database.New(cfg.Postgres.URL())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.MigrateUp(cfg.Postgres.MigrationsPath); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// No usable store means no usable session.
	if err := db.EnsureSeedData(); err != nil {
		log.Fatal("failed to seed store", zap.Error(err))
	}

	var events ledger.Publisher
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		events = producer
		defer producer.Close()
	}

	svc := ledger.New(db, events, log)
	views := view.New(svc)

	sessions := session.NewManager(cfg.Refresh.Interval, svc, log)
	defer sessions.Close()

	handler := api.NewHandler(svc, views, sessions, log)
	// Scheduled refreshes advance the reload counter so snapshot
	// pollers know when to re-pull.
	sessions.OnTick(handler.NotifyRefresh)
	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: api.SetupRoutes(handler),
	}

	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
