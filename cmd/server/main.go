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

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"

	"github.com/splitr-app/splitr/internal/auth"
	"github.com/splitr-app/splitr/internal/config"
	"github.com/splitr-app/splitr/internal/events"
	"github.com/splitr-app/splitr/internal/handlers"
	"github.com/splitr-app/splitr/internal/service"
	"github.com/splitr-app/splitr/internal/storage"
	"github.com/splitr-app/splitr/internal/storage/postgres"
	"github.com/splitr-app/splitr/internal/storage/sqlite"
	"github.com/splitr-app/splitr/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logging.Setup()

	figure.NewFigure("Splitr", "", true).Print()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StorageBackend)

	publisher := openPublisher(cfg)
	defer publisher.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	h := &handlers.Handlers{
		Auth:        service.NewAuthService(authenticator, jwtManager),
		Dashboard:   service.NewDashboardService(store),
		Groups:      service.NewGroupService(store),
		Expenses:    service.NewExpenseService(store, publisher),
		Settlements: service.NewSettlementService(store, publisher),
		Users:       service.NewUserService(store),
		JWT:         jwtManager,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return postgres.New(cfg.DatabaseURL)
	default:
		return sqlite.New(cfg.SQLiteDBPath)
	}
}

// openPublisher connects to AMQP when configured, otherwise falls back
// to a no-op so expense and settlement writes never depend on a broker.
func openPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		slog.Warn("Event publishing disabled", "error", err)
		return events.NopPublisher{}
	}
	slog.Info("Event publisher connected", "exchange", cfg.AMQPExchange)
	return publisher
}
