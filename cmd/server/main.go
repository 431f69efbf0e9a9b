package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/agrisetu/farmlink-backend/internal/api"
	"github.com/agrisetu/farmlink-backend/internal/config"
	"github.com/agrisetu/farmlink-backend/internal/logger"
	"github.com/agrisetu/farmlink-backend/internal/server"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/agrisetu/farmlink-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	logr, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logr.Sync()

	// Postgres when configured, SQLite otherwise.
	var db services.DBService
	if cfg.PostgresURL != "" {
		db, err = services.NewPostgresDBService(cfg.PostgresURL)
	} else {
		db, err = services.NewSqliteDBService(cfg.SQLitePath)
	}
	if err != nil {
		logr.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logr.Fatal("failed to initialize upload storage", "error", err)
	}

	svcs, authenticator := server.InitializeServices(db.GetDB(), store, logr, cfg)

	apiServer := api.NewAPIServer(
		logr,
		authenticator,
		svcs.Auth,
		svcs.Contracts,
		svcs.Trader,
		svcs.Farms,
		svcs.Images,
		svcs.Reference,
		store,
	)

	port, err := apiServer.Start(&cfg.Port)
	if err != nil {
		logr.Fatal("failed to start api server", "error", err)
	}
	logr.Info("api server started", "port", port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logr.Info("shutting down")
	if err := apiServer.Shutdown(); err != nil {
		logr.Error("error shutting down api server", "error", err)
	}
}
