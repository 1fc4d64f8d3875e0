package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"parkpass/internal/api"
	"parkpass/internal/config"
	"parkpass/internal/logger"
	"parkpass/internal/purchase"
	purchasedb "parkpass/internal/purchase/db"
	"parkpass/internal/purchase/qr"
	"parkpass/internal/registry"
	"parkpass/internal/registry/store"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	fileStore := store.NewFileStore(cfg.Storage.DataDir)
	reg := registry.New(fileStore)
	if err := reg.Load(); err != nil {
		log.Fatal("STORAGE", fmt.Sprintf("Failed to load registry: %v", err))
	}
	log.LogStorage("LOAD", fmt.Sprintf("Registry loaded from %s (%d accounts)", cfg.Storage.DataDir, len(reg.Accounts())))

	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		log.Fatal("STORAGE", fmt.Sprintf("Failed to create data directory: %v", err))
	}
	sqldb, err := sql.Open("sqlite", cfg.Storage.PurchaseDB)
	if err != nil {
		log.Fatal("STORAGE", fmt.Sprintf("Failed to open purchase database: %v", err))
	}
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	defer bunDB.Close()

	passDB := &purchasedb.DB{Bun: bunDB}
	if err := passDB.EnsureSchema(context.Background()); err != nil {
		log.Fatal("STORAGE", fmt.Sprintf("Failed to create purchase schema: %v", err))
	}

	purchases := purchase.NewService(passDB, qr.NewGenerator(cfg.QR.Secret))
	handler := api.NewHandler(reg, purchases, cfg, log)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      api.Router(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("parkpass listening on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "Shutdown complete")
}
