package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secure-store-hub/internal/database"
	"secure-store-hub/internal/infrastructure/config"
	"secure-store-hub/internal/infrastructure/di"
	"secure-store-hub/internal/logger"
	"secure-store-hub/internal/migration"
	"secure-store-hub/internal/server"
)

func main() {
	cfg := config.Load()

	if cfg.Security.CryptoSecret == "" {
		log.Printf("WARNING: no crypto secret configured; user creation and login will fail. " +
			"Set the CRYPTO_SECRET environment variable.")
	}

	if err := database.InitDatabase(cfg.Database.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDatabase()
	defer db.Close()

	if err := migration.Apply(db.GetDB()); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	if err := logger.InitLogger(db.GetDB()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	container, err := di.New(cfg.Security.CryptoSecret, cfg.Security.RoleCacheSize)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	srv := server.New(container.KeyUC)
	container.Handler.RegisterRoutes(srv.Router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.GetLogger().LogSystem(logger.EventSystemStart, "Server starting on "+addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().LogSystem(logger.EventSystemStop, "Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
