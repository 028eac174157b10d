// backend/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/database"
	"github.com/gewnthar/tripcover/backend/handlers"
	"github.com/gewnthar/tripcover/backend/middleware"
	"github.com/gewnthar/tripcover/backend/services"
	"github.com/gewnthar/tripcover/backend/utils"
	"go.uber.org/zap"
)

// findConfigPath checks TRIPCOVER_CONFIG, then the usual locations relative to the
// project root or the backend directory. No file means defaults plus environment.
func findConfigPath() string {
	if p := os.Getenv("TRIPCOVER_CONFIG"); p != "" {
		return p
	}
	for _, p := range []string{"backend/config/config.yaml", "config/config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func main() {
	configPath := findConfigPath()
	if err := config.LoadConfig(configPath); err != nil {
		utils.GetLogger().Fatal("Error loading configuration", zap.String("path", configPath), zap.Error(err))
	}
	cfg := config.AppConfig

	utils.InitializeLogger(cfg.Log.Style, cfg.Log.Level)
	logger := utils.GetLogger()
	defer logger.Sync()

	logger.Info("Starting TripCover backend",
		zap.String("config", configPath),
		zap.String("port", cfg.Server.Port),
		zap.String("intake_mode", cfg.Intake.Mode),
		zap.String("compare_style", cfg.Selection.CompareStyle),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	if cfg.Catalog.Source == config.CatalogSourceMySQL {
		if err := database.InitDB(cfg.Database); err != nil {
			logger.Fatal("Error initializing database", zap.Error(err))
		}
		defer database.CloseDB()
	}

	planCatalog, err := services.LoadCatalog(cfg.Catalog)
	if err != nil {
		logger.Fatal("Error loading plan catalog", zap.Error(err))
	}

	flows := services.NewFlowStore(services.FlowOptions{
		Catalog:           planCatalog,
		Validator:         services.NewIntakeValidator(cfg.Intake),
		Selection:         cfg.Selection,
		ConfirmationDelay: cfg.Checkout.ConfirmationDelay,
	}, cfg.Session.TTL)

	router := handlers.NewRouter(
		handlers.NewHandler(flows, planCatalog, cfg.Selection),
		middleware.NewRateLimiter(cfg.Server),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
