// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/container"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/database"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/messaging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	persistence "github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/persistence/database"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/security"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/server"
	"github.com/PuneetGOTO/business-website-sub000/pkg/config"
)

// NewLogger builds the channeled logger from configuration
func NewLogger() (*logging.ChanneledLogger, error) {
	return logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    config.LogToFile,
		OutputToConsole: true,
		LogDirectory:    config.LogDirectory,
		JSONFormat:      config.LogJSONFormat,
		DefaultLevel:    logging.ParseLevel(config.LogLevel),
		ChannelLevels:   make(map[logging.Channel]slog.Level),
	})
}

// Initialize performs the startup sequence and blocks until a shutdown signal
func Initialize() error {
	setupGin()
	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	logger, err := NewLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()
	perfTracker := performance.NewTracker(logger, config.SlowQueryThreshold)

	// Step 1: Database
	logger.Startup().Info("Opening database...", "type", config.DatabaseType)
	db, err := persistence.Open(persistence.Options{
		DatabaseType:    config.DatabaseType,
		SQLitePath:      config.SQLitePath,
		TursoURL:        config.TursoDatabaseURL,
		TursoToken:      config.TursoAuthToken,
		MaxOpenConns:    config.DBMaxOpenConns,
		MaxIdleConns:    config.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Step 2: Schema and first administrator
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	seeded, err := tableCreator.SeedAdmin(ctx, db.DB, config.AdminEmail, config.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if seeded {
		logger.Startup().Info("Seeded admin user", "email", config.AdminEmail)
	} else if config.AdminPassword == "" {
		logger.Startup().Warn("ADMIN_PASSWORD not set, no admin user was seeded")
	}

	// Step 3: Token signing key
	jwtSecret := config.JWTSecret
	if jwtSecret == "" {
		jwtSecret, err = security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		logger.Startup().Warn("JWT_SECRET not set, using an ephemeral key; tokens will not survive a restart")
	}

	// Step 4: Event hub and container
	hub := messaging.NewHub(logger)
	go hub.Run(ctx)

	appContainer := container.NewContainer(db.DB, container.Settings{
		JWTSecret: jwtSecret,
		SiteRoot:  config.SiteRoot,
		BackupDir: config.BackupDir,
	}, hub, logger, perfTracker)
	logger.Startup().Info("Dependency injection container created", "siteRoot", config.SiteRoot)

	// Step 5: HTTP server
	httpServer := server.New(server.OptionsFromConfig(), appContainer)
	if err := httpServer.Listen(); err != nil {
		return err
	}

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	logger.Startup().Info("Application startup complete", "totalDuration", time.Since(start), "address", httpServer.Addr())

	select {
	case <-gracefulShutdown:
		logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	case err := <-serverErr:
		if err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
			return err
		}
	}

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))
	return nil
}

func setupGin() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
}
