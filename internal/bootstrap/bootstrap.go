// Package bootstrap wires configuration, database, storage, services and the
// HTTP layer together for the server entrypoint.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/controllers"
	appMigrations "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/migrations"
	appRepos "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/repositories"
	appRoutes "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/routes"
	appServices "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/services"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/config"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/db"
	appMiddleware "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/middleware"
	pkgAuth "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/auth"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/filestorage"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services              *appServices.Services
	BatchController       *appControllers.BatchController
	UniversityController  *appControllers.UniversityController
	ApplicationController *appControllers.ApplicationController
	ScholarshipController *appControllers.ScholarshipController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	FileStorage           *filestorage.LocalStorage
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")

	if cfg.Eligibility.BypassWindows {
		lgr.Warn().Msg("BATCH WINDOW BYPASS ENABLED - all date-window gates are open")
	}

	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}
	deps.FileStorage = storage

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Services = appServices.NewServices(deps.Repos, storage, cfg)

	deps.BatchController = appControllers.NewBatchController(deps.Services.BatchService)
	deps.UniversityController = appControllers.NewUniversityController(deps.Services.UniversityService)
	deps.ApplicationController = appControllers.NewApplicationController(deps.Services.ApplicationService)
	deps.ScholarshipController = appControllers.NewScholarshipController(deps.Services.ScholarshipService)

	return deps, nil
}

// SetupRouter builds the gin engine with all routes registered.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))

	appRoutes.SetupRouter(
		router,
		deps.BatchController,
		deps.UniversityController,
		deps.ApplicationController,
		deps.ScholarshipController,
		deps.AuthMiddleware,
	)

	return router
}

// requestLogger logs each request through zerolog instead of gin's default
// writer.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lgr.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("Request handled")
	}
}
