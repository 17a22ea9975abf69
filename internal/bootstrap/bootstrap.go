package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/registrar/internal/app/controllers"
	appMigrations "github.com/yigit/registrar/internal/app/migrations"
	"github.com/yigit/registrar/internal/app/models"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	appRoutes "github.com/yigit/registrar/internal/app/routes"
	appServices "github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/app/views"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
	appMiddleware "github.com/yigit/registrar/internal/middleware"
	pkgAuth "github.com/yigit/registrar/internal/pkg/auth"
	"github.com/yigit/registrar/internal/pkg/helpers"
	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/pkg/tracing"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	OfferingService     *appServices.OfferingService
	RegistrationService *appServices.RegistrationService
	AuthService         *appServices.AuthService
	PageController      *appControllers.PageController
	AuthController      *appControllers.AuthController
	OfferingController  *appControllers.OfferingController
	HealthController    *appControllers.HealthController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.Migrate(ctx, appMigrations.Files()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupTracing installs the global tracer provider.
func SetupTracing(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*tracing.Provider, error) {
	provider, err := tracing.NewProvider(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Exporter:    strings.ToLower(cfg.Tracing.Exporter),
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Writer:      os.Stdout,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to set up tracing")
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	lgr.Info().Bool("enabled", provider.Enabled()).Str("exporter", cfg.Tracing.Exporter).Msg("Tracing configured")
	return provider, nil
}

// CurrentQuarter returns the quarter configured as the default catalog view.
func CurrentQuarter(cfg *config.Config) (models.Quarter, error) {
	season, ok := models.ParseSeason(cfg.Catalog.Season)
	if !ok {
		return models.Quarter{}, fmt.Errorf("unknown catalog season %q", cfg.Catalog.Season)
	}
	return models.Quarter{Year: cfg.Catalog.Year, Season: season}, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
// database only needs to answer pings; repositories run against conn.
func BuildDependencies(cfg *config.Config, conn appRepos.DBTX, database appControllers.HealthChecker, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	current, err := CurrentQuarter(cfg)
	if err != nil {
		return nil, err
	}

	deps.Repos = appRepos.NewRepositories(conn)

	tokenLifetime := helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: tokenLifetime,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.OfferingService = appServices.NewOfferingService(
		deps.Repos.OfferingRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.RegistrationRepository,
		current,
		lgr.With().Str("service", "offerings").Logger(),
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.OfferingRepository,
		deps.Repos.StudentRepository,
		deps.Repos.RegistrationRepository,
		lgr.With().Str("service", "registrations").Logger(),
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		lgr.With().Str("service", "auth").Logger(),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Session.CookieName)

	deps.PageController = appControllers.NewPageController(deps.OfferingService, deps.RegistrationService, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, appControllers.SessionConfig{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
		Lifetime:   tokenLifetime,
	}, lgr)
	deps.OfferingController = appControllers.NewOfferingController(deps.OfferingService, deps.RegistrationService)
	deps.HealthController = appControllers.NewHealthController(database)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.Tracing(),
		appMiddleware.RequestLogger(),
		appMiddleware.SecurityHeaders(),
	)
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupRouter(router,
		deps.PageController,
		deps.AuthController,
		deps.OfferingController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router, nil
}
