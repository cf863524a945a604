package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/provely/server/cmd/server/docs" // swagger docs
	"github.com/provely/server/internal/module/invitation"
	"github.com/provely/server/internal/module/mail"
	"github.com/provely/server/internal/module/notification"
	"github.com/provely/server/internal/module/profile"
	"github.com/provely/server/internal/module/questionbank"
	"github.com/provely/server/internal/module/reconciliation"
	"github.com/provely/server/internal/module/reputation"
	"github.com/provely/server/internal/module/settings"
	"github.com/provely/server/internal/module/user"
	"github.com/provely/server/internal/realtime"
	sharedcache "github.com/provely/server/internal/shared/cache"
	"github.com/provely/server/internal/shared/config"
	"github.com/provely/server/internal/shared/database"
	"github.com/provely/server/internal/shared/events"
	"github.com/provely/server/internal/shared/logger"
	sharedmiddleware "github.com/provely/server/internal/shared/middleware"
	"github.com/provely/server/internal/utils/metrics"
	"github.com/provely/server/internal/utils/middleware"
)

// App represents the application.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     redis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	// Event infrastructure
	eventBus *events.Bus

	// Realtime gateway
	gateway *realtime.Gateway

	// Handlers
	userHandler         *user.Handler
	invitationHandler   *invitation.Handler
	notificationHandler *notification.Handler
	settingsHandler     *settings.Handler

	// Token service doubles as the auth middleware validator
	tokens *user.TokenService

	// Admin gate for the platform settings endpoints
	admins *middleware.AdminAuthorizer
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	// Initialize logger
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	// Initialize zap logger for modules that use zap
	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New("provely"),
	}

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	app.db = db

	if err := app.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	// Initialize Redis (optional)
	if cfg.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
		if err != nil {
			// Redis is optional, log warning but continue
			log.Warn("redis connection failed", "error", err)
		} else {
			app.redis = redisClient
		}
	}

	// Initialize router
	app.router = app.setupRouter()

	// Initialize modules
	if err := app.initModules(); err != nil {
		return nil, fmt.Errorf("init modules: %w", err)
	}

	// Register module routes
	app.registerRoutes()

	return app, nil
}

// migrate runs schema migrations for all module models.
func (a *App) migrate() error {
	return a.db.AutoMigrate(
		&user.User{},
		&profile.SkillEntry{},
		&profile.Employment{},
		&profile.ClientProject{},
		&profile.Project{},
		&profile.ProjectMember{},
		&profile.Team{},
		&profile.TeamMember{},
		&profile.Connection{},
		&questionbank.Question{},
		&questionbank.Answer{},
		&questionbank.UserAnswer{},
		&invitation.Invitation{},
		&notification.Notification{},
		&settings.PlatformSettings{},
	)
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	// Set Gin mode based on environment
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Apply global middleware
	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(sharedmiddleware.Metrics(a.metrics))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// initModules wires repositories, services and handlers together.
func (a *App) initModules() error {
	// Event bus for cross-module side effects
	a.eventBus = events.NewBus(a.zapLogger)

	// Token service (issues tokens and validates them for the auth middleware)
	a.tokens = user.NewTokenService(&user.JWTConfig{
		Secret:            a.config.Auth.JWTSecret,
		AccessTokenExpiry: a.config.Auth.AccessTokenExpiry,
	})
	a.admins = middleware.NewAdminAuthorizer(a.config.Auth.AdminEmails, nil)

	// Repositories
	userRepo := user.NewRepository(a.db)
	profileRepo := profile.NewRepository(a.db)
	questionRepo := questionbank.NewRepository(a.db)
	invitationRepo := invitation.NewRepository(a.db)
	notificationRepo := notification.NewRepository(a.db)
	settingsRepo := settings.NewRepository(a.db)

	// Realtime gateway pushes notifications to connected clients
	a.gateway = realtime.NewGateway(a.tokens, a.zapLogger)

	// Outbound email
	var mailer mail.Sender
	if a.config.Email.Provider == "smtp" {
		mailer = mail.NewSMTPSender(a.config.Email, a.metrics, a.zapLogger)
	} else {
		mailer = mail.NewNoOpSender(a.zapLogger)
	}

	// Services
	dispatcher := notification.NewDispatcher(notificationRepo, a.gateway, a.metrics, a.zapLogger)
	inboxService := notification.NewService(notificationRepo, a.zapLogger)
	settingsService := settings.NewService(settingsRepo, a.redis, a.config.Invites, a.metrics, a.zapLogger)
	userService := user.NewService(userRepo, a.tokens, a.eventBus, a.zapLogger)
	invitationService := invitation.NewService(
		invitationRepo,
		userRepo,
		profileRepo,
		questionRepo,
		settingsService,
		dispatcher,
		mailer,
		a.eventBus,
		a.metrics,
		a.config.Frontend.BaseURL,
		a.zapLogger,
	)

	// Event handlers
	a.eventBus.Register(reconciliation.NewService(invitationRepo, notificationRepo, profileRepo, a.zapLogger))
	a.eventBus.Register(reputation.NewService(invitationRepo, userRepo, a.zapLogger))

	// Handlers
	a.userHandler = user.NewHandler(userService)
	a.invitationHandler = invitation.NewHandler(invitationService)
	a.notificationHandler = notification.NewHandler(inboxService)
	a.settingsHandler = settings.NewHandler(settingsService)

	return nil
}

// registerRoutes registers routes for all modules.
func (a *App) registerRoutes() {
	// Socket endpoint lives outside the API group
	a.gateway.Register(a.router)

	// API v1 group
	v1 := a.router.Group("/api/v1")

	// Public routes (no auth required)
	public := v1.Group("")
	a.userHandler.RegisterPublicRoutes(public)
	a.invitationHandler.RegisterPublicRoutes(public)

	// Protected routes (requires auth)
	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(a.tokens))
	a.userHandler.RegisterRoutes(protected)
	a.invitationHandler.RegisterRoutes(protected)
	a.notificationHandler.RegisterRoutes(protected)

	// Admin routes (requires a configured admin account)
	admin := v1.Group("")
	admin.Use(middleware.RequireAuth(a.tokens), middleware.RequireAdmin(a.admins))
	a.settingsHandler.RegisterRoutes(admin)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	// Disconnect realtime clients
	if a.gateway != nil {
		a.gateway.Close()
	}

	// Sync zap logger
	if a.zapLogger != nil {
		_ = a.zapLogger.Sync()
	}

	// Close Redis connection
	if a.redis != nil {
		_ = a.redis.Close()
	}

	// Close database connection
	if a.db != nil {
		_ = database.Close(a.db)
	}
}
