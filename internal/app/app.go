package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	identityhttp "github.com/warewise/server/internal/adapter/inbound/http/identity"
	orghttp "github.com/warewise/server/internal/adapter/inbound/http/organization"
	workspacehttp "github.com/warewise/server/internal/adapter/inbound/http/workspace"
	"github.com/warewise/server/internal/adapter/outbound/oauth"
	"github.com/warewise/server/internal/adapter/outbound/postgres"
	redisadapter "github.com/warewise/server/internal/adapter/outbound/redis"
	"github.com/warewise/server/internal/adapter/outbound/s3"
	"github.com/warewise/server/internal/adapter/outbound/smtp"
	"github.com/warewise/server/internal/domain/access"
	"github.com/warewise/server/internal/domain/identity"
	"github.com/warewise/server/internal/domain/organization"
	"github.com/warewise/server/internal/domain/session"
	sharedcache "github.com/warewise/server/internal/shared/cache"
	"github.com/warewise/server/internal/shared/config"
	"github.com/warewise/server/internal/shared/database"
	"github.com/warewise/server/internal/shared/logger"
	"github.com/warewise/server/internal/shared/metrics"
	"github.com/warewise/server/internal/shared/middleware"
)

// App represents the application.
type App struct {
	config  *config.Config
	db      *gorm.DB
	redis   redis.UniversalClient
	router  *gin.Engine
	logger  *zap.Logger
	metrics *metrics.Metrics

	jwtManager *identity.JWTManager

	// Domains
	identityDomain     *identity.Domain
	organizationDomain *organization.Domain
	resolver           *session.Resolver

	// Handlers
	identityHandler  *identityhttp.Handler
	orgHandler       *orghttp.Handler
	workspaceHandler *workspacehttp.Handler
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	app := &App{
		config:  cfg,
		logger:  log,
		metrics: metrics.New("warewise"),
	}

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	app.db = db

	// Initialize Redis (optional; in-memory fallbacks are used without it)
	if cfg.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis connection failed, using in-memory session state", zap.Error(err))
		} else {
			app.redis = redisClient
		}
	}

	if err := app.initDomains(); err != nil {
		return nil, fmt.Errorf("init domains: %w", err)
	}

	app.router = app.setupRouter()
	app.registerRoutes()

	return app, nil
}

// initDomains wires outbound adapters into the domain services.
func (a *App) initDomains() error {
	cfg := a.config

	// Postgres adapters
	users := postgres.NewUserAdapter(a.db)
	accounts := postgres.NewAccountAdapter(a.db)
	orgs := postgres.NewOrganizationAdapter(a.db)
	memberships := postgres.NewMembershipAdapter(a.db)
	invitations := postgres.NewInvitationAdapter(a.db)
	tx := postgres.NewTransactionAdapter(a.db)

	// Session token manager
	a.jwtManager = identity.NewJWTManager(&identity.JWTConfig{
		Secret: cfg.Auth.JWTSecret,
		Expiry: cfg.Auth.SessionExpiry,
		Issuer: "warewise",
	})

	// State stores: Redis when available, in-memory otherwise
	var oauthStates identity.StateStore
	var activeOrgs session.ActiveOrganizationStore
	if a.redis != nil {
		oauthStates = redisadapter.NewOAuthStateStore(a.redis)
		activeOrgs = redisadapter.NewActiveOrganizationStore(a.redis)
	} else {
		oauthStates = oauth.NewInMemoryStateStore()
		activeOrgs = session.NewMemoryStore()
	}

	// Social login providers
	var providers []identity.OAuthProvider
	if cfg.OAuth.Google.IsConfigured() {
		providers = append(providers, oauth.NewGoogleProvider(&oauth.Config{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
		}))
	}

	a.identityDomain = identity.NewDomain(users, accounts, providers, oauthStates, a.jwtManager, a.logger)

	// Authorization guard over the static role policy
	guard := access.NewGuard(memberships, access.DefaultPolicy(), a.logger).WithRecorder(a.metrics)

	// Invitation mailer
	notifier := smtp.NewNotifier(&smtp.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, a.logger)

	// Logo object storage (optional; logos stay inline without it)
	var logos organization.LogoStore
	storageCfg := &s3.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	}
	if storageCfg.IsConfigured() {
		store, err := s3.NewLogoStore(storageCfg)
		if err != nil {
			return fmt.Errorf("init logo store: %w", err)
		}
		logos = store
	}

	a.organizationDomain = organization.NewDomain(
		orgs,
		memberships,
		invitations,
		users,
		tx,
		notifier,
		logos,
		guard,
		&organization.Config{
			OrganizationLimit: cfg.Organization.OrganizationLimit,
			MembershipLimit:   cfg.Organization.MembershipLimit,
			InvitationExpiry:  cfg.Organization.InvitationExpiry,
			MaxLogoBytes:      cfg.Organization.MaxLogoBytes,
			BaseURL:           cfg.Server.AppBaseURL,
		},
		a.logger,
	)

	a.resolver = session.NewResolver(orgs, activeOrgs, a.logger)

	// Handlers
	a.identityHandler = identityhttp.NewHandler(a.identityDomain, a.metrics)
	a.orgHandler = orghttp.NewHandler(a.organizationDomain, a.metrics)
	a.workspaceHandler = workspacehttp.NewHandler(a.resolver, a.metrics)

	return nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// registerRoutes registers routes for all handlers.
func (a *App) registerRoutes() {
	v1 := a.router.Group("/api/v1")

	authRequired := middleware.RequireAuth(a.jwtManager)

	a.identityHandler.RegisterRoutes(v1, authRequired)
	a.orgHandler.RegisterRoutes(v1, authRequired)
	a.workspaceHandler.RegisterRoutes(v1, authRequired)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}

	if a.redis != nil {
		_ = a.redis.Close()
	}

	if a.db != nil {
		_ = database.Close(a.db)
	}
}
