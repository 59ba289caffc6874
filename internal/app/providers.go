package app

import (
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
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
	"github.com/warewise/server/internal/shared/cache"
	"github.com/warewise/server/internal/shared/config"
	"github.com/warewise/server/internal/shared/database"
	"github.com/warewise/server/internal/shared/logger"
	"github.com/warewise/server/internal/shared/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideDatabase,
	ProvideRedisClient,
	ProvideZapLogger,
	ProvideMetrics,
)

// ProvideDatabase creates a database connection and runs migrations.
func ProvideDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ProvideRedisClient creates a Redis client.
func ProvideRedisClient(cfg *config.Config, zapLog *zap.Logger) goredis.UniversalClient {
	if cfg.Redis.Address == "" {
		return nil
	}
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		zapLog.Warn("Redis connection failed, continuing without cache", zap.Error(err))
		return nil
	}
	return client
}

// ProvideZapLogger creates a zap logger instance.
func ProvideZapLogger(cfg *config.Config) *zap.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideMetrics creates a metrics instance.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New("warewise")
}

// ===== Identity Domain Providers =====

// IdentitySet provides identity domain dependencies.
var IdentitySet = wire.NewSet(
	ProvideUserRepository,
	ProvideAccountRepository,
	ProvideOAuthProviders,
	ProvideOAuthStateStore,
	ProvideJWTManager,
	identity.NewDomain,
	identityhttp.NewHandler,
)

// ProvideUserRepository creates the user repository.
func ProvideUserRepository(db *gorm.DB) identity.UserRepository {
	return postgres.NewUserAdapter(db)
}

// ProvideAccountRepository creates the linked-account repository.
func ProvideAccountRepository(db *gorm.DB) identity.AccountRepository {
	return postgres.NewAccountAdapter(db)
}

// ProvideOAuthProviders configures the enabled social login providers.
func ProvideOAuthProviders(cfg *config.Config) []identity.OAuthProvider {
	var providers []identity.OAuthProvider
	if cfg.OAuth.Google.IsConfigured() {
		providers = append(providers, oauth.NewGoogleProvider(&oauth.Config{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
		}))
	}
	return providers
}

// ProvideOAuthStateStore creates the OAuth state store.
func ProvideOAuthStateStore(redis goredis.UniversalClient) identity.StateStore {
	if redis == nil {
		return oauth.NewInMemoryStateStore()
	}
	return redisadapter.NewOAuthStateStore(redis)
}

// ProvideJWTManager creates the session token manager.
func ProvideJWTManager(cfg *config.Config) *identity.JWTManager {
	return identity.NewJWTManager(&identity.JWTConfig{
		Secret: cfg.Auth.JWTSecret,
		Expiry: cfg.Auth.SessionExpiry,
		Issuer: "warewise",
	})
}

// ===== Organization Domain Providers =====

// OrganizationSet provides organization domain dependencies.
var OrganizationSet = wire.NewSet(
	ProvideOrganizationRepository,
	ProvideMembershipRepository,
	ProvideInvitationRepository,
	ProvideUserLookup,
	ProvideTransactionRunner,
	ProvideGuard,
	ProvideNotifier,
	ProvideLogoStore,
	ProvideOrganizationConfig,
	organization.NewDomain,
	orghttp.NewHandler,
)

// ProvideOrganizationRepository creates the organization repository.
func ProvideOrganizationRepository(db *gorm.DB) organization.OrganizationRepository {
	return postgres.NewOrganizationAdapter(db)
}

// ProvideMembershipRepository creates the membership repository.
func ProvideMembershipRepository(db *gorm.DB) organization.MembershipRepository {
	return postgres.NewMembershipAdapter(db)
}

// ProvideInvitationRepository creates the invitation repository.
func ProvideInvitationRepository(db *gorm.DB) organization.InvitationRepository {
	return postgres.NewInvitationAdapter(db)
}

// ProvideUserLookup creates the user lookup used for invitation checks.
func ProvideUserLookup(db *gorm.DB) organization.UserLookup {
	return postgres.NewUserAdapter(db)
}

// ProvideTransactionRunner creates the transaction runner.
func ProvideTransactionRunner(db *gorm.DB) organization.TransactionRunner {
	return postgres.NewTransactionAdapter(db)
}

// ProvideGuard creates the authorization guard.
func ProvideGuard(db *gorm.DB, zapLog *zap.Logger, m *metrics.Metrics) *access.Guard {
	return access.NewGuard(postgres.NewMembershipAdapter(db), access.DefaultPolicy(), zapLog).WithRecorder(m)
}

// ProvideNotifier creates the invitation mailer.
func ProvideNotifier(cfg *config.Config, zapLog *zap.Logger) organization.Notifier {
	return smtp.NewNotifier(&smtp.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, zapLog)
}

// ProvideLogoStore creates the logo object store, or nil when storage is not
// configured.
func ProvideLogoStore(cfg *config.Config) (organization.LogoStore, error) {
	storageCfg := &s3.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	}
	if !storageCfg.IsConfigured() {
		return nil, nil
	}
	return s3.NewLogoStore(storageCfg)
}

// ProvideOrganizationConfig maps application configuration onto the domain.
func ProvideOrganizationConfig(cfg *config.Config) *organization.Config {
	return &organization.Config{
		OrganizationLimit: cfg.Organization.OrganizationLimit,
		MembershipLimit:   cfg.Organization.MembershipLimit,
		InvitationExpiry:  cfg.Organization.InvitationExpiry,
		MaxLogoBytes:      cfg.Organization.MaxLogoBytes,
		BaseURL:           cfg.Server.AppBaseURL,
	}
}

// ===== Workspace Providers =====

// WorkspaceSet provides workspace resolution dependencies.
var WorkspaceSet = wire.NewSet(
	ProvideOrganizationLister,
	ProvideActiveOrganizationStore,
	session.NewResolver,
	workspacehttp.NewHandler,
)

// ProvideOrganizationLister creates the membership-ordered organization lister.
func ProvideOrganizationLister(db *gorm.DB) session.OrganizationLister {
	return postgres.NewOrganizationAdapter(db)
}

// ProvideActiveOrganizationStore creates the session workspace pointer store.
func ProvideActiveOrganizationStore(redis goredis.UniversalClient) session.ActiveOrganizationStore {
	if redis == nil {
		return session.NewMemoryStore()
	}
	return redisadapter.NewActiveOrganizationStore(redis)
}

// ===== App Set =====

// AppSet aggregates all provider sets.
var AppSet = wire.NewSet(
	InfraSet,
	IdentitySet,
	OrganizationSet,
	WorkspaceSet,
)
