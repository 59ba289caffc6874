//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	identityhttp "github.com/warewise/server/internal/adapter/inbound/http/identity"
	orghttp "github.com/warewise/server/internal/adapter/inbound/http/organization"
	workspacehttp "github.com/warewise/server/internal/adapter/inbound/http/workspace"
	"github.com/warewise/server/internal/domain/identity"
	"github.com/warewise/server/internal/domain/organization"
	"github.com/warewise/server/internal/domain/session"
	"github.com/warewise/server/internal/shared/config"
	"github.com/warewise/server/internal/shared/metrics"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      goredis.UniversalClient
	ZapLogger  *zap.Logger
	Metrics    *metrics.Metrics
	JWTManager *identity.JWTManager

	// Domains
	IdentityDomain     *identity.Domain
	OrganizationDomain *organization.Domain
	Resolver           *session.Resolver

	// HTTP Handlers
	IdentityHandler  *identityhttp.Handler
	OrgHandler       *orghttp.Handler
	WorkspaceHandler *workspacehttp.Handler
}

// InitializeDependencies creates all dependencies using Wire.
func InitializeDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	wire.Build(
		AppSet,
		wire.Struct(new(Dependencies), "*"),
	)
	return nil, nil, nil
}
