package router

import (
	"github.com/oksasatya/streamchat-api/internal/application"
	"github.com/oksasatya/streamchat-api/internal/container"
	pginfra "github.com/oksasatya/streamchat-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/streamchat-api/internal/interface/http"
	"github.com/oksasatya/streamchat-api/internal/router/modules"
)

// InitModules builds the services from container singletons and registers
// every feature module with the router registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	contacts := pginfra.NewContactRepository(pool)

	authSvc := application.NewAuthService(
		users,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESUsersIndex,
		logger,
	)
	contactSvc := application.NewContactService(contacts, users, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), users, container.GetJWT()))
	r.Add(modules.NewContactModule(handlers.NewContactHandler(contactSvc, logger), users, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
