package router

import (
	"github.com/neurocare/neurocare-api/internal/application"
	"github.com/neurocare/neurocare-api/internal/container"
	pginfra "github.com/neurocare/neurocare-api/internal/infrastructure/postgres"
	handlers "github.com/neurocare/neurocare-api/internal/interface/http"
	"github.com/neurocare/neurocare-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	repo := pginfra.NewAccountRepository(container.GetPGPool())

	accountSvc := application.NewAccountService(
		repo,
		container.GetTokens(),
		container.GetBlacklist(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		container.GetES(),
		cfg.ESAccountsIndex,
	)
	wellnessSvc := application.NewWellnessService(
		repo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetLogger(),
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(accountSvc, container.GetLogger())))
	r.Add(modules.NewWellnessModule(handlers.NewWellnessHandler(wellnessSvc, container.GetLogger())))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
