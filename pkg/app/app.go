// Package app assembles the services from their dependencies.
package app

import (
	"log/slog"

	"github.com/hawkker/loyalty/pkg/cache"
	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/eventbus"
	"github.com/hawkker/loyalty/pkg/notification"
	"github.com/hawkker/loyalty/pkg/repository"
	"github.com/hawkker/loyalty/pkg/service/auth"
	"github.com/hawkker/loyalty/pkg/service/loyalty"
	"github.com/hawkker/loyalty/pkg/service/user"
)

// Deps contains the infrastructure dependencies the services are built from.
type Deps struct {
	Uow          repository.UnitOfWork
	EventBus     eventbus.Bus
	BalanceCache cache.BalanceCache
	Pusher       notification.Pusher
	Logger       *slog.Logger
}

type App struct {
	Deps           *Deps
	Config         *config.App
	AuthService    *auth.Service
	UserService    *user.Service
	LoyaltyService *loyalty.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	authMap := map[string]func() *auth.Service{
		"jwt": func() *auth.Service {
			return auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
		},
	}
	if authFactory, ok := authMap[cfg.Auth.Strategy]; ok {
		app.AuthService = authFactory()
	} else {
		app.AuthService = auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	}
	app.UserService = user.New(deps.Uow, deps.Logger)
	app.LoyaltyService = loyalty.NewWithCacheTTL(
		deps.Uow, deps.EventBus, deps.BalanceCache, cfg.BalanceCache.TTL, deps.Logger)
	return app
}

// setupEventBus registers the post-commit event handlers.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	pusher := a.Deps.Pusher
	if pusher == nil {
		pusher = &notification.LogPusher{Logger: a.Deps.Logger}
	}
	a.Deps.EventBus.Register(
		ledger.EventTypeRedemptionCompleted,
		notification.RedemptionCompletedHandler(pusher, a.Deps.Logger),
	)
}
