// Package initializer builds the infrastructure dependencies from
// configuration.
package initializer

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hawkker/loyalty/infra"
	infracache "github.com/hawkker/loyalty/infra/cache"
	infraeventbus "github.com/hawkker/loyalty/infra/eventbus"
	infrarepository "github.com/hawkker/loyalty/infra/repository"
	"github.com/hawkker/loyalty/pkg/app"
	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/eventbus"
)

const (
	eventStream = "loyalty-events"
	eventGroup  = "loyalty"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		return nil, err
	}

	deps.Uow = infrarepository.NewUoW(db)

	var bus eventbus.Bus
	if cfg.EventBus.Driver == "redis" {
		bus, err = infraeventbus.NewWithRedis(
			cfg.Redis.URL,
			eventStream,
			eventGroup,
			map[string]func() eventbus.Event{
				ledger.EventTypeRedemptionCompleted: func() eventbus.Event {
					return &ledger.RedemptionCompleted{}
				},
			},
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis event bus: %w", err)
		}
	} else {
		bus = infraeventbus.NewWithMemory(logger)
	}
	deps.EventBus = bus

	if cfg.BalanceCache.Enabled {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		deps.BalanceCache = infracache.NewRedisBalanceCache(opt, cfg.BalanceCache.Prefix, logger)
	}

	return
}
