// Package testutils builds a fully wired Fiber app over the in-memory unit
// of work for handler tests.
package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	infraeventbus "github.com/hawkker/loyalty/infra/eventbus"
	"github.com/hawkker/loyalty/pkg/app"
	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/testutils"
	"github.com/hawkker/loyalty/webapi"
)

// Env is a running test app plus handles into its fakes and seeded users.
type Env struct {
	App    *fiber.App
	Store  *testutils.MemoryStore
	Cache  *testutils.SpyBalanceCache
	Bus    *infraeventbus.MemoryEventBus
	Config *config.App

	Eater  *user.User
	Vendor *user.User
	Admin  *user.User
}

// TestConfig returns the configuration the test app runs with.
func TestConfig() *config.App {
	return &config.App{
		Env: "test",
		Server: &config.Server{
			Scheme: "http",
			Host:   "localhost",
			Port:   3000,
		},
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt:      &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		},
		BalanceCache: &config.BalanceCache{Enabled: true, TTL: time.Minute},
		EventBus:     &config.EventBus{Driver: "memory"},
		RateLimit:    &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

// TestSettings returns the settings every Env starts with: 1 coin = £0.05,
// redemptions of 50..500 coins, rewards of 10/5/20.
func TestSettings() *ledger.Settings {
	return &ledger.Settings{
		ID:                     uuid.New(),
		OneCoinToPounds:        decimal.RequireFromString("0.05"),
		MinimumCoinsRedeemable: decimal.NewFromInt(50),
		MaximumCoinsRedeemable: decimal.NewFromInt(500),
		CoinsIncrementalValue:  decimal.NewFromInt(50),
		ScanQRPoints:           10,
		ReviewPoints:           5,
		DietaryPreference:      20,
	}
}

// NewEnv builds the app with seeded settings, an eater holding 200 coins,
// a vendor and an admin. Passwords are not hashed; login tests create
// their own users through user.New.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	store := testutils.NewMemoryStore()
	store.Settings = append(store.Settings, TestSettings())

	eater := &user.User{
		ID:    uuid.New(),
		Name:  "Ada",
		Email: "ada@example.com",
		Type:  user.Eater,
		Coins: 200,
	}
	vendor := &user.User{
		ID:    uuid.New(),
		Name:  "Falafel Hut",
		Email: "orders@falafelhut.example.com",
		Type:  user.Vendor,
	}
	admin := &user.User{
		ID:    uuid.New(),
		Name:  "Staff",
		Email: "staff@hawkker.example.com",
		Type:  user.Admin,
	}
	store.Users[eater.ID] = eater
	store.Users[vendor.ID] = vendor
	store.Users[admin.ID] = admin

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := infraeventbus.NewWithMemory(logger)
	spyCache := testutils.NewSpyBalanceCache()
	cfg := TestConfig()

	a := app.New(&app.Deps{
		Uow:          testutils.NewMemoryUoW(store),
		EventBus:     bus,
		BalanceCache: spyCache,
		Logger:       logger,
	}, cfg)

	return &Env{
		App:    webapi.SetupApp(a),
		Store:  store,
		Cache:  spyCache,
		Bus:    bus,
		Config: cfg,
		Eater:  eater,
		Vendor: vendor,
		Admin:  admin,
	}
}

// Request performs a request against the test app.
func (e *Env) Request(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()
	return testutils.MakeRequest(t, e.App, method, path, body, token)
}

// Token mints a JWT for the given user.
func (e *Env) Token(t *testing.T, u *user.User) string {
	t.Helper()
	return testutils.MintToken(t, e.Config.Auth.Jwt, u)
}
