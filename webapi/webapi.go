// Package webapi provides the HTTP surface of the loyalty service. It is
// organized into sub-packages per audience:
// - eater: transaction history, redemption requests, dietary preference
// - vendor: redemption completion and vendor ledger
// - purchase, review: the earn endpoints
// - admin: staff reporting, adjustments and settings
// - auth, user: login and registration
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hawkker/loyalty/pkg/app"
	adminweb "github.com/hawkker/loyalty/webapi/admin"
	authweb "github.com/hawkker/loyalty/webapi/auth"
	"github.com/hawkker/loyalty/webapi/common"
	eaterweb "github.com/hawkker/loyalty/webapi/eater"
	purchaseweb "github.com/hawkker/loyalty/webapi/purchase"
	reviewweb "github.com/hawkker/loyalty/webapi/review"
	settingsweb "github.com/hawkker/loyalty/webapi/settings"
	userweb "github.com/hawkker/loyalty/webapi/user"
	vendorweb "github.com/hawkker/loyalty/webapi/vendor"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	loyaltySvc := a.LoyaltyService
	userSvc := a.UserService
	authSvc := a.AuthService

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falling back to X-Real-IP
	// or the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Hawkker Loyalty API is running! 🚀")
		},
	)

	authweb.Routes(fiberApp, authSvc)
	userweb.Routes(fiberApp, userSvc)
	settingsweb.Routes(fiberApp, loyaltySvc, a.Config)
	eaterweb.Routes(fiberApp, loyaltySvc, authSvc, a.Config)
	vendorweb.Routes(fiberApp, loyaltySvc, authSvc, a.Config)
	purchaseweb.Routes(fiberApp, loyaltySvc, authSvc, a.Config)
	reviewweb.Routes(fiberApp, loyaltySvc, authSvc, a.Config)
	adminweb.Routes(fiberApp, loyaltySvc, a.Config)
	return fiberApp
}
