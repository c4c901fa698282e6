// Package middleware holds the Fiber middleware guarding protected routes.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/user"
)

// JwtProtected rejects requests without a valid bearer token. The parsed
// token is stored in c.Locals("user") for handlers to read.
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
}

// RequireType allows only the given user types past. Must run after
// JwtProtected.
func RequireType(types ...user.Type) fiber.Handler {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t.String()] = true
	}
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
		}
		userType, _ := claims["user_type"].(string)
		if !allowed[userType] {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"status": "error", "message": "Insufficient permissions"})
		}
		return c.Next()
	}
}
