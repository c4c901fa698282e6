// Package auth exposes the login endpoint.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hawkker/loyalty/pkg/domain/user"
	authsvc "github.com/hawkker/loyalty/pkg/service/auth"
	"github.com/hawkker/loyalty/webapi/common"
)

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/login", Login(authSvc))
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate with email and password
// @Tags auth
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrUserUnauthorized) {
				return common.ProblemDetailsJSON(c, "Invalid email or password", nil,
					"Email or password is incorrect", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		token, err := authSvc.GenerateToken(c.Context(), u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
