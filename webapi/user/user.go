// Package user exposes account registration.
package user

import (
	"github.com/gofiber/fiber/v2"

	usersvc "github.com/hawkker/loyalty/pkg/service/user"
	"github.com/hawkker/loyalty/webapi/common"
)

func Routes(app *fiber.App, userSvc *usersvc.Service) {
	app.Post("/user", CreateUser(userSvc))
}

// CreateUser registers a new eater or vendor account.
// @Summary Register account
// @Tags user
// @Router /user [post]
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateUserInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.CreateUser(c.Context(), input.Name, input.Email, input.Password, parseType(input.UserType))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User created", toResponse(u))
	}
}
