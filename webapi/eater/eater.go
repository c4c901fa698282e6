// Package eater exposes the eater-facing ledger endpoints: transaction
// history, redemption requests and the dietary-preference reward.
package eater

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/middleware"
	authsvc "github.com/hawkker/loyalty/pkg/service/auth"
	"github.com/hawkker/loyalty/pkg/service/loyalty"
	"github.com/hawkker/loyalty/webapi/common"
)

// Routes registers the eater endpoints:
//   - GET  /eater/transactions : ledger history with paired vendor names.
//   - GET  /eater/balance      : current coin balance.
//   - POST /eater/transaction  : request a redemption, returns the QR id.
//   - POST /eater/dietary      : save dietary preferences, rewards once.
func Routes(app *fiber.App, loyaltySvc *loyalty.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(*cfg.Auth.Jwt)
	eaterOnly := middleware.RequireType(user.Eater, user.Guest)
	app.Get("/eater/transactions", protected, eaterOnly, ListTransactions(loyaltySvc, authSvc))
	app.Get("/eater/balance", protected, eaterOnly, GetBalance(loyaltySvc, authSvc))
	app.Post("/eater/transaction", protected, eaterOnly, RequestRedemption(loyaltySvc, authSvc))
	app.Post("/eater/dietary", protected, eaterOnly, SetDietaryPreference(loyaltySvc, authSvc))
}

// ListTransactions returns the eater's ledger entries, newest first.
func ListTransactions(loyaltySvc *loyalty.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserId(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		entries, err := loyaltySvc.ListTransactions(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to list transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		out := make([]TransactionResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, toResponse(e))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", out)
	}
}

// GetBalance returns the eater's coin balance.
func GetBalance(loyaltySvc *loyalty.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserId(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		coins, err := loyaltySvc.Balance(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance", fiber.Map{"coins": coins})
	}
}

// RequestRedemption creates a pending debit and hands back its QR id for
// the vendor to scan.
// @Summary Request a redemption
// @Tags eater
// @Router /eater/transaction [post]
func RequestRedemption(loyaltySvc *loyalty.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserId(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[RedeemInput](c)
		if input == nil {
			return err // error response already written
		}
		entry, err := loyaltySvc.RequestRedemption(c.Context(), userID, input.Coins)
		if err != nil {
			log.Errorf("Failed to request redemption: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to request redemption", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Redemption requested",
			toResponse(loyalty.Entry{Transaction: entry}))
	}
}

// SetDietaryPreference saves the eater's dietary preferences. The first call
// rewards the configured points; later calls change nothing.
func SetDietaryPreference(loyaltySvc *loyalty.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserId(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		entry, err := loyaltySvc.SetDietaryPreference(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set dietary preference", err)
		}
		if entry == nil {
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Dietary preference saved", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Dietary preference rewarded",
			toResponse(loyalty.Entry{Transaction: entry}))
	}
}
