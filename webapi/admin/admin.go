// Package admin exposes the staff endpoints: the redemption report, balance
// adjustments, voiding stuck redemptions, reconciliation and settings.
package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/middleware"
	"github.com/hawkker/loyalty/pkg/service/loyalty"
	"github.com/hawkker/loyalty/webapi/common"
)

// Routes registers the admin endpoints:
//   - GET  /admin/transaction-log       : paired debit/credit report.
//   - POST /admin/user/:id/points       : set a user's balance to a target.
//   - POST /admin/transaction/:id/void  : fail a stuck pending redemption.
//   - GET  /admin/user/:id/reconcile    : ledger-vs-cache drift report.
//   - POST /admin/settings              : append a new settings row.
func Routes(app *fiber.App, loyaltySvc *loyalty.Service, cfg *config.App) {
	protected := middleware.JwtProtected(*cfg.Auth.Jwt)
	adminOnly := middleware.RequireType(user.Admin)
	app.Get("/admin/transaction-log", protected, adminOnly, TransactionLog(loyaltySvc))
	app.Post("/admin/user/:id/points", protected, adminOnly, AdjustPoints(loyaltySvc))
	app.Post("/admin/transaction/:id/void", protected, adminOnly, VoidTransaction(loyaltySvc))
	app.Get("/admin/user/:id/reconcile", protected, adminOnly, Reconcile(loyaltySvc))
	app.Post("/admin/settings", protected, adminOnly, CreateSettings(loyaltySvc))
}

// TransactionLog returns the paired debit/credit redemption report.
func TransactionLog(loyaltySvc *loyalty.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		offset := c.QueryInt("offset", 0)
		entries, err := loyaltySvc.TransactionLog(c.Context(), limit, offset)
		if err != nil {
			log.Errorf("Failed to read transaction log: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to read transaction log", err)
		}
		out := make([]LogEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, toLogResponse(e))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction log", out)
	}
}

// AdjustPoints sets the user's balance to the given target and records the
// correction in the ledger.
func AdjustPoints(loyaltySvc *loyalty.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[AdjustPointsInput](c)
		if input == nil {
			return err // error response already written
		}
		entry, err := loyaltySvc.AdjustBalance(c.Context(), userID, input.Points, input.Note)
		if err != nil {
			log.Errorf("Failed to adjust balance: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to adjust balance", err)
		}
		if entry == nil {
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance unchanged", nil)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance adjusted", fiber.Map{
			"transaction_id": entry.ID,
			"type":           entry.Type.String(),
			"coins":          entry.Coins,
			"balance":        entry.Balance,
		})
	}
}

// VoidTransaction marks a pending redemption debit as failed.
func VoidTransaction(loyaltySvc *loyalty.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		if err := loyaltySvc.VoidPending(c.Context(), txID); err != nil {
			log.Errorf("Failed to void transaction: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to void transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction voided", nil)
	}
}

// Reconcile reports the drift between a user's cached balance and the sum
// of their settled ledger entries. ?repair=true rewrites the cached column.
func Reconcile(loyaltySvc *loyalty.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		repair := c.QueryBool("repair", false)
		result, err := loyaltySvc.Reconcile(c.Context(), userID, repair)
		if err != nil {
			log.Errorf("Failed to reconcile: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to reconcile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Reconciliation", ReconcileResponse{
			UserID:      result.UserID,
			CachedCoins: result.CachedCoins,
			LedgerCoins: result.LedgerCoins,
			Drift:       result.Drift,
			Repaired:    result.Repaired,
		})
	}
}

// CreateSettings appends a new settings row, which becomes authoritative
// immediately.
func CreateSettings(loyaltySvc *loyalty.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateSettingsInput](c)
		if input == nil {
			return err // error response already written
		}
		s, err := input.toDomain()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid settings", err, fiber.StatusBadRequest)
		}
		if err := s.Validate(); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid settings", err, fiber.StatusBadRequest)
		}
		if err := loyaltySvc.CreateSettings(c.Context(), s); err != nil {
			log.Errorf("Failed to create settings: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create settings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Settings created", fiber.Map{"id": s.ID})
	}
}
