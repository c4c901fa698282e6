// Package purchase exposes the purchase-recording endpoint the eater calls
// after scanning a vendor's stall QR code.
package purchase

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/middleware"
	authsvc "github.com/hawkker/loyalty/pkg/service/auth"
	"github.com/hawkker/loyalty/pkg/service/loyalty"
	"github.com/hawkker/loyalty/webapi/common"
)

// CreateInput is the request body for POST /purchase.
type CreateInput struct {
	VendorID string `json:"vendor_id" validate:"required,uuid4"`
	Amount   string `json:"amount" validate:"required"`
}

// PurchaseResponse carries the stored purchase and the scan reward.
type PurchaseResponse struct {
	ID          uuid.UUID  `json:"id"`
	VendorID    uuid.UUID  `json:"vendor_id"`
	Amount      string     `json:"amount"`
	RewardCoins int        `json:"reward_coins"`
	RewardTxID  *uuid.UUID `json:"reward_transaction_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func Routes(app *fiber.App, loyaltySvc *loyalty.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/purchase",
		middleware.JwtProtected(*cfg.Auth.Jwt),
		middleware.RequireType(user.Eater, user.Guest),
		CreatePurchase(loyaltySvc, authSvc))
}

// CreatePurchase records the sale and credits the scan reward.
func CreatePurchase(loyaltySvc *loyalty.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		eaterID, err := authSvc.GetCurrentUserId(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err // error response already written
		}
		vendorID, err := uuid.Parse(input.VendorID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid vendor ID", err, fiber.StatusBadRequest)
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		p, reward, err := loyaltySvc.RecordPurchase(c.Context(), eaterID, vendorID, amount)
		if err != nil {
			log.Errorf("Failed to record purchase: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to record purchase", err)
		}
		resp := PurchaseResponse{
			ID:        p.ID,
			VendorID:  p.VendorID,
			Amount:    p.Amount.String(),
			CreatedAt: p.CreatedAt,
		}
		if reward != nil {
			resp.RewardCoins = reward.Coins
			resp.RewardTxID = &reward.ID
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Purchase recorded", resp)
	}
}
