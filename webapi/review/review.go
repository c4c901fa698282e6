// Package review exposes the purchase-rating endpoint.
package review

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/middleware"
	authsvc "github.com/hawkker/loyalty/pkg/service/auth"
	"github.com/hawkker/loyalty/pkg/service/loyalty"
	"github.com/hawkker/loyalty/webapi/common"
)

// CreateInput is the request body for POST /review.
type CreateInput struct {
	PurchaseID string `json:"purchase_id" validate:"required,uuid4"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=1024"`
}

// ReviewResponse carries the stored rating and the review reward.
type ReviewResponse struct {
	ID          uuid.UUID  `json:"id"`
	PurchaseID  uuid.UUID  `json:"purchase_id"`
	Rating      int        `json:"rating"`
	Comment     string     `json:"comment,omitempty"`
	RewardCoins int        `json:"reward_coins"`
	RewardTxID  *uuid.UUID `json:"reward_transaction_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func Routes(app *fiber.App, loyaltySvc *loyalty.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/review",
		middleware.JwtProtected(*cfg.Auth.Jwt),
		middleware.RequireType(user.Eater, user.Guest),
		CreateReview(loyaltySvc, authSvc))
}

// CreateReview rates a purchase. The first review of a purchase earns the
// review reward.
func CreateReview(loyaltySvc *loyalty.Service, authSvc *authsvc.Service) fiber.Handler {
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
		purchaseID, err := uuid.Parse(input.PurchaseID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid purchase ID", err, fiber.StatusBadRequest)
		}
		r, reward, err := loyaltySvc.RatePurchase(c.Context(), eaterID, purchaseID, input.Rating, input.Comment)
		if err != nil {
			log.Errorf("Failed to rate purchase: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to rate purchase", err)
		}
		resp := ReviewResponse{
			ID:         r.ID,
			PurchaseID: r.PurchaseID,
			Rating:     r.Score,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
		}
		if reward != nil {
			resp.RewardCoins = reward.Coins
			resp.RewardTxID = &reward.ID
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Review recorded", resp)
	}
}
