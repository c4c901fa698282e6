// Package settings exposes the read-only settings endpoint clients use to
// render redemption limits and reward amounts.
package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/middleware"
	"github.com/hawkker/loyalty/pkg/service/loyalty"
	"github.com/hawkker/loyalty/webapi/common"
)

// SettingsResponse is the client-facing subset of the settings row.
// Operational tunables stay internal.
type SettingsResponse struct {
	OneCoinToPounds        string `json:"one_coin_to_pounds"`
	MinimumCoinsRedeemable string `json:"minimum_coins_redeemable"`
	MaximumCoinsRedeemable string `json:"maximum_coins_redeemable"`
	CoinsIncrementalValue  string `json:"coins_incremental_value"`
	ScanQRPoints           int    `json:"scan_qr_points"`
	ReviewPoints           int    `json:"review_points"`
	DietaryPreference      int    `json:"dietary_preference"`
}

func Routes(app *fiber.App, loyaltySvc *loyalty.Service, cfg *config.App) {
	app.Get("/settings", middleware.JwtProtected(*cfg.Auth.Jwt), GetSettings(loyaltySvc))
}

// GetSettings returns the authoritative settings row.
func GetSettings(loyaltySvc *loyalty.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loyaltySvc.GetSettings(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get settings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Settings", SettingsResponse{
			OneCoinToPounds:        s.OneCoinToPounds.String(),
			MinimumCoinsRedeemable: s.MinimumCoinsRedeemable.String(),
			MaximumCoinsRedeemable: s.MaximumCoinsRedeemable.String(),
			CoinsIncrementalValue:  s.CoinsIncrementalValue.String(),
			ScanQRPoints:           s.ScanQRPoints,
			ReviewPoints:           s.ReviewPoints,
			DietaryPreference:      s.DietaryPreference,
		})
	}
}
