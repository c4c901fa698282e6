package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings is the point-in-time configuration snapshot loaded at the start
// of every balance-affecting operation. Multiple rows may exist in storage;
// the most recently created one is authoritative. Application code never
// mutates a settings row.
type Settings struct {
	ID uuid.UUID

	// OneCoinToPounds converts coins to pounds sterling.
	OneCoinToPounds decimal.Decimal
	// MinimumCoinsRedeemable and MaximumCoinsRedeemable bound a single
	// redemption request.
	MinimumCoinsRedeemable decimal.Decimal
	MaximumCoinsRedeemable decimal.Decimal
	// CoinsIncrementalValue is the step the client UI offers between the
	// redeemable bounds.
	CoinsIncrementalValue decimal.Decimal

	// Fixed reward amounts.
	ScanQRPoints      int
	ReviewPoints      int
	DietaryPreference int

	// Operational tunables carried on the same row.
	EaterReviewReminder                int
	IncompleteProfileEmailReminderDays int
	MinimumReviewsVendor               int
	SearchRadiusInMiles                int

	CreatedAt time.Time
}

// Validate checks the invariants staff-entered settings must hold.
func (s *Settings) Validate() error {
	if s.OneCoinToPounds.IsNegative() {
		return errors.New("one coin to pounds must not be negative")
	}
	if s.MinimumCoinsRedeemable.IsNegative() || s.MaximumCoinsRedeemable.IsNegative() {
		return errors.New("redeemable limits must not be negative")
	}
	if s.MinimumCoinsRedeemable.GreaterThan(s.MaximumCoinsRedeemable) {
		return errors.New("minimum coins redeemable exceeds maximum")
	}
	if s.ScanQRPoints < 0 || s.ReviewPoints < 0 || s.DietaryPreference < 0 {
		return errors.New("reward points must not be negative")
	}
	return nil
}

// Convert returns the pound value of the given number of coins at this
// snapshot's rate.
func (s *Settings) Convert(coins int) decimal.Decimal {
	return s.OneCoinToPounds.Mul(decimal.NewFromInt(int64(coins)))
}

// WithinRedeemableLimits reports whether coins falls inside the configured
// redeemable bounds, inclusive.
func (s *Settings) WithinRedeemableLimits(coins int) bool {
	c := decimal.NewFromInt(int64(coins))
	return c.GreaterThanOrEqual(s.MinimumCoinsRedeemable) &&
		c.LessThanOrEqual(s.MaximumCoinsRedeemable)
}
