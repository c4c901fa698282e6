package loyalty

import (
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/domain/user"
)

// validateLimits checks a redemption amount against the configured minimum
// and maximum. The incremental value is a client-side picker hint and is not
// enforced here. Run again at completion time: the authoritative settings
// row may have changed since the QR code was issued.
func validateLimits(settings *ledger.Settings, coins int) error {
	if !settings.WithinRedeemableLimits(coins) {
		return ledger.ErrInvalidAmount
	}
	return nil
}

// validateBalance checks that the eater can cover the redemption. Pending
// debits do not reserve coins, so the full balance is compared.
func validateBalance(u *user.User, coins int) error {
	if u.Coins < coins {
		return ledger.ErrInsufficientCoins
	}
	return nil
}
