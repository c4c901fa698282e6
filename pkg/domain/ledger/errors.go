package ledger

import "errors"

var (
	// ErrSettingsMissing is returned when no general settings row has been
	// configured. Every balance-affecting operation needs one, so this is a
	// server-side configuration fault, not a caller mistake.
	ErrSettingsMissing = errors.New("general settings not provided")

	// ErrInvalidAmount is returned when a redemption amount falls outside
	// the configured minimum/maximum redeemable bounds.
	ErrInvalidAmount = errors.New("invalid coins")

	// ErrInsufficientCoins is returned when a user's balance cannot cover
	// the requested coin movement.
	ErrInsufficientCoins = errors.New("insufficient coins")

	// ErrInvalidQRCode is returned when no pending redemption matches a
	// QR id. This deliberately covers "already redeemed", "voided" and
	// "never existed" without distinguishing them.
	ErrInvalidQRCode = errors.New("invalid QR code")

	// ErrTransactionImmutable is returned on an attempt to modify a ledger
	// entry that has reached a terminal status.
	ErrTransactionImmutable = errors.New("transaction is immutable")
)
