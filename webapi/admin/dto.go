package admin

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
)

// AdjustPointsInput is the request body for POST /admin/user/:id/points.
// Points is the target balance, not a delta.
type AdjustPointsInput struct {
	Points int    `json:"points" validate:"min=0"`
	Note   string `json:"note" validate:"max=255"`
}

// CreateSettingsInput is the request body for POST /admin/settings.
type CreateSettingsInput struct {
	OneCoinToPounds        string `json:"one_coin_to_pounds" validate:"required"`
	MinimumCoinsRedeemable string `json:"minimum_coins_redeemable" validate:"required"`
	MaximumCoinsRedeemable string `json:"maximum_coins_redeemable" validate:"required"`
	CoinsIncrementalValue  string `json:"coins_incremental_value" validate:"required"`
	ScanQRPoints           int    `json:"scan_qr_points" validate:"min=0"`
	ReviewPoints           int    `json:"review_points" validate:"min=0"`
	DietaryPreference      int    `json:"dietary_preference" validate:"min=0"`

	EaterReviewReminder                int `json:"eater_review_reminder" validate:"min=0"`
	IncompleteProfileEmailReminderDays int `json:"incomplete_profile_email_reminder_days" validate:"min=0"`
	MinimumReviewsVendor               int `json:"minimum_reviews_vendor" validate:"min=0"`
	SearchRadiusInMiles                int `json:"search_radius_in_miles" validate:"min=0"`
}

func (in *CreateSettingsInput) toDomain() (*ledger.Settings, error) {
	rate, err := decimal.NewFromString(in.OneCoinToPounds)
	if err != nil {
		return nil, err
	}
	minCoins, err := decimal.NewFromString(in.MinimumCoinsRedeemable)
	if err != nil {
		return nil, err
	}
	maxCoins, err := decimal.NewFromString(in.MaximumCoinsRedeemable)
	if err != nil {
		return nil, err
	}
	step, err := decimal.NewFromString(in.CoinsIncrementalValue)
	if err != nil {
		return nil, err
	}
	return &ledger.Settings{
		ID:                                 uuid.New(),
		OneCoinToPounds:                    rate,
		MinimumCoinsRedeemable:             minCoins,
		MaximumCoinsRedeemable:             maxCoins,
		CoinsIncrementalValue:              step,
		ScanQRPoints:                       in.ScanQRPoints,
		ReviewPoints:                       in.ReviewPoints,
		DietaryPreference:                  in.DietaryPreference,
		EaterReviewReminder:                in.EaterReviewReminder,
		IncompleteProfileEmailReminderDays: in.IncompleteProfileEmailReminderDays,
		MinimumReviewsVendor:               in.MinimumReviewsVendor,
		SearchRadiusInMiles:                in.SearchRadiusInMiles,
	}, nil
}

// LogEntryResponse is one row of the admin redemption report.
type LogEntryResponse struct {
	QRID      uuid.UUID `json:"qr_id"`
	CreatedAt time.Time `json:"created_at"`

	DebitID     uuid.UUID `json:"debit_id"`
	DebitUserID uuid.UUID `json:"debit_user_id"`
	DebitCoins  int       `json:"debit_coins"`
	DebitReason string    `json:"debit_reason"`

	CreditID     *uuid.UUID `json:"credit_id,omitempty"`
	CreditUserID *uuid.UUID `json:"credit_user_id,omitempty"`
	CreditCoins  *int       `json:"credit_coins,omitempty"`
	CreditReason *string    `json:"credit_reason,omitempty"`
}

func toLogResponse(e *ledger.TransactionLogEntry) LogEntryResponse {
	out := LogEntryResponse{
		QRID:        e.QRID,
		CreatedAt:   e.CreatedAt,
		DebitID:     e.DebitID,
		DebitUserID: e.DebitUserID,
		DebitCoins:  e.DebitCoins,
		DebitReason: e.DebitReason.String(),

		CreditID:     e.CreditID,
		CreditUserID: e.CreditUserID,
		CreditCoins:  e.CreditCoins,
	}
	if e.CreditReason != nil {
		reason := e.CreditReason.String()
		out.CreditReason = &reason
	}
	return out
}

// ReconcileResponse reports ledger-vs-cache drift for one user.
type ReconcileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	CachedCoins int       `json:"cached_coins"`
	LedgerCoins int       `json:"ledger_coins"`
	Drift       int       `json:"drift"`
	Repaired    bool      `json:"repaired"`
}
