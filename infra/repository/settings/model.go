package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings represents one general-settings row. Rows are append-only; the
// latest created row is the authoritative configuration.
type Settings struct {
	ID                                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	OneCoinToPounds                    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	MinimumCoinsRedeemable             decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	MaximumCoinsRedeemable             decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CoinsIncrementalValue              decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ScanQRPoints                       int             `gorm:"not null;column:scan_qr_points"`
	ReviewPoints                       int             `gorm:"not null"`
	DietaryPreference                  int             `gorm:"not null"`
	EaterReviewReminder                int             `gorm:"not null;default:0"`
	IncompleteProfileEmailReminderDays int             `gorm:"not null;default:0"`
	MinimumReviewsVendor               int             `gorm:"not null;default:0"`
	SearchRadiusInMiles                int             `gorm:"not null;default:0"`
	CreatedAt                          time.Time       `gorm:"index"`
}

// TableName specifies the table name for the Settings model.
func (Settings) TableName() string {
	return "general_settings"
}
