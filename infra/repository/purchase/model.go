package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase represents a persisted eater/vendor sale.
type Purchase struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	EaterID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Purchase model.
func (Purchase) TableName() string {
	return "purchases"
}
