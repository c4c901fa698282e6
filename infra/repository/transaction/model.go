package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a persisted ledger entry. Rows are appended and
// status-transitioned, never deleted.
type Transaction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseID *uuid.UUID      `gorm:"type:uuid;index"`
	QRID       uuid.UUID       `gorm:"type:uuid;not null;column:qr_id;index:idx_transactions_qr_id"`
	Coins      int             `gorm:"not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Balance    int             `gorm:"not null"`
	TxType     uint8           `gorm:"type:smallint;not null;column:tx_type"`
	Reason     uint8           `gorm:"type:smallint;not null"`
	Status     uint8           `gorm:"type:smallint;not null;index"`
	Note       string          `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
