// Package purchase holds the purchase record an eater creates by scanning
// a vendor's QR code. The ledger links scan-reward entries to it.
package purchase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrPurchaseNotFound is returned when a purchase cannot be found.
var ErrPurchaseNotFound = errors.New("purchase not found")

// Purchase records one eater/vendor sale.
type Purchase struct {
	ID        uuid.UUID       `json:"id"`
	EaterID   uuid.UUID       `json:"eater_id"`
	VendorID  uuid.UUID       `json:"vendor_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// New creates a purchase record.
func New(eaterID, vendorID uuid.UUID, amount decimal.Decimal) (*Purchase, error) {
	if amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}
	return &Purchase{
		ID:       uuid.New(),
		EaterID:  eaterID,
		VendorID: vendorID,
		Amount:   amount,
	}, nil
}
