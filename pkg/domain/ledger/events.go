package ledger

import "github.com/google/uuid"

// EventTypeRedemptionCompleted identifies the event emitted after a
// redemption commits.
const EventTypeRedemptionCompleted = "RedemptionCompleted"

// RedemptionCompleted is published after a vendor successfully completes an
// eater's pending redemption. It feeds the push-notification fan-out; the
// ledger writes never depend on its delivery.
type RedemptionCompleted struct {
	QRID          uuid.UUID `json:"qr_id"`
	DebitID       uuid.UUID `json:"debit_id"`
	CreditID      uuid.UUID `json:"credit_id"`
	EaterID       uuid.UUID `json:"eater_id"`
	VendorID      uuid.UUID `json:"vendor_id"`
	VendorName    string    `json:"vendor_name"`
	Coins         int       `json:"coins"`
	EaterBalance  int       `json:"eater_balance"`
	VendorBalance int       `json:"vendor_balance"`
}

// Type implements eventbus.Event.
func (RedemptionCompleted) Type() string { return EventTypeRedemptionCompleted }
