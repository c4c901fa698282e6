package eater

import (
	"time"

	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/service/loyalty"
)

// RedeemInput is the request body for POST /eater/transaction.
type RedeemInput struct {
	Coins int `json:"coins" validate:"required,gt=0"`
}

// TransactionResponse is one ledger entry as rendered to the eater.
type TransactionResponse struct {
	ID         uuid.UUID `json:"id"`
	QRID       uuid.UUID `json:"qr_id"`
	Coins      int       `json:"coins"`
	Amount     string    `json:"amount"`
	Balance    int       `json:"balance"`
	Type       string    `json:"type"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	VendorName string    `json:"vendor_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(e loyalty.Entry) TransactionResponse {
	return TransactionResponse{
		ID:         e.ID,
		QRID:       e.QRID,
		Coins:      e.Coins,
		Amount:     e.Amount.String(),
		Balance:    e.Balance,
		Type:       e.Type.String(),
		Reason:     e.Reason.String(),
		Status:     e.Status.String(),
		Note:       e.Note,
		VendorName: e.VendorName,
		CreatedAt:  e.CreatedAt,
	}
}
