// Package ledger holds the domain model of the loyalty-points ledger: the
// append-only Transaction entry, its type/reason/status enums, and the
// general settings snapshot that prices every coin movement.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one append-only ledger entry recording a coin movement.
//
// QRID correlates the two halves of a redemption: the eater's pending debit
// and the vendor's credit share one QRID across two different users. It is
// a correlation key, not a foreign key; at most one debit and one credit
// ever carry the same QRID.
//
// Balance is a running balance of the owner's coins after this entry is
// applied, like the current-balance column on a bank statement. For a
// pending redemption debit it still holds the balance at request time,
// because nothing is deducted until the vendor completes the redemption.
type Transaction struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	PurchaseID *uuid.UUID
	QRID       uuid.UUID
	Coins      int
	Amount     decimal.Decimal
	Balance    int
	Type       Type
	Reason     Reason
	Status     Status
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCredit builds a Success credit entry applied in the same step it is
// created (rewards, vendor redemption credits, admin credits).
func NewCredit(userID uuid.UUID, coins int, amount decimal.Decimal, balance int, reason Reason, note string) (*Transaction, error) {
	if coins <= 0 {
		return nil, errors.New("coins must be positive")
	}
	if balance < 0 {
		return nil, errors.New("balance must not be negative")
	}
	return &Transaction{
		ID:      uuid.New(),
		UserID:  userID,
		QRID:    uuid.New(),
		Coins:   coins,
		Amount:  amount,
		Balance: balance,
		Type:    Credit,
		Reason:  reason,
		Status:  Success,
		Note:    note,
	}, nil
}

// NewPendingDebit builds the eater half of a redemption: a Pending debit
// whose fresh QRID is handed to the eater for the vendor to scan. The
// balance snapshot is the eater's balance at request time; it is rewritten
// when the redemption completes.
func NewPendingDebit(userID uuid.UUID, coins int, amount decimal.Decimal, balance int) (*Transaction, error) {
	if coins <= 0 {
		return nil, errors.New("coins must be positive")
	}
	if balance < 0 {
		return nil, errors.New("balance must not be negative")
	}
	return &Transaction{
		ID:      uuid.New(),
		UserID:  userID,
		QRID:    uuid.New(),
		Coins:   coins,
		Amount:  amount,
		Balance: balance,
		Type:    Debit,
		Reason:  ReasonEaterReward,
		Status:  Pending,
	}, nil
}

// NewAdminAdjustment builds the correction entry for setting a user's
// balance to target. Redemption limits do not apply to it. Returns nil
// when the target equals the current balance (a no-op adjustment).
func NewAdminAdjustment(userID uuid.UUID, current, target int, amount decimal.Decimal, note string) *Transaction {
	if current == target {
		return nil
	}
	t := Credit
	delta := target - current
	if delta < 0 {
		t = Debit
		delta = -delta
	}
	return &Transaction{
		ID:      uuid.New(),
		UserID:  userID,
		QRID:    uuid.New(),
		Coins:   delta,
		Amount:  amount,
		Balance: target,
		Type:    t,
		Reason:  ReasonAdminPoints,
		Status:  Success,
		Note:    note,
	}
}

// Pair builds the vendor half of a redemption from the eater's debit:
// a Success credit with the same QRID, coin count and pound amount.
func (tx *Transaction) Pair(vendorID uuid.UUID, vendorBalance int, note string) (*Transaction, error) {
	if tx.Type != Debit {
		return nil, errors.New("only a debit can be paired")
	}
	return &Transaction{
		ID:      uuid.New(),
		UserID:  vendorID,
		QRID:    tx.QRID,
		Coins:   tx.Coins,
		Amount:  tx.Amount,
		Balance: vendorBalance,
		Type:    Credit,
		Reason:  ReasonVendorRedeemed,
		Status:  Success,
		Note:    note,
	}, nil
}

// Terminal reports whether the entry has reached a state it can never
// leave. Success and Failed entries are immutable.
func (tx *Transaction) Terminal() bool {
	return tx.Status == Success || tx.Status == Failed
}

// SignedCoins is the coin delta this entry applies to its owner's balance:
// positive for credits, negative for debits. Only Success entries
// contribute to a balance.
func (tx *Transaction) SignedCoins() int {
	if tx.Type == Debit {
		return -tx.Coins
	}
	return tx.Coins
}
