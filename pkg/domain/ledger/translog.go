package ledger

import (
	"time"

	"github.com/google/uuid"
)

// TransactionLogEntry is one row of the read-only reporting view that joins
// the debit and credit halves of a redemption by QR id. It is regenerated
// by the database and consumed only by staff tooling, never by the write
// path. Credit fields are nil while the redemption is still pending.
type TransactionLogEntry struct {
	QRID      uuid.UUID
	CreatedAt time.Time

	DebitID     uuid.UUID
	DebitUserID uuid.UUID
	DebitCoins  int
	DebitReason Reason

	CreditID     *uuid.UUID
	CreditUserID *uuid.UUID
	CreditCoins  *int
	CreditReason *Reason
}
