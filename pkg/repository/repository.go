// Package repository defines the data-access contracts the services depend
// on. Implementations live under infra/repository.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/domain/purchase"
	"github.com/hawkker/loyalty/pkg/domain/review"
	"github.com/hawkker/loyalty/pkg/domain/user"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	// GetForUpdate loads a user under a row-level lock. Meaningful only
	// inside a UnitOfWork transaction; the lock is held until commit so
	// balance check-and-mutate sequences for one user are serialized.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	// UpdateCoins rewrites the cached balance column.
	UpdateCoins(ctx context.Context, id uuid.UUID, coins int) error
	// SetDietaryPreference flips the one-time dietary-reward gate.
	SetDietaryPreference(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the interface for ledger data access
// operations. The ledger is append-only: entries are created and, for the
// redemption flow, transitioned between statuses; they are never deleted.
type TransactionRepository interface {
	Create(ctx context.Context, tx *ledger.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ledger.Transaction, error)
	// ClaimPending loads the single Pending entry with the given QR id
	// under a row-level lock, so a concurrent completion of the same QR id
	// blocks and then observes no Pending row. Returns
	// ledger.ErrInvalidQRCode when no such entry exists.
	ClaimPending(ctx context.Context, qrID uuid.UUID) (*ledger.Transaction, error)
	// Complete transitions a Pending entry to Success, rewriting its
	// balance snapshot. Returns ledger.ErrTransactionImmutable when the
	// entry is no longer pending.
	Complete(ctx context.Context, id uuid.UUID, balance int) error
	// Void transitions a Pending entry to Failed. Returns
	// ledger.ErrTransactionImmutable when the entry is no longer pending.
	Void(ctx context.Context, id uuid.UUID) error
	// CreditsByQRIDs returns the credit halves for the given QR ids, used
	// to resolve the vendor behind an eater's completed debits.
	CreditsByQRIDs(ctx context.Context, qrIDs []uuid.UUID) ([]*ledger.Transaction, error)
	// SumSuccessCoins returns the sum of signed coin deltas of a user's
	// Success entries, the ledger-derived truth behind the cached balance.
	SumSuccessCoins(ctx context.Context, userID uuid.UUID) (int, error)
}

// SettingsRepository defines access to the general settings rows.
type SettingsRepository interface {
	// Latest returns the most recently created settings row, the only
	// authoritative one. Returns ledger.ErrSettingsMissing when no row
	// exists.
	Latest(ctx context.Context) (*ledger.Settings, error)
	Create(ctx context.Context, s *ledger.Settings) error
}

// PurchaseRepository defines access to purchase records.
type PurchaseRepository interface {
	Create(ctx context.Context, p *purchase.Purchase) error
	Get(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error)
	// GetForEater returns the purchase only when it belongs to the eater.
	GetForEater(ctx context.Context, id, eaterID uuid.UUID) (*purchase.Purchase, error)
}

// RatingRepository defines access to purchase ratings.
type RatingRepository interface {
	Create(ctx context.Context, r *review.Rating) error
	ExistsForPurchase(ctx context.Context, purchaseID uuid.UUID) (bool, error)
}

// TransactionLogRepository reads the reporting view pairing debits and
// credits by QR id. Read-only by construction.
type TransactionLogRepository interface {
	List(ctx context.Context, limit, offset int) ([]*ledger.TransactionLogEntry, error)
}
