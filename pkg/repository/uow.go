package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and repository
// access.
//
// Repository accessors are part of UnitOfWork so that every repository
// obtained inside Do uses the same DB session, which is what makes the
// multi-write sequences of the ledger (balance mutation plus ledger append,
// or the four writes of a redemption completion) genuinely atomic. Using a
// repository obtained outside Do works too, but runs on the base session
// with no transaction boundary.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. fn receives a
	// UnitOfWork whose repositories are bound to that transaction. If fn
	// returns an error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (UserRepository, error)
	TransactionRepository() (TransactionRepository, error)
	SettingsRepository() (SettingsRepository, error)
	PurchaseRepository() (PurchaseRepository, error)
	RatingRepository() (RatingRepository, error)
	TransactionLogRepository() (TransactionLogRepository, error)
}
