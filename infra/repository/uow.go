// Package repository implements the unit of work over GORM.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hawkker/loyalty/infra/repository/purchase"
	"github.com/hawkker/loyalty/infra/repository/rating"
	"github.com/hawkker/loyalty/infra/repository/settings"
	"github.com/hawkker/loyalty/infra/repository/transaction"
	"github.com/hawkker/loyalty/infra/repository/translog"
	"github.com/hawkker/loyalty/infra/repository/user"
	"github.com/hawkker/loyalty/pkg/repository"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the open
// transaction, so every write sequence of a ledger operation commits or
// rolls back as a unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW
// whose repositories use the transaction session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction session inside Do, the base session
// outside it.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return user.New(u.session()), nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return transaction.New(u.session()), nil
}

func (u *UoW) SettingsRepository() (repository.SettingsRepository, error) {
	return settings.New(u.session()), nil
}

func (u *UoW) PurchaseRepository() (repository.PurchaseRepository, error) {
	return purchase.New(u.session()), nil
}

func (u *UoW) RatingRepository() (repository.RatingRepository, error) {
	return rating.New(u.session()), nil
}

func (u *UoW) TransactionLogRepository() (repository.TransactionLogRepository, error) {
	return translog.New(u.session()), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
