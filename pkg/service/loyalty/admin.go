package loyalty

import (
	"context"

	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/repository"
)

// AdjustBalance sets a user's balance to target and appends the correction
// entry for the difference. Redeemable limits do not apply; the ledger still
// records the delta so the audit trail stays complete. Returns nil when the
// target equals the current balance.
func (s *Service) AdjustBalance(ctx context.Context, userID uuid.UUID, target int, note string) (*ledger.Transaction, error) {
	logger := s.logger.With("operation", "AdjustBalance", "user_id", userID, "target", target)
	if target < 0 {
		return nil, ledger.ErrInvalidAmount
	}
	var entry *ledger.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		settingsRepo, err := uow.SettingsRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		settings, err := settingsRepo.Latest(ctx)
		if err != nil {
			return err
		}
		u, err := users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		delta := target - u.Coins
		if delta < 0 {
			delta = -delta
		}
		entry = ledger.NewAdminAdjustment(userID, u.Coins, target, settings.Convert(delta), note)
		if entry == nil {
			return nil
		}
		if err := users.UpdateCoins(ctx, userID, target); err != nil {
			return err
		}
		return txs.Create(ctx, entry)
	})
	if err != nil {
		logger.Error("failed to adjust balance", "error", err)
		return nil, err
	}
	if entry != nil {
		s.invalidate(ctx, userID)
		logger.Info("balance adjusted", "transaction_id", entry.ID)
	}
	return entry, nil
}

// VoidPending marks a pending redemption debit as Failed. Balances are
// untouched: a pending debit never held any coins. Settled entries cannot
// be voided.
func (s *Service) VoidPending(ctx context.Context, transactionID uuid.UUID) error {
	logger := s.logger.With("operation", "VoidPending", "transaction_id", transactionID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry, err := txs.Get(ctx, transactionID)
		if err != nil {
			return err
		}
		if entry.Status != ledger.Pending {
			return ledger.ErrTransactionImmutable
		}
		return txs.Void(ctx, transactionID)
	})
	if err != nil {
		logger.Error("failed to void transaction", "error", err)
		return err
	}
	logger.Info("transaction voided")
	return nil
}

// Reconcile recomputes a user's balance from the Success entries of the
// ledger and reports the drift against the cached column. With repair set
// the cached column is rewritten to the ledger-derived value.
func (s *Service) Reconcile(ctx context.Context, userID uuid.UUID, repair bool) (*Reconciliation, error) {
	logger := s.logger.With("operation", "Reconcile", "user_id", userID)
	result := &Reconciliation{UserID: userID}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		u, err := users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		sum, err := txs.SumSuccessCoins(ctx, userID)
		if err != nil {
			return err
		}
		result.CachedCoins = u.Coins
		result.LedgerCoins = sum
		result.Drift = u.Coins - sum
		if repair && result.Drift != 0 {
			if err := users.UpdateCoins(ctx, userID, sum); err != nil {
				return err
			}
			result.Repaired = true
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to reconcile balance", "error", err)
		return nil, err
	}
	if result.Repaired {
		s.invalidate(ctx, userID)
		logger.Info("balance repaired", "drift", result.Drift)
	}
	return result, nil
}
