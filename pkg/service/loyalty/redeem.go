package loyalty

import (
	"context"

	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/repository"
)

// RequestRedemption starts a redemption on behalf of an eater. It validates
// the amount against the configured limits and the eater's balance, then
// appends a Pending debit whose QR id is rendered client-side for the vendor
// to scan. No coins move until the vendor completes the redemption.
func (s *Service) RequestRedemption(ctx context.Context, eaterID uuid.UUID, coins int) (*ledger.Transaction, error) {
	logger := s.logger.With("operation", "RequestRedemption", "eater_id", eaterID, "coins", coins)
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
		if err := validateLimits(settings, coins); err != nil {
			return err
		}
		eater, err := users.Get(ctx, eaterID)
		if err != nil {
			return err
		}
		if err := validateBalance(eater, coins); err != nil {
			return err
		}
		entry, err = ledger.NewPendingDebit(eaterID, coins, settings.Convert(coins), eater.Coins)
		if err != nil {
			return err
		}
		return txs.Create(ctx, entry)
	})
	if err != nil {
		logger.Error("failed to request redemption", "error", err)
		return nil, err
	}
	logger.Info("redemption requested", "qr_id", entry.QRID)
	return entry, nil
}

// CompleteRedemption settles a redemption on behalf of the vendor who
// scanned the eater's QR code. It claims the pending debit under a row lock,
// re-validates limits and balance against the current state, moves the coins
// and appends the vendor's paired credit, all in one transaction. A
// RedemptionCompleted event is emitted after commit; delivery failures are
// logged and never fail the redemption.
func (s *Service) CompleteRedemption(ctx context.Context, vendorID, qrID uuid.UUID, note string) (*ledger.Transaction, error) {
	logger := s.logger.With("operation", "CompleteRedemption", "vendor_id", vendorID, "qr_id", qrID)
	var (
		credit *ledger.Transaction
		event  ledger.RedemptionCompleted
	)
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
		pending, err := txs.ClaimPending(ctx, qrID)
		if err != nil {
			return err
		}
		if err := validateLimits(settings, pending.Coins); err != nil {
			return err
		}
		eater, err := users.GetForUpdate(ctx, pending.UserID)
		if err != nil {
			return err
		}
		if err := validateBalance(eater, pending.Coins); err != nil {
			return err
		}
		eaterBalance := eater.Coins - pending.Coins
		if err := users.UpdateCoins(ctx, eater.ID, eaterBalance); err != nil {
			return err
		}
		if err := txs.Complete(ctx, pending.ID, eaterBalance); err != nil {
			return err
		}
		vendor, err := users.GetForUpdate(ctx, vendorID)
		if err != nil {
			return err
		}
		vendorBalance := vendor.Coins + pending.Coins
		if err := users.UpdateCoins(ctx, vendorID, vendorBalance); err != nil {
			return err
		}
		credit, err = pending.Pair(vendorID, vendorBalance, note)
		if err != nil {
			return err
		}
		if err := txs.Create(ctx, credit); err != nil {
			return err
		}
		event = ledger.RedemptionCompleted{
			QRID:          qrID,
			DebitID:       pending.ID,
			CreditID:      credit.ID,
			EaterID:       eater.ID,
			VendorID:      vendorID,
			VendorName:    vendor.Name,
			Coins:         pending.Coins,
			EaterBalance:  eaterBalance,
			VendorBalance: vendorBalance,
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to complete redemption", "error", err)
		return nil, err
	}
	s.invalidate(ctx, event.EaterID, vendorID)
	if s.bus != nil {
		if err := s.bus.Emit(ctx, event); err != nil {
			logger.Warn("failed to emit redemption event", "error", err)
		}
	}
	logger.Info("redemption completed",
		"eater_id", event.EaterID, "coins", event.Coins, "credit_id", credit.ID)
	return credit, nil
}
