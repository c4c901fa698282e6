package loyalty

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/domain/purchase"
	"github.com/hawkker/loyalty/pkg/domain/review"
	"github.com/hawkker/loyalty/pkg/repository"
)

// rewardCredit applies a fixed reward inside an open unit of work: it locks
// the user row, bumps the balance and appends the matching Success credit.
func rewardCredit(
	ctx context.Context,
	uow repository.UnitOfWork,
	settings *ledger.Settings,
	userID uuid.UUID,
	coins int,
	reason ledger.Reason,
	note string,
	purchaseID *uuid.UUID,
) (*ledger.Transaction, error) {
	if coins <= 0 {
		return nil, nil
	}
	users, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	txs, err := uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	u, err := users.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance := u.Coins + coins
	entry, err := ledger.NewCredit(userID, coins, settings.Convert(coins), balance, reason, note)
	if err != nil {
		return nil, err
	}
	entry.PurchaseID = purchaseID
	if err := users.UpdateCoins(ctx, userID, balance); err != nil {
		return nil, err
	}
	if err := txs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordPurchase stores the purchase an eater created by scanning a vendor
// QR code and credits the scan reward in the same transaction.
func (s *Service) RecordPurchase(
	ctx context.Context,
	eaterID, vendorID uuid.UUID,
	amount decimal.Decimal,
) (*purchase.Purchase, *ledger.Transaction, error) {
	logger := s.logger.With("operation", "RecordPurchase", "eater_id", eaterID)
	p, err := purchase.New(eaterID, vendorID, amount)
	if err != nil {
		return nil, nil, err
	}
	var entry *ledger.Transaction
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		settingsRepo, err := uow.SettingsRepository()
		if err != nil {
			return err
		}
		purchases, err := uow.PurchaseRepository()
		if err != nil {
			return err
		}
		settings, err := settingsRepo.Latest(ctx)
		if err != nil {
			return err
		}
		if err := purchases.Create(ctx, p); err != nil {
			return err
		}
		entry, err = rewardCredit(ctx, uow, settings, eaterID, settings.ScanQRPoints,
			ledger.ReasonEaterQRScan, "Added points for scanning QR", &p.ID)
		return err
	})
	if err != nil {
		logger.Error("failed to record purchase", "error", err)
		return nil, nil, err
	}
	s.invalidate(ctx, eaterID)
	logger.Info("purchase recorded", "purchase_id", p.ID)
	return p, entry, nil
}

// RatePurchase stores the eater's rating of a purchase and credits the
// review reward. A purchase can only be rated once.
func (s *Service) RatePurchase(
	ctx context.Context,
	eaterID, purchaseID uuid.UUID,
	score int,
	comment string,
) (*review.Rating, *ledger.Transaction, error) {
	logger := s.logger.With("operation", "RatePurchase", "eater_id", eaterID, "purchase_id", purchaseID)
	r, err := review.New(purchaseID, eaterID, score, comment)
	if err != nil {
		return nil, nil, err
	}
	var entry *ledger.Transaction
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		settingsRepo, err := uow.SettingsRepository()
		if err != nil {
			return err
		}
		purchases, err := uow.PurchaseRepository()
		if err != nil {
			return err
		}
		ratings, err := uow.RatingRepository()
		if err != nil {
			return err
		}
		settings, err := settingsRepo.Latest(ctx)
		if err != nil {
			return err
		}
		p, err := purchases.GetForEater(ctx, purchaseID, eaterID)
		if err != nil {
			return err
		}
		rated, err := ratings.ExistsForPurchase(ctx, p.ID)
		if err != nil {
			return err
		}
		if rated {
			return review.ErrAlreadyRated
		}
		if err := ratings.Create(ctx, r); err != nil {
			return err
		}
		entry, err = rewardCredit(ctx, uow, settings, eaterID, settings.ReviewPoints,
			ledger.ReasonEaterReview, "Added points for reviewing", &p.ID)
		return err
	})
	if err != nil {
		logger.Error("failed to rate purchase", "error", err)
		return nil, nil, err
	}
	s.invalidate(ctx, eaterID)
	logger.Info("purchase rated", "rating_id", r.ID)
	return r, entry, nil
}

// SetDietaryPreference marks the eater's dietary preferences as saved and
// credits the one-time reward. Subsequent calls change nothing and return a
// nil entry.
func (s *Service) SetDietaryPreference(ctx context.Context, eaterID uuid.UUID) (*ledger.Transaction, error) {
	logger := s.logger.With("operation", "SetDietaryPreference", "eater_id", eaterID)
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
		settings, err := settingsRepo.Latest(ctx)
		if err != nil {
			return err
		}
		u, err := users.GetForUpdate(ctx, eaterID)
		if err != nil {
			return err
		}
		if u.DietaryPreferenceSet {
			return nil
		}
		if err := users.SetDietaryPreference(ctx, eaterID); err != nil {
			return err
		}
		entry, err = rewardCredit(ctx, uow, settings, eaterID, settings.DietaryPreference,
			ledger.ReasonDietaryPreference, "Added points for saving dietary preferences", nil)
		return err
	})
	if err != nil {
		logger.Error("failed to set dietary preference", "error", err)
		return nil, err
	}
	if entry != nil {
		s.invalidate(ctx, eaterID)
		logger.Info("dietary preference rewarded", "transaction_id", entry.ID)
	}
	return entry, nil
}
