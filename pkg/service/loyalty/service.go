// Package loyalty implements the coin ledger: earn credits, the two phase
// QR redemption flow, admin adjustments and balance reconciliation. Every
// balance mutation and its ledger entry are written inside one unit of work.
package loyalty

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/cache"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/eventbus"
	"github.com/hawkker/loyalty/pkg/repository"
)

const defaultBalanceTTL = 5 * time.Minute

// Service orchestrates all coin operations. The cache is optional; a nil
// cache disables balance caching entirely.
type Service struct {
	uow      repository.UnitOfWork
	bus      eventbus.Bus
	cache    cache.BalanceCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	balanceCache cache.BalanceCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		bus:      bus,
		cache:    balanceCache,
		cacheTTL: defaultBalanceTTL,
		logger:   logger,
	}
}

// NewWithCacheTTL is New with an explicit lifetime for cached balances.
func NewWithCacheTTL(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	balanceCache cache.BalanceCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *Service {
	s := New(uow, bus, balanceCache, logger)
	if cacheTTL > 0 {
		s.cacheTTL = cacheTTL
	}
	return s
}

// Entry is a ledger transaction annotated with the counterparty vendor name,
// resolved from the paired credit entry of the same QR code.
type Entry struct {
	*ledger.Transaction
	VendorName string
}

// Reconciliation reports the drift between the cached balance column and the
// sum of settled ledger entries for one user.
type Reconciliation struct {
	UserID      uuid.UUID
	CachedCoins int
	LedgerCoins int
	Drift       int
	Repaired    bool
}

// GetSettings returns the authoritative settings row, the most recently
// created one.
func (s *Service) GetSettings(ctx context.Context) (*ledger.Settings, error) {
	var out *ledger.Settings
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SettingsRepository()
		if err != nil {
			return err
		}
		out, err = repo.Latest(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSettings appends a new settings row, which becomes authoritative
// immediately. Earlier rows are kept for audit.
func (s *Service) CreateSettings(ctx context.Context, settings *ledger.Settings) error {
	logger := s.logger.With("operation", "CreateSettings")
	if err := settings.Validate(); err != nil {
		return err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SettingsRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, settings)
	})
	if err != nil {
		logger.Error("failed to create settings", "error", err)
		return err
	}
	logger.Info("settings created", "settings_id", settings.ID)
	return nil
}

// Balance returns the user's coin balance, served from cache when possible.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	if s.cache != nil {
		if coins, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
			return coins, nil
		}
	}
	var coins int
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		coins = u.Coins
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, coins, s.cacheTTL); err != nil {
			s.logger.Warn("balance cache set failed", "user_id", userID, "error", err)
		}
	}
	return coins, nil
}

func (s *Service) invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if s.cache == nil {
		return
	}
	for _, id := range userIDs {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("balance cache invalidation failed", "user_id", id, "error", err)
		}
	}
}

// ListTransactions returns the user's ledger entries, newest first. Debit
// entries carry the vendor name taken from the paired credit, empty while the
// redemption is still pending.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		list, err := txs.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		var qrIDs []uuid.UUID
		for _, t := range list {
			if t.Type == ledger.Debit {
				qrIDs = append(qrIDs, t.QRID)
			}
		}
		credits := map[uuid.UUID]*ledger.Transaction{}
		if len(qrIDs) > 0 {
			creditList, err := txs.CreditsByQRIDs(ctx, qrIDs)
			if err != nil {
				return err
			}
			for _, c := range creditList {
				credits[c.QRID] = c
			}
		}
		names := map[uuid.UUID]string{}
		entries = make([]Entry, 0, len(list))
		for _, t := range list {
			e := Entry{Transaction: t}
			if credit, ok := credits[t.QRID]; ok && t.Type == ledger.Debit {
				name, ok := names[credit.UserID]
				if !ok {
					vendor, err := users.Get(ctx, credit.UserID)
					if err != nil {
						return err
					}
					name = vendor.Name
					names[credit.UserID] = name
				}
				e.VendorName = name
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TransactionLog returns the admin view of redemptions, each PENDING or
// SUCCESS debit joined with its paired credit when one exists.
func (s *Service) TransactionLog(ctx context.Context, limit, offset int) ([]*ledger.TransactionLogEntry, error) {
	var out []*ledger.TransactionLogEntry
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionLogRepository()
		if err != nil {
			return err
		}
		out, err = repo.List(ctx, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
