// Package testutils provides the in-memory unit of work and HTTP helpers
// shared by the service and handler tests. Nothing here touches a real
// database or network.
package testutils

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/pkg/config"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/domain/purchase"
	"github.com/hawkker/loyalty/pkg/domain/review"
	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/repository"
)

// MemoryStore is the in-memory stand-in for the database behind MemoryUoW.
// Tests reach into its fields to seed and inspect state directly.
type MemoryStore struct {
	Mu        sync.Mutex
	Users     map[uuid.UUID]*user.User
	Txs       map[uuid.UUID]*ledger.Transaction
	TxOrder   []uuid.UUID
	Settings  []*ledger.Settings
	Purchases map[uuid.UUID]*purchase.Purchase
	Ratings   map[uuid.UUID]*review.Rating

	clock time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Users:     map[uuid.UUID]*user.User{},
		Txs:       map[uuid.UUID]*ledger.Transaction{},
		Purchases: map[uuid.UUID]*purchase.Purchase{},
		Ratings:   map[uuid.UUID]*review.Rating{},
		clock:     time.Now().UTC(),
	}
}

// Tick advances the store clock and returns it, giving every write a
// distinct, ordered timestamp.
func (s *MemoryStore) Tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

// MemoryUoW implements repository.UnitOfWork over a MemoryStore. Do runs
// the function directly; there is no rollback, so tests exercise error
// paths that fail before any write.
type MemoryUoW struct {
	Store *MemoryStore
}

// NewMemoryUoW creates a MemoryUoW over the given store.
func NewMemoryUoW(store *MemoryStore) *MemoryUoW {
	return &MemoryUoW{Store: store}
}

func (u *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *MemoryUoW) UserRepository() (repository.UserRepository, error) {
	return &memUserRepo{store: u.Store}, nil
}

func (u *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &memTxRepo{store: u.Store}, nil
}

func (u *MemoryUoW) SettingsRepository() (repository.SettingsRepository, error) {
	return &memSettingsRepo{store: u.Store}, nil
}

func (u *MemoryUoW) PurchaseRepository() (repository.PurchaseRepository, error) {
	return &memPurchaseRepo{store: u.Store}, nil
}

func (u *MemoryUoW) RatingRepository() (repository.RatingRepository, error) {
	return &memRatingRepo{store: u.Store}, nil
}

func (u *MemoryUoW) TransactionLogRepository() (repository.TransactionLogRepository, error) {
	return &memTranslogRepo{store: u.Store}, nil
}

var _ repository.UnitOfWork = (*MemoryUoW)(nil)

type memUserRepo struct{ store *MemoryStore }

func (r *memUserRepo) get(id uuid.UUID) (*user.User, error) {
	u, ok := r.store.Users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	return r.get(id)
}

func (r *memUserRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	return r.get(id)
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	for _, u := range r.store.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	cp := *u
	r.store.Users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdateCoins(ctx context.Context, id uuid.UUID, coins int) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	u, ok := r.store.Users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Coins = coins
	return nil
}

func (r *memUserRepo) SetDietaryPreference(ctx context.Context, id uuid.UUID) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	u, ok := r.store.Users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.DietaryPreferenceSet = true
	return nil
}

type memTxRepo struct{ store *MemoryStore }

func (r *memTxRepo) Create(ctx context.Context, tx *ledger.Transaction) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	cp := *tx
	cp.CreatedAt = r.store.Tick()
	cp.UpdatedAt = cp.CreatedAt
	r.store.Txs[tx.ID] = &cp
	r.store.TxOrder = append(r.store.TxOrder, tx.ID)
	return nil
}

func (r *memTxRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	tx, ok := r.store.Txs[id]
	if !ok {
		return nil, ledger.ErrInvalidQRCode
	}
	cp := *tx
	return &cp, nil
}

func (r *memTxRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ledger.Transaction, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	var out []*ledger.Transaction
	for i := len(r.store.TxOrder) - 1; i >= 0; i-- {
		tx := r.store.Txs[r.store.TxOrder[i]]
		if tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTxRepo) ClaimPending(ctx context.Context, qrID uuid.UUID) (*ledger.Transaction, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	for _, tx := range r.store.Txs {
		if tx.QRID == qrID && tx.Status == ledger.Pending {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, ledger.ErrInvalidQRCode
}

func (r *memTxRepo) Complete(ctx context.Context, id uuid.UUID, balance int) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	tx, ok := r.store.Txs[id]
	if !ok || tx.Status != ledger.Pending {
		return ledger.ErrTransactionImmutable
	}
	tx.Status = ledger.Success
	tx.Balance = balance
	tx.UpdatedAt = r.store.Tick()
	return nil
}

func (r *memTxRepo) Void(ctx context.Context, id uuid.UUID) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	tx, ok := r.store.Txs[id]
	if !ok || tx.Status != ledger.Pending {
		return ledger.ErrTransactionImmutable
	}
	tx.Status = ledger.Failed
	tx.UpdatedAt = r.store.Tick()
	return nil
}

func (r *memTxRepo) CreditsByQRIDs(ctx context.Context, qrIDs []uuid.UUID) ([]*ledger.Transaction, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range qrIDs {
		want[id] = true
	}
	var out []*ledger.Transaction
	for _, tx := range r.store.Txs {
		if tx.Type == ledger.Credit && want[tx.QRID] {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTxRepo) SumSuccessCoins(ctx context.Context, userID uuid.UUID) (int, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	sum := 0
	for _, tx := range r.store.Txs {
		if tx.UserID == userID && tx.Status == ledger.Success {
			sum += tx.SignedCoins()
		}
	}
	return sum, nil
}

type memSettingsRepo struct{ store *MemoryStore }

func (r *memSettingsRepo) Latest(ctx context.Context) (*ledger.Settings, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	if len(r.store.Settings) == 0 {
		return nil, ledger.ErrSettingsMissing
	}
	cp := *r.store.Settings[len(r.store.Settings)-1]
	return &cp, nil
}

func (r *memSettingsRepo) Create(ctx context.Context, s *ledger.Settings) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	cp := *s
	cp.CreatedAt = r.store.Tick()
	r.store.Settings = append(r.store.Settings, &cp)
	return nil
}

type memPurchaseRepo struct{ store *MemoryStore }

func (r *memPurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	cp := *p
	cp.CreatedAt = r.store.Tick()
	r.store.Purchases[p.ID] = &cp
	return nil
}

func (r *memPurchaseRepo) Get(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	p, ok := r.store.Purchases[id]
	if !ok {
		return nil, purchase.ErrPurchaseNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPurchaseRepo) GetForEater(ctx context.Context, id, eaterID uuid.UUID) (*purchase.Purchase, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	p, ok := r.store.Purchases[id]
	if !ok || p.EaterID != eaterID {
		return nil, purchase.ErrPurchaseNotFound
	}
	cp := *p
	return &cp, nil
}

type memRatingRepo struct{ store *MemoryStore }

func (r *memRatingRepo) Create(ctx context.Context, rating *review.Rating) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	cp := *rating
	cp.CreatedAt = r.store.Tick()
	r.store.Ratings[rating.PurchaseID] = &cp
	return nil
}

func (r *memRatingRepo) ExistsForPurchase(ctx context.Context, purchaseID uuid.UUID) (bool, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	_, ok := r.store.Ratings[purchaseID]
	return ok, nil
}

type memTranslogRepo struct{ store *MemoryStore }

func (r *memTranslogRepo) List(ctx context.Context, limit, offset int) ([]*ledger.TransactionLogEntry, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()
	var entries []*ledger.TransactionLogEntry
	for i := len(r.store.TxOrder) - 1; i >= 0; i-- {
		tx := r.store.Txs[r.store.TxOrder[i]]
		if tx.Type != ledger.Debit || tx.Reason != ledger.ReasonEaterReward {
			continue
		}
		entry := &ledger.TransactionLogEntry{
			QRID:        tx.QRID,
			CreatedAt:   tx.CreatedAt,
			DebitID:     tx.ID,
			DebitUserID: tx.UserID,
			DebitCoins:  tx.Coins,
			DebitReason: tx.Reason,
		}
		for _, other := range r.store.Txs {
			if other.Type == ledger.Credit && other.QRID == tx.QRID {
				reason := other.Reason
				entry.CreditID = &other.ID
				entry.CreditUserID = &other.UserID
				entry.CreditCoins = &other.Coins
				entry.CreditReason = &reason
				break
			}
		}
		entries = append(entries, entry)
	}
	if offset > len(entries) {
		offset = len(entries)
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// SpyBalanceCache records sets and invalidations for assertions.
type SpyBalanceCache struct {
	Mu          sync.Mutex
	Values      map[uuid.UUID]int
	Invalidated []uuid.UUID
}

// NewSpyBalanceCache creates an empty spy cache.
func NewSpyBalanceCache() *SpyBalanceCache {
	return &SpyBalanceCache{Values: map[uuid.UUID]int{}}
}

func (c *SpyBalanceCache) Get(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	v, ok := c.Values[userID]
	return v, ok, nil
}

func (c *SpyBalanceCache) Set(ctx context.Context, userID uuid.UUID, coins int, ttl time.Duration) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Values[userID] = coins
	return nil
}

func (c *SpyBalanceCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	delete(c.Values, userID)
	c.Invalidated = append(c.Invalidated, userID)
	return nil
}

// MakeRequest performs a request against the Fiber app with an optional
// JSON body and bearer token.
func MakeRequest(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// MintToken signs a JWT carrying the user's id and type, matching what the
// login endpoint issues.
func MintToken(t *testing.T, cfg *config.Jwt, u *user.User) string {
	t.Helper()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["user_type"] = u.Type.String()
	claims["exp"] = time.Now().Add(cfg.Expiry).Unix()
	signed, err := token.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return signed
}
