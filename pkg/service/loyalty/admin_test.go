package loyalty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
)

func TestAdjustBalance_Up(t *testing.T) {
	f := newFixture(t)

	entry, err := f.svc.AdjustBalance(context.Background(), f.eater.ID, 230, "goodwill")
	require.NoError(t, err)

	require.NotNil(t, entry)
	assert.Equal(t, ledger.Credit, entry.Type)
	assert.Equal(t, ledger.ReasonAdminPoints, entry.Reason)
	assert.Equal(t, ledger.Success, entry.Status)
	assert.Equal(t, 30, entry.Coins)
	assert.Equal(t, 230, entry.Balance)
	assert.Equal(t, "goodwill", entry.Note)
	assert.Equal(t, 230, f.store.Users[f.eater.ID].Coins)
	assert.Contains(t, f.cache.Invalidated, f.eater.ID)
}

func TestAdjustBalance_Down(t *testing.T) {
	f := newFixture(t)

	// Deltas below the redeemable minimum are still allowed here.
	entry, err := f.svc.AdjustBalance(context.Background(), f.eater.ID, 190, "abuse clawback")
	require.NoError(t, err)

	require.NotNil(t, entry)
	assert.Equal(t, ledger.Debit, entry.Type)
	assert.Equal(t, 10, entry.Coins)
	assert.Equal(t, 190, entry.Balance)
	assert.Equal(t, 190, f.store.Users[f.eater.ID].Coins)
}

func TestAdjustBalance_NoChange(t *testing.T) {
	f := newFixture(t)

	entry, err := f.svc.AdjustBalance(context.Background(), f.eater.ID, 200, "")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Empty(t, f.store.Txs)
	assert.Empty(t, f.cache.Invalidated)
}

func TestAdjustBalance_NegativeTarget(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AdjustBalance(context.Background(), f.eater.ID, -1, "")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestVoidPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)

	require.NoError(t, f.svc.VoidPending(ctx, pending.ID))
	assert.Equal(t, ledger.Failed, f.store.Txs[pending.ID].Status)
	assert.Equal(t, 200, f.store.Users[f.eater.ID].Coins)
}

func TestVoidPending_SettledEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)
	_, err = f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "")
	require.NoError(t, err)

	err = f.svc.VoidPending(ctx, pending.ID)
	assert.ErrorIs(t, err, ledger.ErrTransactionImmutable)
	assert.Equal(t, ledger.Success, f.store.Txs[pending.ID].Status)
}

func TestReconcile_NoDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Seeded coins have no ledger entries behind them; start from zero so
	// every coin on the column is backed by a Success entry.
	f.store.Users[f.eater.ID].Coins = 0
	_, err := f.svc.AdjustBalance(ctx, f.eater.ID, 100, "grant")
	require.NoError(t, err)

	result, err := f.svc.Reconcile(ctx, f.eater.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 100, result.CachedCoins)
	assert.Equal(t, 100, result.LedgerCoins)
	assert.Equal(t, 0, result.Drift)
	assert.False(t, result.Repaired)
}

func TestReconcile_PendingDebitIsNotDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.Users[f.eater.ID].Coins = 0
	_, err := f.svc.AdjustBalance(ctx, f.eater.ID, 200, "grant")
	require.NoError(t, err)
	_, err = f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)

	result, err := f.svc.Reconcile(ctx, f.eater.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 200, result.CachedCoins)
	assert.Equal(t, 200, result.LedgerCoins)
	assert.Equal(t, 0, result.Drift)
}

func TestReconcile_Repair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.Users[f.eater.ID].Coins = 0
	_, err := f.svc.AdjustBalance(ctx, f.eater.ID, 100, "grant")
	require.NoError(t, err)
	// Simulate a corrupted cached column.
	f.store.Users[f.eater.ID].Coins = 175

	result, err := f.svc.Reconcile(ctx, f.eater.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 175, result.CachedCoins)
	assert.Equal(t, 75, result.Drift)
	assert.False(t, result.Repaired)
	assert.Equal(t, 175, f.store.Users[f.eater.ID].Coins)

	result, err = f.svc.Reconcile(ctx, f.eater.ID, true)
	require.NoError(t, err)
	assert.True(t, result.Repaired)
	assert.Equal(t, result.LedgerCoins, f.store.Users[f.eater.ID].Coins)
	assert.Contains(t, f.cache.Invalidated, f.eater.ID)
}
