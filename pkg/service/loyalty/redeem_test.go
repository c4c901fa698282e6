package loyalty

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
)

func TestRequestRedemption_CreatesPendingWithoutMovingCoins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry, err := f.svc.RequestRedemption(ctx, f.eater.ID, 100)
	require.NoError(t, err)

	assert.Equal(t, ledger.Debit, entry.Type)
	assert.Equal(t, ledger.Pending, entry.Status)
	assert.Equal(t, ledger.ReasonEaterReward, entry.Reason)
	assert.Equal(t, 100, entry.Coins)
	assert.True(t, entry.Amount.Equal(testServiceSettings().Convert(100)))
	assert.NotEqual(t, uuid.Nil, entry.QRID)
	// Balance snapshot is taken at request time, nothing is deducted.
	assert.Equal(t, 200, entry.Balance)
	assert.Equal(t, 200, f.store.Users[f.eater.ID].Coins)
}

func TestRequestRedemption_Limits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, coins := range []int{49, 501} {
		_, err := f.svc.RequestRedemption(ctx, f.eater.ID, coins)
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount, "coins=%d", coins)
	}
	assert.Empty(t, f.store.Txs)
}

func TestRequestRedemption_OffStepWithinBounds(t *testing.T) {
	f := newFixture(t)

	// the incremental value is a client picker hint, not a server rule
	entry, err := f.svc.RequestRedemption(context.Background(), f.eater.ID, 55)
	require.NoError(t, err)
	assert.Equal(t, 55, entry.Coins)
}

func TestRequestRedemption_InsufficientCoins(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RequestRedemption(context.Background(), f.eater.ID, 300)
	assert.ErrorIs(t, err, ledger.ErrInsufficientCoins)
	assert.Empty(t, f.store.Txs)
}

func TestRequestRedemption_NoSettings(t *testing.T) {
	f := newFixture(t)
	f.store.Settings = nil

	_, err := f.svc.RequestRedemption(context.Background(), f.eater.ID, 100)
	assert.ErrorIs(t, err, ledger.ErrSettingsMissing)
}

func TestCompleteRedemption_MovesCoins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)

	credit, err := f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "lunch")
	require.NoError(t, err)

	assert.Equal(t, 150, f.store.Users[f.eater.ID].Coins)
	assert.Equal(t, 50, f.store.Users[f.vendor.ID].Coins)

	debit := f.store.Txs[pending.ID]
	assert.Equal(t, ledger.Success, debit.Status)
	assert.Equal(t, 150, debit.Balance)

	assert.Equal(t, ledger.Credit, credit.Type)
	assert.Equal(t, ledger.Success, credit.Status)
	assert.Equal(t, ledger.ReasonVendorRedeemed, credit.Reason)
	assert.Equal(t, pending.QRID, credit.QRID)
	assert.Equal(t, 50, credit.Coins)
	assert.Equal(t, 50, credit.Balance)
	assert.Equal(t, "lunch", credit.Note)
}

func TestCompleteRedemption_EmitsEventAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)
	credit, err := f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "")
	require.NoError(t, err)

	published := f.bus.Published()
	require.Len(t, published, 1)
	event, ok := published[0].(ledger.RedemptionCompleted)
	require.True(t, ok)
	assert.Equal(t, pending.QRID, event.QRID)
	assert.Equal(t, pending.ID, event.DebitID)
	assert.Equal(t, credit.ID, event.CreditID)
	assert.Equal(t, f.eater.ID, event.EaterID)
	assert.Equal(t, f.vendor.ID, event.VendorID)
	assert.Equal(t, "Falafel Hut", event.VendorName)
	assert.Equal(t, 50, event.Coins)
	assert.Equal(t, 150, event.EaterBalance)
	assert.Equal(t, 50, event.VendorBalance)

	assert.Contains(t, f.cache.Invalidated, f.eater.ID)
	assert.Contains(t, f.cache.Invalidated, f.vendor.ID)
}

func TestCompleteRedemption_UnknownQR(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CompleteRedemption(context.Background(), f.vendor.ID, uuid.New(), "")
	assert.ErrorIs(t, err, ledger.ErrInvalidQRCode)
}

func TestCompleteRedemption_SameQRTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)
	_, err = f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "")
	require.NoError(t, err)

	_, err = f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "")
	assert.ErrorIs(t, err, ledger.ErrInvalidQRCode)
	assert.Equal(t, 150, f.store.Users[f.eater.ID].Coins)
	assert.Equal(t, 50, f.store.Users[f.vendor.ID].Coins)
}

func TestCompleteRedemption_VoidedQR(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)
	require.NoError(t, f.svc.VoidPending(ctx, pending.ID))

	_, err = f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "")
	assert.ErrorIs(t, err, ledger.ErrInvalidQRCode)
}

func TestCompleteRedemption_BalanceRevalidated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 200)
	require.NoError(t, err)
	// The balance dropped between request and completion.
	_, err = f.svc.AdjustBalance(ctx, f.eater.ID, 100, "correction")
	require.NoError(t, err)

	_, err = f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "")
	assert.ErrorIs(t, err, ledger.ErrInsufficientCoins)

	// The debit is still pending, so a later completion can succeed.
	assert.Equal(t, ledger.Pending, f.store.Txs[pending.ID].Status)
	assert.Equal(t, 0, f.store.Users[f.vendor.ID].Coins)
	assert.Empty(t, f.bus.Published())
}

func TestCompleteRedemption_LimitsRevalidated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.RequestRedemption(ctx, f.eater.ID, 50)
	require.NoError(t, err)

	// Tighter limits became authoritative after the QR was issued.
	tighter := testServiceSettings()
	tighter.MinimumCoinsRedeemable = tighter.MinimumCoinsRedeemable.Add(tighter.CoinsIncrementalValue)
	require.NoError(t, f.svc.CreateSettings(ctx, tighter))

	_, err = f.svc.CompleteRedemption(ctx, f.vendor.ID, pending.QRID, "")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	assert.Equal(t, ledger.Pending, f.store.Txs[pending.ID].Status)
}
