package loyalty

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/domain/purchase"
	"github.com/hawkker/loyalty/pkg/domain/review"
)

func TestRecordPurchase_CreditsScanReward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, entry, err := f.svc.RecordPurchase(ctx, f.eater.ID, f.vendor.ID, decimal.RequireFromString("12.50"))
	require.NoError(t, err)

	require.NotNil(t, p)
	assert.Equal(t, f.eater.ID, p.EaterID)
	assert.Equal(t, f.vendor.ID, p.VendorID)
	require.Contains(t, f.store.Purchases, p.ID)

	require.NotNil(t, entry)
	assert.Equal(t, ledger.Credit, entry.Type)
	assert.Equal(t, ledger.Success, entry.Status)
	assert.Equal(t, ledger.ReasonEaterQRScan, entry.Reason)
	assert.Equal(t, 10, entry.Coins)
	assert.Equal(t, 210, entry.Balance)
	require.NotNil(t, entry.PurchaseID)
	assert.Equal(t, p.ID, *entry.PurchaseID)
	assert.Equal(t, 210, f.store.Users[f.eater.ID].Coins)
}

func TestRecordPurchase_ZeroRewardSkipsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	noReward := testServiceSettings()
	noReward.ScanQRPoints = 0
	require.NoError(t, f.svc.CreateSettings(ctx, noReward))

	p, entry, err := f.svc.RecordPurchase(ctx, f.eater.ID, f.vendor.ID, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, entry)
	assert.Equal(t, 200, f.store.Users[f.eater.ID].Coins)
	assert.Empty(t, f.store.Txs)
}

func TestRatePurchase_CreditsReviewReward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, _, err := f.svc.RecordPurchase(ctx, f.eater.ID, f.vendor.ID, decimal.NewFromInt(8))
	require.NoError(t, err)

	r, entry, err := f.svc.RatePurchase(ctx, f.eater.ID, p.ID, 4, "great wrap")
	require.NoError(t, err)

	require.NotNil(t, r)
	assert.Equal(t, p.ID, r.PurchaseID)
	assert.Equal(t, 4, r.Score)

	require.NotNil(t, entry)
	assert.Equal(t, ledger.ReasonEaterReview, entry.Reason)
	assert.Equal(t, 5, entry.Coins)
	// 200 + 10 scan reward + 5 review reward.
	assert.Equal(t, 215, f.store.Users[f.eater.ID].Coins)
}

func TestRatePurchase_OncePerPurchase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, _, err := f.svc.RecordPurchase(ctx, f.eater.ID, f.vendor.ID, decimal.NewFromInt(8))
	require.NoError(t, err)
	_, _, err = f.svc.RatePurchase(ctx, f.eater.ID, p.ID, 5, "")
	require.NoError(t, err)

	_, _, err = f.svc.RatePurchase(ctx, f.eater.ID, p.ID, 3, "changed my mind")
	assert.ErrorIs(t, err, review.ErrAlreadyRated)
	assert.Equal(t, 215, f.store.Users[f.eater.ID].Coins)
}

func TestRatePurchase_ForeignPurchase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, _, err := f.svc.RecordPurchase(ctx, f.eater.ID, f.vendor.ID, decimal.NewFromInt(8))
	require.NoError(t, err)

	_, _, err = f.svc.RatePurchase(ctx, uuid.New(), p.ID, 5, "")
	assert.ErrorIs(t, err, purchase.ErrPurchaseNotFound)
}

func TestRatePurchase_InvalidScore(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.RatePurchase(context.Background(), f.eater.ID, uuid.New(), 6, "")
	assert.ErrorIs(t, err, review.ErrInvalidRating)
}

func TestSetDietaryPreference_RewardsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry, err := f.svc.SetDietaryPreference(ctx, f.eater.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, ledger.ReasonDietaryPreference, entry.Reason)
	assert.Equal(t, 20, entry.Coins)
	assert.Equal(t, 220, f.store.Users[f.eater.ID].Coins)
	assert.True(t, f.store.Users[f.eater.ID].DietaryPreferenceSet)

	entry, err = f.svc.SetDietaryPreference(ctx, f.eater.ID)
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Equal(t, 220, f.store.Users[f.eater.ID].Coins)
	assert.Len(t, f.store.Txs, 1)
}
