package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredit(t *testing.T) {
	userID := uuid.New()
	tx, err := NewCredit(userID, 10, decimal.NewFromFloat(0.5), 110, ReasonEaterQRScan, "Added points for scanning QR")
	require.NoError(t, err)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, 10, tx.Coins)
	assert.Equal(t, 110, tx.Balance)
	assert.Equal(t, Credit, tx.Type)
	assert.Equal(t, Success, tx.Status)
	assert.NotEqual(t, uuid.Nil, tx.QRID)
}

func TestNewCredit_Invalid(t *testing.T) {
	_, err := NewCredit(uuid.New(), 0, decimal.Zero, 0, ReasonEaterQRScan, "")
	assert.Error(t, err)

	_, err = NewCredit(uuid.New(), 5, decimal.Zero, -1, ReasonEaterQRScan, "")
	assert.Error(t, err)
}

func TestNewPendingDebit(t *testing.T) {
	userID := uuid.New()
	tx, err := NewPendingDebit(userID, 50, decimal.NewFromFloat(2.5), 200)
	require.NoError(t, err)
	assert.Equal(t, Debit, tx.Type)
	assert.Equal(t, Pending, tx.Status)
	assert.Equal(t, ReasonEaterReward, tx.Reason)
	// balance snapshot is the balance at request time, nothing deducted yet
	assert.Equal(t, 200, tx.Balance)
	assert.NotEqual(t, uuid.Nil, tx.QRID)
}

func TestPair(t *testing.T) {
	debit, err := NewPendingDebit(uuid.New(), 50, decimal.NewFromFloat(2.5), 200)
	require.NoError(t, err)

	vendorID := uuid.New()
	credit, err := debit.Pair(vendorID, 75, "lunch redemption")
	require.NoError(t, err)

	assert.Equal(t, debit.QRID, credit.QRID)
	assert.Equal(t, debit.Coins, credit.Coins)
	assert.True(t, debit.Amount.Equal(credit.Amount))
	assert.Equal(t, vendorID, credit.UserID)
	assert.Equal(t, Credit, credit.Type)
	assert.Equal(t, ReasonVendorRedeemed, credit.Reason)
	assert.Equal(t, Success, credit.Status)
	assert.Equal(t, 75, credit.Balance)
}

func TestPair_OnlyDebit(t *testing.T) {
	credit, err := NewCredit(uuid.New(), 5, decimal.Zero, 5, ReasonEaterReview, "")
	require.NoError(t, err)
	_, err = credit.Pair(uuid.New(), 10, "")
	assert.Error(t, err)
}

func TestNewAdminAdjustment(t *testing.T) {
	userID := uuid.New()

	up := NewAdminAdjustment(userID, 100, 150, decimal.NewFromFloat(2.5), "correction")
	require.NotNil(t, up)
	assert.Equal(t, Credit, up.Type)
	assert.Equal(t, 50, up.Coins)
	assert.Equal(t, 150, up.Balance)
	assert.Equal(t, ReasonAdminPoints, up.Reason)
	assert.Equal(t, Success, up.Status)

	down := NewAdminAdjustment(userID, 100, 40, decimal.NewFromFloat(3), "correction")
	require.NotNil(t, down)
	assert.Equal(t, Debit, down.Type)
	assert.Equal(t, 60, down.Coins)
	assert.Equal(t, 40, down.Balance)

	assert.Nil(t, NewAdminAdjustment(userID, 100, 100, decimal.Zero, "no-op"))
}

func TestTerminal(t *testing.T) {
	tx := &Transaction{Status: Pending}
	assert.False(t, tx.Terminal())
	tx.Status = Success
	assert.True(t, tx.Terminal())
	tx.Status = Failed
	assert.True(t, tx.Terminal())
}

func TestSignedCoins(t *testing.T) {
	debit := &Transaction{Type: Debit, Coins: 30}
	credit := &Transaction{Type: Credit, Coins: 30}
	assert.Equal(t, -30, debit.SignedCoins())
	assert.Equal(t, 30, credit.SignedCoins())
}
