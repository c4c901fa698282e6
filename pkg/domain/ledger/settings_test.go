package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testSettings() *Settings {
	return &Settings{
		OneCoinToPounds:        decimal.NewFromFloat(0.05),
		MinimumCoinsRedeemable: decimal.NewFromInt(50),
		MaximumCoinsRedeemable: decimal.NewFromInt(500),
		CoinsIncrementalValue:  decimal.NewFromInt(50),
		ScanQRPoints:           10,
		ReviewPoints:           5,
		DietaryPreference:      20,
	}
}

func TestSettingsConvert(t *testing.T) {
	s := testSettings()
	assert.True(t, s.Convert(100).Equal(decimal.NewFromInt(5)))
	assert.True(t, s.Convert(0).Equal(decimal.Zero))
}

func TestWithinRedeemableLimits(t *testing.T) {
	s := testSettings()
	assert.False(t, s.WithinRedeemableLimits(49))
	assert.True(t, s.WithinRedeemableLimits(50))
	assert.True(t, s.WithinRedeemableLimits(500))
	assert.False(t, s.WithinRedeemableLimits(501))
}

func TestSettingsValidate(t *testing.T) {
	s := testSettings()
	assert.NoError(t, s.Validate())

	s.MinimumCoinsRedeemable = decimal.NewFromInt(600)
	assert.Error(t, s.Validate())

	s = testSettings()
	s.OneCoinToPounds = decimal.NewFromInt(-1)
	assert.Error(t, s.Validate())

	s = testSettings()
	s.MinimumCoinsRedeemable = decimal.NewFromInt(-50)
	s.MaximumCoinsRedeemable = decimal.NewFromInt(-10)
	assert.Error(t, s.Validate())

	s = testSettings()
	s.ReviewPoints = -5
	assert.Error(t, s.Validate())
}
