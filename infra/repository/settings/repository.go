// Package settings persists general-settings rows with GORM.
package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.SettingsRepository {
	return &repo{db: db}
}

// Latest returns the most recently created row. Staff may have saved several
// rows over time; only the newest one prices coin operations.
func (r *repo) Latest(ctx context.Context) (*ledger.Settings, error) {
	var m Settings
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrSettingsMissing
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) Create(ctx context.Context, s *ledger.Settings) error {
	return r.db.WithContext(ctx).Create(&Settings{
		ID:                                 s.ID,
		OneCoinToPounds:                    s.OneCoinToPounds,
		MinimumCoinsRedeemable:             s.MinimumCoinsRedeemable,
		MaximumCoinsRedeemable:             s.MaximumCoinsRedeemable,
		CoinsIncrementalValue:              s.CoinsIncrementalValue,
		ScanQRPoints:                       s.ScanQRPoints,
		ReviewPoints:                       s.ReviewPoints,
		DietaryPreference:                  s.DietaryPreference,
		EaterReviewReminder:                s.EaterReviewReminder,
		IncompleteProfileEmailReminderDays: s.IncompleteProfileEmailReminderDays,
		MinimumReviewsVendor:               s.MinimumReviewsVendor,
		SearchRadiusInMiles:                s.SearchRadiusInMiles,
	}).Error
}

func mapModelToDomain(m *Settings) *ledger.Settings {
	return &ledger.Settings{
		ID:                                 m.ID,
		OneCoinToPounds:                    m.OneCoinToPounds,
		MinimumCoinsRedeemable:             m.MinimumCoinsRedeemable,
		MaximumCoinsRedeemable:             m.MaximumCoinsRedeemable,
		CoinsIncrementalValue:              m.CoinsIncrementalValue,
		ScanQRPoints:                       m.ScanQRPoints,
		ReviewPoints:                       m.ReviewPoints,
		DietaryPreference:                  m.DietaryPreference,
		EaterReviewReminder:                m.EaterReviewReminder,
		IncompleteProfileEmailReminderDays: m.IncompleteProfileEmailReminderDays,
		MinimumReviewsVendor:               m.MinimumReviewsVendor,
		SearchRadiusInMiles:                m.SearchRadiusInMiles,
		CreatedAt:                          m.CreatedAt,
	}
}

var _ repository.SettingsRepository = (*repo)(nil)
