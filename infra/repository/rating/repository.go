// Package rating persists purchase reviews with GORM.
package rating

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hawkker/loyalty/pkg/domain/review"
	"github.com/hawkker/loyalty/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.RatingRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, rating *review.Rating) error {
	return r.db.WithContext(ctx).Create(&Rating{
		ID:         rating.ID,
		PurchaseID: rating.PurchaseID,
		EaterID:    rating.EaterID,
		Score:      rating.Score,
		Comment:    rating.Comment,
	}).Error
}

func (r *repo) ExistsForPurchase(ctx context.Context, purchaseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Rating{}).
		Where("purchase_id = ?", purchaseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ repository.RatingRepository = (*repo)(nil)
