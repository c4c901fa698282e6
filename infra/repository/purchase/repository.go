// Package purchase persists purchase records with GORM.
package purchase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hawkker/loyalty/pkg/domain/purchase"
	"github.com/hawkker/loyalty/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.PurchaseRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, p *purchase.Purchase) error {
	return r.db.WithContext(ctx).Create(&Purchase{
		ID:       p.ID,
		EaterID:  p.EaterID,
		VendorID: p.VendorID,
		Amount:   p.Amount,
	}).Error
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	var m Purchase
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrPurchaseNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) GetForEater(ctx context.Context, id, eaterID uuid.UUID) (*purchase.Purchase, error) {
	var m Purchase
	err := r.db.WithContext(ctx).
		Where("id = ? AND eater_id = ?", id, eaterID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrPurchaseNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func mapModelToDomain(m *Purchase) *purchase.Purchase {
	return &purchase.Purchase{
		ID:        m.ID,
		EaterID:   m.EaterID,
		VendorID:  m.VendorID,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}

var _ repository.PurchaseRepository = (*repo)(nil)
