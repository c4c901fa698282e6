// Package user persists accounts with GORM.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hawkker/loyalty/pkg/domain/user"
	"github.com/hawkker/loyalty/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.UserRepository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) Create(ctx context.Context, u *user.User) error {
	m := &User{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Password:             u.Password,
		UserType:             uint8(u.Type),
		Coins:                u.Coins,
		DietaryPreferenceSet: u.DietaryPreferenceSet,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repo) UpdateCoins(ctx context.Context, id uuid.UUID, coins int) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("coins", coins)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *repo) SetDietaryPreference(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("dietary_preference_set", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func mapModelToDomain(m *User) *user.User {
	return &user.User{
		ID:                   m.ID,
		Name:                 m.Name,
		Email:                m.Email,
		Password:             m.Password,
		Type:                 user.Type(m.UserType),
		Coins:                m.Coins,
		DietaryPreferenceSet: m.DietaryPreferenceSet,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

var _ repository.UserRepository = (*repo)(nil)
