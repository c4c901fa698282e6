// Package transaction persists ledger entries with GORM.
package transaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hawkker/loyalty/pkg/domain"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.TransactionRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, tx *ledger.Transaction) error {
	return r.db.WithContext(ctx).Create(mapDomainToModel(tx)).Error
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ledger.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		out = append(out, mapModelToDomain(&models[i]))
	}
	return out, nil
}

// ClaimPending locks the pending row for the QR id. Completions of the same
// QR id serialize here: the loser of the race observes no pending row and
// gets ErrInvalidQRCode.
func (r *repo) ClaimPending(ctx context.Context, qrID uuid.UUID) (*ledger.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("qr_id = ? AND status = ?", qrID, uint8(ledger.Pending)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrInvalidQRCode
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) Complete(ctx context.Context, id uuid.UUID, balance int) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND status = ?", id, uint8(ledger.Pending)).
		Updates(map[string]any{
			"status":  uint8(ledger.Success),
			"balance": balance,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledger.ErrTransactionImmutable
	}
	return nil
}

func (r *repo) Void(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND status = ?", id, uint8(ledger.Pending)).
		Update("status", uint8(ledger.Failed))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledger.ErrTransactionImmutable
	}
	return nil
}

func (r *repo) CreditsByQRIDs(ctx context.Context, qrIDs []uuid.UUID) ([]*ledger.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("qr_id IN ? AND tx_type = ?", qrIDs, uint8(ledger.Credit)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		out = append(out, mapModelToDomain(&models[i]))
	}
	return out, nil
}

func (r *repo) SumSuccessCoins(ctx context.Context, userID uuid.UUID) (int, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Select("COALESCE(SUM(CASE WHEN tx_type = ? THEN -coins ELSE coins END), 0)", uint8(ledger.Debit)).
		Where("user_id = ? AND status = ?", userID, uint8(ledger.Success)).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return int(sum), nil
}

func mapDomainToModel(tx *ledger.Transaction) *Transaction {
	return &Transaction{
		ID:         tx.ID,
		UserID:     tx.UserID,
		PurchaseID: tx.PurchaseID,
		QRID:       tx.QRID,
		Coins:      tx.Coins,
		Amount:     tx.Amount,
		Balance:    tx.Balance,
		TxType:     uint8(tx.Type),
		Reason:     uint8(tx.Reason),
		Status:     uint8(tx.Status),
		Note:       tx.Note,
	}
}

func mapModelToDomain(m *Transaction) *ledger.Transaction {
	return &ledger.Transaction{
		ID:         m.ID,
		UserID:     m.UserID,
		PurchaseID: m.PurchaseID,
		QRID:       m.QRID,
		Coins:      m.Coins,
		Amount:     m.Amount,
		Balance:    m.Balance,
		Type:       ledger.Type(m.TxType),
		Reason:     ledger.Reason(m.Reason),
		Status:     ledger.Status(m.Status),
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

var _ repository.TransactionRepository = (*repo)(nil)
