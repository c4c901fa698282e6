// Package translog reads the transaction_logs reporting view, which joins
// the debit and credit halves of every redemption by QR id.
package translog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/repository"
)

// row mirrors one record of the transaction_logs view.
type row struct {
	QRID      uuid.UUID `gorm:"column:qr_id"`
	CreatedAt time.Time `gorm:"column:created_at"`

	DebitID     uuid.UUID `gorm:"column:debit_id"`
	DebitUserID uuid.UUID `gorm:"column:debit_user_id"`
	DebitCoins  int       `gorm:"column:debit_coins"`
	DebitReason uint8     `gorm:"column:debit_reason"`

	CreditID     *uuid.UUID `gorm:"column:credit_id"`
	CreditUserID *uuid.UUID `gorm:"column:credit_user_id"`
	CreditCoins  *int       `gorm:"column:credit_coins"`
	CreditReason *uint8     `gorm:"column:credit_reason"`
}

func (row) TableName() string {
	return "transaction_logs"
}

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.TransactionLogRepository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context, limit, offset int) ([]*ledger.TransactionLogEntry, error) {
	var rows []row
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*ledger.TransactionLogEntry, 0, len(rows))
	for i := range rows {
		out = append(out, mapRowToDomain(&rows[i]))
	}
	return out, nil
}

func mapRowToDomain(m *row) *ledger.TransactionLogEntry {
	e := &ledger.TransactionLogEntry{
		QRID:        m.QRID,
		CreatedAt:   m.CreatedAt,
		DebitID:     m.DebitID,
		DebitUserID: m.DebitUserID,
		DebitCoins:  m.DebitCoins,
		DebitReason: ledger.Reason(m.DebitReason),

		CreditID:     m.CreditID,
		CreditUserID: m.CreditUserID,
		CreditCoins:  m.CreditCoins,
	}
	if m.CreditReason != nil {
		reason := ledger.Reason(*m.CreditReason)
		e.CreditReason = &reason
	}
	return e
}

var _ repository.TransactionLogRepository = (*repo)(nil)
