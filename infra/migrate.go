package infra

import (
	"gorm.io/gorm"

	"github.com/hawkker/loyalty/infra/repository/purchase"
	"github.com/hawkker/loyalty/infra/repository/rating"
	"github.com/hawkker/loyalty/infra/repository/settings"
	"github.com/hawkker/loyalty/infra/repository/transaction"
	"github.com/hawkker/loyalty/infra/repository/user"
)

// transactionLogsView pairs the two halves of every redemption by QR id.
// Reward and adjustment credits mint their own QR id, so the inner filter on
// debits keeps them out of the view.
const transactionLogsView = `
CREATE OR REPLACE VIEW transaction_logs AS
SELECT
    d.qr_id,
    d.created_at,
    d.id      AS debit_id,
    d.user_id AS debit_user_id,
    d.coins   AS debit_coins,
    d.reason  AS debit_reason,
    c.id      AS credit_id,
    c.user_id AS credit_user_id,
    c.coins   AS credit_coins,
    c.reason  AS credit_reason
FROM transactions d
LEFT JOIN transactions c ON c.qr_id = d.qr_id AND c.tx_type = 1
WHERE d.tx_type = 0 AND d.reason = 0`

// Migrate creates the schema and the reporting view.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&user.User{},
		&settings.Settings{},
		&transaction.Transaction{},
		&purchase.Purchase{},
		&rating.Rating{},
	)
	if err != nil {
		return err
	}
	return db.Exec(transactionLogsView).Error
}
