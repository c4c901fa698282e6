// Package notification delivers push messages to eaters when a vendor
// completes one of their redemptions. Delivery rides the event bus:
// redemption commit and notification delivery never share a transaction.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/eventbus"
)

// Pusher sends one push message to one user's registered devices.
type Pusher interface {
	Push(ctx context.Context, userID uuid.UUID, message string, data map[string]string) error
}

// LogPusher writes messages to the log instead of a push gateway. Used in
// development and tests.
type LogPusher struct {
	Logger *slog.Logger
}

func (p *LogPusher) Push(ctx context.Context, userID uuid.UUID, message string, data map[string]string) error {
	p.Logger.Info("push notification", "user_id", userID, "message", message, "data", data)
	return nil
}

// RedemptionCompletedHandler returns the bus handler notifying the eater
// that their coins were redeemed. Errors are returned to the bus for
// logging; the redemption itself has already committed.
func RedemptionCompletedHandler(pusher Pusher, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		var event ledger.RedemptionCompleted
		switch v := e.(type) {
		case ledger.RedemptionCompleted:
			event = v
		case *ledger.RedemptionCompleted:
			event = *v
		default:
			logger.Error("unexpected event type", "type", e.Type())
			return fmt.Errorf("unexpected event type: %s", e.Type())
		}
		message := fmt.Sprintf("%d points have been spent at %s.", event.Coins, event.VendorName)
		return pusher.Push(ctx, event.EaterID, message, map[string]string{
			"qr_id":   event.QRID.String(),
			"balance": fmt.Sprintf("%d", event.EaterBalance),
		})
	}
}
