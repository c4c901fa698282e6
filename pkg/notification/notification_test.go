package notification_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/notification"
)

type recordingPusher struct {
	userID  uuid.UUID
	message string
	data    map[string]string
	calls   int
}

func (p *recordingPusher) Push(_ context.Context, userID uuid.UUID, message string, data map[string]string) error {
	p.userID = userID
	p.message = message
	p.data = data
	p.calls++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedemptionCompletedHandler(t *testing.T) {
	pusher := &recordingPusher{}
	handler := notification.RedemptionCompletedHandler(pusher, discardLogger())

	eaterID := uuid.New()
	qrID := uuid.New()
	event := ledger.RedemptionCompleted{
		QRID:         qrID,
		EaterID:      eaterID,
		VendorID:     uuid.New(),
		VendorName:   "Falafel Hut",
		Coins:        50,
		EaterBalance: 150,
	}

	require.NoError(t, handler(context.Background(), event))
	assert.Equal(t, 1, pusher.calls)
	assert.Equal(t, eaterID, pusher.userID)
	assert.Equal(t, "50 points have been spent at Falafel Hut.", pusher.message)
	assert.Equal(t, qrID.String(), pusher.data["qr_id"])
	assert.Equal(t, "150", pusher.data["balance"])
}

func TestRedemptionCompletedHandler_PointerEvent(t *testing.T) {
	pusher := &recordingPusher{}
	handler := notification.RedemptionCompletedHandler(pusher, discardLogger())

	event := &ledger.RedemptionCompleted{VendorName: "Falafel Hut", Coins: 100}
	require.NoError(t, handler(context.Background(), event))
	assert.Equal(t, "100 points have been spent at Falafel Hut.", pusher.message)
}
