package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceivable(t *testing.T) {
	due := time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC)

	t.Run("creates an open receivable", func(t *testing.T) {
		orderID := uuid.New()
		rcv, err := NewReceivable(orderID, decimal.NewFromInt(150), due)
		require.NoError(t, err)
		assert.Equal(t, orderID, rcv.OrderID)
		assert.Equal(t, ReceivableStatusOpen, rcv.Status)
		assert.True(t, rcv.IsOpen())
		assert.Empty(t, rcv.MatchedTransactionID)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := NewReceivable(uuid.New(), decimal.Zero, due)
		assert.Error(t, err)

		_, err = NewReceivable(uuid.New(), decimal.NewFromInt(-10), due)
		assert.Error(t, err)
	})
}

func TestReceivableMarkMatched(t *testing.T) {
	due := time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC)

	t.Run("records the matching transaction", func(t *testing.T) {
		rcv, err := NewReceivable(uuid.New(), decimal.NewFromInt(150), due)
		require.NoError(t, err)

		err = rcv.MarkMatched("FT001", valueobject.NewMoneyBRL(decimal.NewFromInt(150)))
		require.NoError(t, err)
		assert.Equal(t, ReceivableStatusMatched, rcv.Status)
		assert.Equal(t, "FT001", rcv.MatchedTransactionID)
		require.NotNil(t, rcv.MatchedAt)
		assert.False(t, rcv.IsOpen())
	})

	t.Run("rejects an amount that differs in cents", func(t *testing.T) {
		rcv, err := NewReceivable(uuid.New(), decimal.NewFromInt(150), due)
		require.NoError(t, err)

		err = rcv.MarkMatched("FT001", valueobject.NewMoneyBRL(decimal.RequireFromString("150.01")))
		assert.Error(t, err)
		assert.True(t, rcv.IsOpen())
	})

	t.Run("accepts sub-cent differences that round equal", func(t *testing.T) {
		rcv, err := NewReceivable(uuid.New(), decimal.RequireFromString("150.00"), due)
		require.NoError(t, err)

		err = rcv.MarkMatched("FT001", valueobject.NewMoneyBRL(decimal.RequireFromString("150.001")))
		assert.NoError(t, err)
	})

	t.Run("cannot match twice", func(t *testing.T) {
		rcv, err := NewReceivable(uuid.New(), decimal.NewFromInt(150), due)
		require.NoError(t, err)
		require.NoError(t, rcv.MarkMatched("FT001", valueobject.NewMoneyBRL(decimal.NewFromInt(150))))

		err = rcv.MarkMatched("FT002", valueobject.NewMoneyBRL(decimal.NewFromInt(150)))
		assert.Error(t, err)
		assert.Equal(t, "FT001", rcv.MatchedTransactionID)
	})
}

func TestReceivableWriteOff(t *testing.T) {
	due := time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC)

	t.Run("writes off an open receivable", func(t *testing.T) {
		rcv, err := NewReceivable(uuid.New(), decimal.NewFromInt(150), due)
		require.NoError(t, err)

		require.NoError(t, rcv.WriteOff("client insolvent"))
		assert.Equal(t, ReceivableStatusWrittenOff, rcv.Status)
		assert.Equal(t, "client insolvent", rcv.WriteOffReason)
		require.NotNil(t, rcv.WrittenOffAt)
	})

	t.Run("cannot write off a matched receivable", func(t *testing.T) {
		rcv, err := NewReceivable(uuid.New(), decimal.NewFromInt(150), due)
		require.NoError(t, err)
		require.NoError(t, rcv.MarkMatched("FT001", valueobject.NewMoneyBRL(decimal.NewFromInt(150))))

		assert.Error(t, rcv.WriteOff("too late"))
	})
}
