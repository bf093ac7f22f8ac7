package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_PublishMovementEvent(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	ev := ledger.MovementEvent{
		EventType:   ledger.EventMovementRecorded,
		OperationID: "op-1",
		ItemID:      1,
		ItemCode:    "BR001",
		MovementID:  9,
		Type:        "out",
		Quantity:    3,
		StockBefore: 10,
		StockAfter:  7,
		OccurredAt:  fixed,
	}
	require.NoError(t, p.Publish(context.Background(), "BR001", ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "BR001", string(msg.Key))
	assert.Equal(t, fixed, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, ledger.EventMovementRecorded, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "BR001", decoded["item_code"])
	assert.EqualValues(t, 7, decoded["stock_after"])
}

func TestProducer_PublishWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	p := newProducer(w)

	err := p.Publish(context.Background(), "BR001", map[string]string{"a": "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker caído")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
