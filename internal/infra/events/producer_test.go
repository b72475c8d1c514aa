package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishBookingEvent(t *testing.T) {
	writer := &fakeWriter{}
	producer := NewProducerWithWriter(writer, "booking-events", time.Second)

	occurred := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	event := BookingEvent{
		Type:          TypeBookingCreated,
		BookingID:     42,
		BookingNumber: 12345678,
		UserID:        7,
		Status:        "pending",
		ScheduledAt:   occurred.Add(24 * time.Hour),
		OccurredAt:    occurred,
	}

	require.NoError(t, producer.PublishBookingEvent(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "booking-events", msg.Topic)
	assert.Equal(t, "12345678", string(msg.Key))
	assert.Equal(t, occurred, msg.Time)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "booking.created", decoded["type"])
	assert.EqualValues(t, 12345678, decoded["bookingNumber"])

	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)
}

func TestProducer_PublishError(t *testing.T) {
	producer := NewProducerWithWriter(&fakeWriter{err: errors.New("broker down")}, "booking-events", time.Second)

	err := producer.PublishBookingEvent(context.Background(), BookingEvent{BookingNumber: 1})
	assert.ErrorIs(t, err, ErrPublish)
}

// blockingWriter имитирует брокер, который не отвечает
type blockingWriter struct {
	deadlineSet bool
}

func (w *blockingWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	_, w.deadlineSet = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func (w *blockingWriter) Close() error { return nil }

func TestProducer_PublishTimeout(t *testing.T) {
	t.Run("silent broker is cut off by timeout", func(t *testing.T) {
		writer := &blockingWriter{}
		producer := NewProducerWithWriter(writer, "booking-events", 50*time.Millisecond)

		start := time.Now()
		err := producer.PublishBookingEvent(context.Background(), BookingEvent{BookingNumber: 1})
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPublish)
		assert.Contains(t, err.Error(), context.DeadlineExceeded.Error())
		assert.True(t, writer.deadlineSet)
		assert.Less(t, elapsed, time.Second)
	})

	t.Run("cancelled request context does not abort publish", func(t *testing.T) {
		writer := &fakeWriter{}
		producer := NewProducerWithWriter(writer, "booking-events", time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, producer.PublishBookingEvent(ctx, BookingEvent{BookingNumber: 1}))
		assert.Len(t, writer.messages, 1)
	})

	t.Run("zero timeout falls back to default", func(t *testing.T) {
		producer := NewProducerWithWriter(&fakeWriter{}, "booking-events", 0)
		assert.Equal(t, DefaultPublishTimeout, producer.timeout)
	})
}
