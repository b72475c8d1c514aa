package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter интерфейс *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultPublishTimeout ограничение на одну публикацию, если timeout не задан
const DefaultPublishTimeout = 2 * time.Second

// Producer публикует события бронирований в Kafka
type Producer struct {
	writer  MessageWriter
	topic   string
	timeout time.Duration
}

// NewProducer создает продюсера для списка брокеров и топика.
// timeout ограничивает одну публикацию вместе с повторами внутри writer.
func NewProducer(brokers []string, topic string, timeout time.Duration) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: timeout,
		ReadTimeout:  timeout,
		MaxAttempts:  2,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return NewProducerWithWriter(writer, topic, timeout)
}

// NewProducerWithWriter создает продюсера поверх готового writer
func NewProducerWithWriter(writer MessageWriter, topic string, timeout time.Duration) *Producer {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &Producer{writer: writer, topic: topic, timeout: timeout}
}

// PublishBookingEvent публикует событие, ключ сообщения = номер бронирования.
// Публикация не зависит от отмены запроса, но не длится дольше p.timeout.
func (p *Producer) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.BookingNumber, 10)),
		Value: data,
		Time:  event.OccurredAt,
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("%w: topic=%s key=%d: %v", ErrPublish, p.topic, event.BookingNumber, err)
	}

	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
