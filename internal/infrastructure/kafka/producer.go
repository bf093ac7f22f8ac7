package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

var _ ledger.EventPublisher = (*Producer)(nil)

// messageWriter lo que Producer necesita de *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica eventos del libro como JSON. La clave es el código del item:
// el balanceador por hash mantiene los eventos de un mismo item en una partición y en orden.
type Producer struct {
	writer messageWriter
	now    func() time.Time
}

// NewProducer crea un productor síncrono sobre los brokers indicados.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newProducer(writer)
}

func newProducer(w messageWriter) *Producer {
	return &Producer{writer: w, now: time.Now}
}

// Publish serializa el evento y lo escribe con la clave dada.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  p.now(),
	}
	if ev, ok := event.(ledger.MovementEvent); ok {
		msg.Headers = []kafka.Header{{Key: "event_type", Value: []byte(ev.EventType)}}
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
