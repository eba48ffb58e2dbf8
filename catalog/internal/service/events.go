package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	"github.com/Astemirdum/catalog-service/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, ev model.BookEvent) error
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
}

// NewEnqueuer publishes book events to topic. Sends go through a circuit
// breaker so a dead broker fails fast instead of stalling every mutation.
func NewEnqueuer(producer sarama.SyncProducer, topic string) Enqueuer {
	const (
		recordLength     = 10
		openTimeout      = 30 * time.Second
		percentile       = 0.5
		recoveryRequests = 3
	)
	return &enqueuerImpl{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(recordLength, openTimeout, percentile, recoveryRequests),
	}
}

func (q *enqueuerImpl) Enqueue(_ context.Context, ev model.BookEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(strconv.Itoa(ev.BookID)),
		Value: sarama.ByteEncoder(data),
	}
	return q.cb.Call(func() error {
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
}

type nopEnqueuer struct{}

// NewNopEnqueuer drops every event; used when no broker is configured.
func NewNopEnqueuer() Enqueuer { return nopEnqueuer{} }

func (nopEnqueuer) Enqueue(context.Context, model.BookEvent) error { return nil }

func newEvent(typ model.EventType, b model.Book) model.BookEvent {
	return model.BookEvent{
		EventID:    uuid.NewString(),
		Type:       typ,
		BookID:     b.ID,
		Title:      b.Title,
		Author:     b.Author,
		OccurredAt: time.Now().UTC(),
	}
}
