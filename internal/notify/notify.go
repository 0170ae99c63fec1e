package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is the user-facing outcome of a ledger operation.
type Notification struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

func Success(msg string) *Notification { return &Notification{Message: msg, Kind: KindSuccess} }
func Failure(msg string) *Notification { return &Notification{Message: msg, Kind: KindError} }

// Event is what gets published for every notification.
type Event struct {
	EventID      string       `json:"event_id"`
	Operation    string       `json:"operation"`
	Notification Notification `json:"notification"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

func NewEvent(op string, n Notification, at time.Time) Event {
	return Event{
		EventID:      uuid.New().String(),
		Operation:    op,
		Notification: n,
		OccurredAt:   at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// LogPublisher writes notifications to the service log.
type LogPublisher struct {
	logger logger.ZapLogger
}

func NewLogPublisher(log logger.ZapLogger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	fields := []zap.Field{
		zap.String("event_id", ev.EventID),
		zap.String("operation", ev.Operation),
		zap.String("message", ev.Notification.Message),
	}
	if ev.Notification.Kind == KindError {
		p.logger.Warn("ledger notification", fields...)
	} else {
		p.logger.Info("ledger notification", fields...)
	}
	return nil
}

// MessageWriter is satisfied by broker.KafkaProducer.
type MessageWriter interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaPublisher sends notifications to a topic keyed by operation.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.Publish(ctx, []byte(ev.Operation), body)
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
