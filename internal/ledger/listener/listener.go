package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventDeliveryRecorded = "DeliveryRecorded"

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// DeliveryListener books deliveries reported by salesman devices as sales.
type DeliveryListener struct {
	consumer MessageReader
	uc       ledger.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewDeliveryListener(consumer MessageReader, uc ledger.UseCase, logger logger.ZapLogger) *DeliveryListener {
	return &DeliveryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *DeliveryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Delivery Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Delivery Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type DeliveryRecordedEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   DeliveryPayload `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type DeliveryPayload struct {
	CustomerID      int64           `json:"customer_id"`
	BottlesSold     int             `json:"bottles_sold"`
	AmountReceived  decimal.Decimal `json:"amount_received"`
	BottlesReturned int             `json:"bottles_returned"`
	UpdateBalance   *bool           `json:"update_balance"`
	SalesmanID      *int64          `json:"salesman_id"`
}

// toInput maps a payload onto AddSale. Device deliveries update the balance
// unless the event says otherwise.
func (p DeliveryPayload) toInput() *dto.AddSaleInput {
	update := true
	if p.UpdateBalance != nil {
		update = *p.UpdateBalance
	}
	return &dto.AddSaleInput{
		CustomerID:      p.CustomerID,
		BottlesSold:     p.BottlesSold,
		AmountReceived:  p.AmountReceived,
		BottlesReturned: p.BottlesReturned,
		UpdateBalance:   update,
		SalesmanID:      p.SalesmanID,
	}
}

func (l *DeliveryListener) processMessage(ctx context.Context, value []byte) {
	var event DeliveryRecordedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventDeliveryRecorded {
		return
	}
	if _, err := uuid.Parse(event.EventID); err != nil {
		l.logger.Warn("Dropping delivery with malformed event id", zap.String("event_id", event.EventID))
		return
	}
	if event.Payload.CustomerID == 0 || event.Payload.BottlesSold < 0 || event.Payload.BottlesReturned < 0 || event.Payload.AmountReceived.IsNegative() {
		l.logger.Warn("Dropping invalid delivery", zap.String("event_id", event.EventID))
		return
	}

	l.logger.Info("Processing DeliveryRecorded event",
		zap.String("event_id", event.EventID),
		zap.Int64("customer_id", event.Payload.CustomerID),
	)

	out, err := l.uc.AddSale(ctx, event.Payload.toInput())
	if err != nil {
		var notified *ledger.NotifiedError
		if errors.As(err, &notified) {
			l.logger.Warn("Delivery rejected",
				zap.String("event_id", event.EventID),
				zap.String("reason", notified.Error()),
			)
			return
		}
		l.logger.Error("Failed to record delivery",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return
	}
	if out.Sale != nil {
		l.logger.Debug("Delivery recorded", zap.String("event_id", event.EventID), zap.Int64("sale_id", out.Sale.ID))
	}
}
