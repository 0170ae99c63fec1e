package listener

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/fekuna/omnipos-ledger-service/internal/notify"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type fakeUseCase struct {
	ledger.UseCase

	mu    sync.Mutex
	calls []*dto.AddSaleInput
	err   error
}

func (f *fakeUseCase) AddSale(_ context.Context, in *dto.AddSaleInput) (*dto.SaleOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SaleOutcome{Outcome: dto.Outcome{Applied: true}, Sale: &model.SaleRecord{ID: 7}}, nil
}

func (f *fakeUseCase) recorded() []*dto.AddSaleInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*dto.AddSaleInput(nil), f.calls...)
}

// sliceReader serves its messages in order, then blocks until ctx is done.
type sliceReader struct {
	mu   sync.Mutex
	msgs []kafka.Message
	errs []error
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

const validEventID = "5f0c6a8e-3b4f-4c1e-9d0a-2f7b8c9d1e2f"

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *dto.AddSaleInput
	}{
		{
			name:  "delivery",
			value: `{"event_id":"` + validEventID + `","event_type":"DeliveryRecorded","payload":{"customer_id":5,"bottles_sold":3,"amount_received":"450.50","bottles_returned":2,"salesman_id":40}}`,
			want: &dto.AddSaleInput{
				CustomerID:      5,
				BottlesSold:     3,
				AmountReceived:  decimal.RequireFromString("450.50"),
				BottlesReturned: 2,
				UpdateBalance:   true,
			},
		},
		{
			name:  "balance untouched",
			value: `{"event_id":"` + validEventID + `","event_type":"DeliveryRecorded","payload":{"customer_id":5,"bottles_sold":1,"amount_received":0,"update_balance":false}}`,
			want: &dto.AddSaleInput{
				CustomerID:     5,
				BottlesSold:    1,
				AmountReceived: decimal.Zero,
			},
		},
		{name: "other event type", value: `{"event_id":"` + validEventID + `","event_type":"OrderCreated","payload":{"customer_id":5}}`},
		{name: "malformed json", value: `{"event_id":`},
		{name: "bad event id", value: `{"event_id":"abc","event_type":"DeliveryRecorded","payload":{"customer_id":5,"bottles_sold":1}}`},
		{name: "missing customer", value: `{"event_id":"` + validEventID + `","event_type":"DeliveryRecorded","payload":{"bottles_sold":1}}`},
		{name: "negative bottles", value: `{"event_id":"` + validEventID + `","event_type":"DeliveryRecorded","payload":{"customer_id":5,"bottles_sold":-1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			l := NewDeliveryListener(&sliceReader{}, uc, logger.NewNop())
			l.processMessage(context.Background(), []byte(tt.value))

			calls := uc.recorded()
			if tt.want == nil {
				if len(calls) != 0 {
					t.Fatalf("AddSale called %d times, want 0", len(calls))
				}
				return
			}
			if len(calls) != 1 {
				t.Fatalf("AddSale called %d times, want 1", len(calls))
			}
			got := calls[0]
			if got.CustomerID != tt.want.CustomerID || got.BottlesSold != tt.want.BottlesSold ||
				got.BottlesReturned != tt.want.BottlesReturned || got.UpdateBalance != tt.want.UpdateBalance ||
				!got.AmountReceived.Equal(tt.want.AmountReceived) {
				t.Errorf("input = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProcessMessageRejectionIsSwallowed(t *testing.T) {
	uc := &fakeUseCase{err: &ledger.NotifiedError{
		Notification: notify.Failure("Insufficient stock! Only 0 bottles available."),
		Err:          ledger.ErrInsufficientStock,
	}}
	l := NewDeliveryListener(&sliceReader{}, uc, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"event_id":"`+validEventID+`","event_type":"DeliveryRecorded","payload":{"customer_id":5,"bottles_sold":9}}`))

	if n := len(uc.recorded()); n != 1 {
		t.Fatalf("AddSale called %d times, want 1", n)
	}
}

func TestStartConsumesUntilCancelled(t *testing.T) {
	reader := &sliceReader{
		errs: []error{errors.New("broker down")},
		msgs: []kafka.Message{
			{Value: []byte(`{"event_id":"` + validEventID + `","event_type":"DeliveryRecorded","payload":{"customer_id":5,"bottles_sold":1}}`)},
			{Value: []byte(`{"event_id":"` + validEventID + `","event_type":"DeliveryRecorded","payload":{"customer_id":6,"bottles_sold":2}}`)},
		},
	}
	uc := &fakeUseCase{}
	l := NewDeliveryListener(reader, uc, logger.NewNop())
	l.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(uc.recorded()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
	if calls := uc.recorded(); len(calls) != 2 || calls[1].CustomerID != 6 {
		t.Errorf("calls = %+v", calls)
	}
}
