// Package scheduler recomputes the delivery-due flags once a day.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DeliveryRefresher is satisfied by ledger.UseCase.
type DeliveryRefresher interface {
	RefreshDeliveryDue(ctx context.Context) (int, error)
}

type DeliveryScheduler struct {
	uc      DeliveryRefresher
	logger  logger.ZapLogger
	at      string
	timeout time.Duration
	sched   *gocron.Scheduler
}

// NewDeliveryScheduler runs the refresh every day at the given "HH:MM" in loc.
func NewDeliveryScheduler(uc DeliveryRefresher, log logger.ZapLogger, at string, loc *time.Location) *DeliveryScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &DeliveryScheduler{
		uc:      uc,
		logger:  log,
		at:      at,
		timeout: 30 * time.Second,
		sched:   gocron.NewScheduler(loc),
	}
}

// Start refreshes once so flags are correct after a restart, then schedules
// the daily run in the background.
func (s *DeliveryScheduler) Start(ctx context.Context) error {
	s.refresh(ctx)

	if _, err := s.sched.Every(1).Day().At(s.at).SingletonMode().Do(s.refresh, ctx); err != nil {
		return fmt.Errorf("schedule delivery refresh at %q: %w", s.at, err)
	}
	s.sched.StartAsync()
	s.logger.Info("Delivery scheduler started", zap.String("at", s.at))
	return nil
}

func (s *DeliveryScheduler) Stop() {
	s.sched.Stop()
}

func (s *DeliveryScheduler) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	changed, err := s.uc.RefreshDeliveryDue(ctx)
	if err != nil {
		s.logger.Error("Failed to refresh delivery schedule", zap.Error(err))
		return
	}
	s.logger.Info("Delivery schedule refreshed", zap.Int("changed", changed))
}
