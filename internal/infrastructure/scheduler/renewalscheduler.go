package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "subtrack/internal/application/subscription/usecases"
	"subtrack/internal/shared/logger"
)

// RenewalScheduler drives the periodic billing maintenance: each tick runs a
// renewal pass first and a reminder pass after, so subscriptions renewed in
// the same tick start the new cycle with a cleared notification marker.
type RenewalScheduler struct {
	processRenewalsUC     *subscriptionUsecases.ProcessRenewalsUseCase
	notifySubscriptionsUC *subscriptionUsecases.NotifySubscriptionsUseCase
	logger                logger.Interface
	stopChan              chan struct{}
	stopOnce              sync.Once
	wg                    sync.WaitGroup
	interval              time.Duration
}

// NewRenewalScheduler creates a new RenewalScheduler.
func NewRenewalScheduler(
	processRenewalsUC *subscriptionUsecases.ProcessRenewalsUseCase,
	notifySubscriptionsUC *subscriptionUsecases.NotifySubscriptionsUseCase,
	interval time.Duration,
	logger logger.Interface,
) *RenewalScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RenewalScheduler{
		processRenewalsUC:     processRenewalsUC,
		notifySubscriptionsUC: notifySubscriptionsUC,
		logger:                logger,
		stopChan:              make(chan struct{}),
		interval:              interval,
	}
}

// Start starts the scheduler
func (s *RenewalScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting renewal scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *RenewalScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping renewal scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("renewal scheduler stopped")
	})
}

func (s *RenewalScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to catch up after downtime
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("renewal scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *RenewalScheduler) runOnce(ctx context.Context) {
	startTime := time.Now()

	renewals, err := s.processRenewalsUC.Execute(ctx, subscriptionUsecases.ProcessRenewalsCommand{})
	if err != nil {
		s.logger.Errorw("renewal pass failed",
			"error", err,
			"duration", time.Since(startTime),
		)
	} else if renewals.Updated() > 0 {
		s.logger.Infow("renewal pass completed",
			"activated", renewals.Activated,
			"renewed", renewals.Renewed,
			"duration", time.Since(startTime),
		)
	}

	notifyStart := time.Now()
	reminders, err := s.notifySubscriptionsUC.Execute(ctx, subscriptionUsecases.NotifySubscriptionsCommand{})
	if err != nil {
		s.logger.Errorw("reminder pass failed",
			"error", err,
			"duration", time.Since(notifyStart),
		)
		return
	}

	if reminders.NotificationsSent > 0 || reminders.UsersSkipped > 0 {
		s.logger.Infow("reminder pass completed",
			"notifications_sent", reminders.NotificationsSent,
			"users_skipped", reminders.UsersSkipped,
			"duration", time.Since(notifyStart),
		)
	}
}
