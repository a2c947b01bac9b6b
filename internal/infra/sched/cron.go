// Package sched runs the recurring background jobs: the nightly analytics
// rollup and the subscription expiry sweep.
package sched

import (
	"context"
	"log/slog"
	"time"

	"bazaar/internal/errors"
	"bazaar/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const (
	// rollupSchedule aggregates the previous UTC day shortly after midnight.
	rollupSchedule = "15 0 * * *"
	// expirySchedule sweeps lapsed subscriptions hourly.
	expirySchedule = "0 * * * *"

	jobTimeout = 5 * time.Minute
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Logger       *slog.Logger
	Analytics    usecase.AnalyticsUsecase
	Subscription usecase.SubscriptionUsecase
}

// Scheduler owns the cron runner so jobs start and stop with the app.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New builds the scheduler, registers the jobs and hooks them into the fx
// lifecycle.
func New(params Params) (*Scheduler, error) {
	runner := cron.New(cron.WithLocation(time.UTC))
	scheduler := &Scheduler{
		cron:   runner,
		logger: params.Logger,
	}

	if _, err := runner.AddFunc(rollupSchedule, func() {
		scheduler.runRollup(params.Analytics)
	}); err != nil {
		return nil, errors.Wrap(err, "failed to register rollup job")
	}

	if _, err := runner.AddFunc(expirySchedule, func() {
		scheduler.runExpirySweep(params.Subscription)
	}); err != nil {
		return nil, errors.Wrap(err, "failed to register expiry sweep job")
	}

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runner.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := runner.Stop()
			select {
			case <-stopped.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	return scheduler, nil
}

// runRollup aggregates the previous UTC day for every active vendor.
func (s *Scheduler) runRollup(analytics usecase.AnalyticsUsecase) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	day := time.Now().UTC().AddDate(0, 0, -1)

	vendors, err := analytics.RollupDay(ctx, day)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "Analytics rollup failed",
			slog.Time("day", day),
			slog.String("error", err.Error()),
		)

		return
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "Analytics rollup completed",
		slog.Time("day", day),
		slog.Int("vendors", vendors),
	)
}

// runExpirySweep resolves subscriptions whose end date has passed.
func (s *Scheduler) runExpirySweep(subscription usecase.SubscriptionUsecase) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	expired, err := subscription.ExpireLapsed(ctx, time.Now())
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "Subscription expiry sweep failed",
			slog.String("error", err.Error()),
		)

		return
	}

	if expired > 0 {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "Subscription expiry sweep completed",
			slog.Int("resolved", expired),
		)
	}
}
