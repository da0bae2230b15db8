package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"dealflow/internal/domain"
	"dealflow/internal/domain/service/notification"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/logx"
)

const (
	DefaultSchedule = "@every 15m"

	releaseTimeout = 5 * time.Second
)

var ErrAlreadyRunning = errors.New("sweeper is already running")

type Sweeper interface {
	Sweep(ctx context.Context) (notification.SweepResult, error)
}

// Lease guards a sweep across replicas. ok is false when another replica
// holds it.
type Lease interface {
	Acquire(ctx context.Context) (release func(context.Context) error, ok bool, err error)
}

// NotificationSweeper runs the notification sweep on a cron schedule. A
// cycle that is still running when the next one is due is skipped.
type NotificationSweeper struct {
	gate     Sweeper
	lease    Lease
	schedule string

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewNotificationSweeper(gate Sweeper) *NotificationSweeper {
	return &NotificationSweeper{
		gate:     gate,
		schedule: DefaultSchedule,
	}
}

func (w *NotificationSweeper) WithLease(lease Lease) *NotificationSweeper {
	w.lease = lease
	return w
}

func (w *NotificationSweeper) WithSchedule(spec string) *NotificationSweeper {
	if spec != "" {
		w.schedule = spec
	}
	return w
}

// Start schedules sweeps until Stop is called or ctx is cancelled.
func (w *NotificationSweeper) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return ErrAlreadyRunning
	}

	sweepCtx, cancel := context.WithCancel(ctx)

	log := cronLogger{ctx: sweepCtx}
	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)

	if _, err := c.AddFunc(w.schedule, func() { _, _, _ = w.RunOnce(sweepCtx) }); err != nil {
		cancel()
		return domain.WrapError(err, errcodes.ValidationError, "invalid sweep schedule")
	}

	w.cancelFunc = cancel
	w.isRunning = true

	c.Start()
	logger(ctx).Info("notification sweeper started", slog.String("schedule", w.schedule))

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		<-sweepCtx.Done()
		<-c.Stop().Done()

		logger(ctx).Info("notification sweeper stopped")
	}()

	return nil
}

// Stop cancels the schedule and waits for a running sweep to finish.
func (w *NotificationSweeper) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning возвращает текущий статус
func (w *NotificationSweeper) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// RunOnce performs one sweep. acquired is false when another replica holds
// the lease and nothing was done.
func (w *NotificationSweeper) RunOnce(ctx context.Context) (notification.SweepResult, bool, error) {
	if w.lease != nil {
		release, ok, err := w.lease.Acquire(ctx)
		if err != nil {
			logger(ctx).Error("lease.Acquire", logx.Error(err))
			return notification.SweepResult{}, false, err
		}

		if !ok {
			logger(ctx).Debug("sweep lease held elsewhere, skipping")
			return notification.SweepResult{}, false, nil
		}

		defer func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			defer cancel()

			if err := release(releaseCtx); err != nil {
				logger(ctx).Warn("lease release failed", logx.Error(err))
			}
		}()
	}

	result, err := w.gate.Sweep(ctx)
	if err != nil {
		if domain.HasCode(err, errcodes.SweepInProgress) {
			logger(ctx).Debug("sweep already in progress")
			return result, false, nil
		}

		logger(ctx).Error("gate.Sweep", logx.Error(err))
		return result, true, err
	}

	return result, true, nil
}
