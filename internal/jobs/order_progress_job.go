package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"foodify/internal/core/application/usecases/commands"
	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/core/ports"
	"foodify/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultStepInterval separates consecutive automatic status steps.
	DefaultStepInterval = 5 * time.Second

	sweepSpec   = "@every 1m"
	stepTimeout = 30 * time.Second
)

// OrderAdvancer applies one forward transition; commands.AdvanceOrderCommandHandler implements it.
type OrderAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (*order.Order, error)
}

// ProgressStep is one automatic transition, due Delay after the order was scheduled.
type ProgressStep struct {
	Target order.Status
	Delay  time.Duration
}

// ProgressSteps returns the pipeline walk: PREPARING after one interval,
// OUT_FOR_DELIVERY after two, DELIVERED after three.
func ProgressSteps(interval time.Duration) []ProgressStep {
	return []ProgressStep{
		{Target: order.Preparing, Delay: interval},
		{Target: order.OutForDelivery, Delay: 2 * interval},
		{Target: order.Delivered, Delay: 3 * interval},
	}
}

// OrderProgressJob walks new orders through the delivery pipeline on a timer.
//
// Each step is a one-shot cron entry. When it fires it asks the store to
// advance the order and publishes a status event only if that exact
// transition happened. A step that finds the order deleted, terminal or in an
// unexpected status does nothing, so cancelling an order needs no cleanup here.
type OrderProgressJob struct {
	advancer  OrderAdvancer
	publisher ports.StatusPublisher
	steps     []ProgressStep
	cron      *cron.Cron
	sweeperID cron.EntryID
	now       func() time.Time
	logger    *slog.Logger
}

// NewOrderProgressJob creates the job. A non-positive interval falls back to DefaultStepInterval.
func NewOrderProgressJob(
	advancer OrderAdvancer,
	publisher ports.StatusPublisher,
	interval time.Duration,
	logger *slog.Logger,
) *OrderProgressJob {
	if interval <= 0 {
		interval = DefaultStepInterval
	}

	logger = logger.With("component", "order_progress_job")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	return &OrderProgressJob{
		advancer:  advancer,
		publisher: publisher,
		steps:     ProgressSteps(interval),
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		now:    time.Now,
		logger: logger,
	}
}

// Start launches the scheduler and the sweeper that drops spent steps.
func (j *OrderProgressJob) Start() error {
	id, err := j.cron.AddFunc(sweepSpec, j.Sweep)
	if err != nil {
		return err
	}
	j.sweeperID = id

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order progress job started", "steps", len(j.steps))
	return nil
}

// Stop halts scheduling and waits for steps that are already running.
// Steps still pending are dropped.
func (j *OrderProgressJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order progress job stopped")
}

// Schedule registers every step for orderID relative to now.
func (j *OrderProgressJob) Schedule(orderID kernel.UUID) {
	scheduledAt := j.now()
	for _, step := range j.steps {
		j.cron.Schedule(
			&oneShot{at: scheduledAt.Add(step.Delay)},
			cron.FuncJob(func() { j.runStep(orderID, step.Target) }),
		)
	}

	j.logger.Debug("Order progress scheduled", "orderId", orderID.String())
}

// Pending reports how many steps are registered and have not fired yet.
func (j *OrderProgressJob) Pending() int {
	pending := 0
	for _, e := range j.cron.Entries() {
		if e.ID != j.sweeperID && !e.Next.IsZero() {
			pending++
		}
	}
	return pending
}

// Sweep removes steps that have already fired.
func (j *OrderProgressJob) Sweep() {
	for _, e := range j.cron.Entries() {
		if e.ID != j.sweeperID && e.Next.IsZero() {
			j.cron.Remove(e.ID)
		}
	}
}

func (j *OrderProgressJob) runStep(orderID kernel.UUID, target order.Status) {
	ctx, cancel := context.WithTimeout(context.Background(), stepTimeout)
	defer cancel()

	logger := j.logger.With("orderId", orderID.String(), "target", target.String())

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid progress step", "error", err)
		return
	}

	updated, err := j.advancer.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		logger.DebugContext(ctx, "Order no longer exists, step skipped")
		return
	case errors.Is(err, order.ErrStatusOutOfSequence):
		logger.DebugContext(ctx, "Order status diverged, step skipped", "error", err)
		return
	case err != nil:
		logger.ErrorContext(ctx, "Order progress step failed", "error", err)
		return
	}

	if updated == nil || updated.Status() != target {
		logger.DebugContext(ctx, "Order is terminal, step skipped")
		return
	}

	event := ports.OrderStatusEvent{OrderID: orderID, Status: target}
	if err = j.publisher.Publish(ctx, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish status event", "error", err)
	}
}

// oneShot is a cron.Schedule that fires once at a fixed time.
type oneShot struct {
	at    time.Time
	spent atomic.Bool
}

func (s *oneShot) Next(time.Time) time.Time {
	if s.spent.Swap(true) {
		return time.Time{}
	}
	return s.at
}
