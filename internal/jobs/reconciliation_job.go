package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReconciliationJob runs the scheduled batch reconciliation pass on a fixed
// cadence. The cron chain skips a tick entirely while the previous pass is
// still running, so two batch passes never overlap.
type ReconciliationJob struct {
	handler commands.ReconcileShipmentsCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReconciliationJob creates the job for scheduled reconciliation passes.
// spec is a six-field cron expression (with seconds), e.g. "0 0 * * * *" for
// hourly.
func NewReconciliationJob(
	handler commands.ReconcileShipmentsCommandHandler,
	spec string,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler: handler,
		spec:    spec,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "reconciliation_job"),
	}
}

// Start registers the recurring pass and starts the scheduler. A
// registration failure (invalid cadence) is returned to the caller and is
// fatal at startup: the engine cannot function without its schedule.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileShipmentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// A failed pass performed no writes; the next tick retries it.
			j.logger.ErrorContext(ctx, "Reconciliation pass failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "spec", j.spec)
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
