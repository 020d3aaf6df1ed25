package jobs

import (
	"context"
	"log/slog"

	"foodorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconciliationSchedule runs every five minutes. The first field is
// seconds.
const DefaultReconciliationSchedule = "0 */5 * * * *"

type serviceTimeReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileServiceTimesCommand) (int, error)
}

// ServiceTimeReconciliationJob periodically recalculates the average
// service time of every restaurant.
type ServiceTimeReconciliationJob struct {
	handler  serviceTimeReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewServiceTimeReconciliationJob creates the job. An empty schedule means
// DefaultReconciliationSchedule.
func NewServiceTimeReconciliationJob(
	handler serviceTimeReconciler,
	schedule string,
	logger *slog.Logger,
) *ServiceTimeReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconciliationSchedule
	}
	return &ServiceTimeReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "service_time_reconciliation_job"),
	}
}

func (j *ServiceTimeReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Service time reconciliation job started", "schedule", j.schedule)
	return nil
}

// Run performs one reconciliation pass.
func (j *ServiceTimeReconciliationJob) Run() {
	ctx := context.Background()

	updated, err := j.handler.Handle(ctx, commands.NewReconcileServiceTimesCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Service time reconciliation failed", "updated", updated, "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Service time reconciliation finished", "updated", updated)
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *ServiceTimeReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Service time reconciliation job stopped")
}
