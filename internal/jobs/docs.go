// Package jobs provides scheduled background tasks for order management.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// ServiceTimeReconciliationJob recalculates the average service time of
// every restaurant. Delivering an order already updates the statistic in the
// same transaction; the job repairs statistics after manual data fixes and
// catches restaurants whose last recalculation failed.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&reconcileHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Overlapping runs are skipped. A failing pass is logged and retried on the
// next tick.
package jobs
