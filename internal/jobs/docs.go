// Package jobs provides scheduled background tasks for the order service.
//
// Jobs run on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderProgressJob moves every new order through the delivery pipeline
// without operator input: PREPARING one interval after creation,
// OUT_FOR_DELIVERY after two, DELIVERED after three (5s by default).
// Each step is a one-shot cron entry; a sweeper running every minute removes
// entries that have fired.
//
// # Usage
//
//	progress := jobs.NewOrderProgressJob(advanceHandler, publisher, 5*time.Second, logger)
//	jobManager := jobs.NewJobManager(progress)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
//	// after an order is created
//	progress.Schedule(created.ID())
//
// # Error Handling
//
//   - a step that finds the order deleted, terminal or out of sequence stops quietly
//   - other failures are logged and never reach the caller
//   - panics inside a step are recovered by the cron chain
package jobs
