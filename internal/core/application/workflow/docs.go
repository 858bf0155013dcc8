// Package workflow drains the task queue. A Dispatcher polls the pending
// tasks, groups them by role and hands each group to the task handlers that
// role registered.
//
// # Roles
//
//   - Secretary: customer emails and contracts
//   - Accounting: invoices, payment reminders and driver wages
//   - Scheduler: driver assignment, daily reminders and the overdue check
//   - Comms: customer and driver notifications
//   - Escalation: critical issues left for a human
//
// # Outcomes
//
// Every handler reports Done, Skipped or Deferred. With auto-acknowledge
// enabled the dispatcher completes Done and Skipped tasks; Deferred tasks
// and failed tasks stay pending and are offered again on the next cycle, so
// handlers must tolerate being run more than once.
//
// Usage:
//
//	dispatcher := workflow.NewDispatcher(taskUoWFactory, logger, workflow.Config{AutoAcknowledge: true})
//	dispatcher.RegisterRole(workflow.NewScheduler(uowFactory, assign, createTask, send, logger))
//	report, err := dispatcher.RunCycle(ctx)
package workflow
