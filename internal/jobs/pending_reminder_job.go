package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"livraison/internal/core/application/usecases/commands"
)

// pendingReminderSchedule runs the scan once a minute. Reminders are about
// deliveries stuck for many minutes, so sub-minute precision buys nothing.
const pendingReminderSchedule = "0 * * * * *"

// PendingReminderJob periodically scans for deliveries stuck in Pending and
// pings the notifier about each one so integrators can chase them up.
type PendingReminderJob struct {
	handler   commands.RemindPendingDeliveriesCommandHandler
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingReminderJob creates the reminder job. olderThan is how long a
// delivery may stay Pending before it is reported.
func NewPendingReminderJob(
	handler commands.RemindPendingDeliveriesCommandHandler,
	olderThan time.Duration,
	logger *slog.Logger,
) *PendingReminderJob {
	return &PendingReminderJob{
		handler:   handler,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "pending_reminder_job"),
	}
}

// Start schedules the reminder scan to run every minute.
func (j *PendingReminderJob) Start() error {
	_, err := j.cron.AddFunc(pendingReminderSchedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewRemindPendingDeliveriesCommand(j.olderThan)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending reminder job misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pending reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *PendingReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending reminder job stopped")
}
