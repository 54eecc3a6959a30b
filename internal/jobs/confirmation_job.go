package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"notifier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultPassInterval is the delay between notification passes unless
// configured otherwise.
const DefaultPassInterval = 5 * time.Minute

// ConfirmationJob runs the notification pass on a fixed schedule. Each tick
// reads a fresh snapshot of the order rows, so rows added or edited between
// ticks are picked up without restarting the process.
type ConfirmationJob struct {
	handler        commands.NotifyCustomersCommandHandler
	sendPoll       bool
	attachmentPath string
	interval       time.Duration
	cron           *cron.Cron
	logger         *slog.Logger

	// running guarantees passes never overlap: a tick firing while the
	// previous pass is still dispatching is skipped, not queued
	running sync.Mutex
}

// NewConfirmationJob creates a job running one notification pass per
// interval (DefaultPassInterval when zero).
func NewConfirmationJob(
	handler commands.NotifyCustomersCommandHandler,
	sendPoll bool,
	attachmentPath string,
	interval time.Duration,
	logger *slog.Logger,
) *ConfirmationJob {
	if interval <= 0 {
		interval = DefaultPassInterval
	}
	return &ConfirmationJob{
		handler:        handler,
		sendPoll:       sendPoll,
		attachmentPath: attachmentPath,
		interval:       interval,
		cron:           cron.New(),
		logger:         logger.With("component", "confirmation_job"),
	}
}

// RunPass executes one notification pass immediately. A pass already in
// flight makes this call a no-op.
func (j *ConfirmationJob) RunPass(ctx context.Context) {
	if !j.running.TryLock() {
		j.logger.WarnContext(ctx, "Previous pass still running, skipping")
		return
	}
	defer j.running.Unlock()

	cmd := commands.NewNotifyCustomersCommand(j.sendPoll, j.attachmentPath)
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification pass failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Notification pass finished",
		"passID", result.PassID,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"rowsMarked", result.RowsMarked,
		"statusWriteFailures", result.StatusWriteFailures,
		"quantityIssues", result.QuantityIssues,
		"duration", result.FinishedAt.Sub(result.StartedAt))
}

// Start runs one pass right away and then keeps running passes on the
// configured interval until Stop.
func (j *ConfirmationJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.RunPass(context.Background())
	})
	if err != nil {
		return err
	}

	go j.RunPass(context.Background())

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Confirmation job started", "interval", j.interval)
	return nil
}

// Stop stops the confirmation job. A pass already running finishes.
func (j *ConfirmationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Confirmation job stopped")
}
