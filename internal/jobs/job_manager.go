package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"notifier/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	confirmationJob *ConfirmationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the pass handler and its settings as dependencies.
func NewJobManager(
	notifyHandler commands.NotifyCustomersCommandHandler,
	sendPoll bool,
	attachmentPath string,
	passInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		confirmationJob: NewConfirmationJob(notifyHandler, sendPoll, attachmentPath, passInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.confirmationJob.Start(); err != nil {
		return fmt.Errorf("failed to start confirmation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.confirmationJob.Stop()
}

// RunOnce executes a single notification pass without scheduling.
// Used by one-shot runs that process the current backlog and exit.
func (jm *JobManager) RunOnce(ctx context.Context) {
	jm.confirmationJob.RunPass(ctx)
}
