package commands

import (
	"context"
	"log/slog"

	"notifier/internal/core/domain/model/order"
	"notifier/internal/core/ports"
)

// StatusRecorder persists the delivery outcome of a customer's message onto
// every source row that contributed to the aggregated order.
//
// Rows are written one by one and a write failure never interrupts the
// remaining rows: an unmarked row is re-sent on the next pass, which the
// channel tolerates, while a missed mark would silently drop a customer.
type StatusRecorder struct {
	source ports.RowSource
	logger *slog.Logger
}

// NewStatusRecorder creates a recorder writing through the given row source.
func NewStatusRecorder(source ports.RowSource, logger *slog.Logger) StatusRecorder {
	return StatusRecorder{
		source: source,
		logger: logger.With("component", "statusrecorder"),
	}
}

// Record resolves the outcome into a terminal delivery status and writes it
// to each row of the aggregated order. It returns the number of rows marked
// and the write errors encountered, wrapped with their row identity.
func (r StatusRecorder) Record(
	ctx context.Context,
	agg *order.AggregatedOrder,
	outcome Outcome,
) (marked int, writeErrors []error) {
	status, err := order.Pending.Resolve(outcome.IsDelivered())
	if err != nil {
		return 0, []error{err}
	}

	for _, rowID := range agg.RowIDs() {
		if err := r.source.WriteStatus(ctx, rowID, status); err != nil {
			writeErr := ports.NewStatusWriteError(rowID, status, err)
			r.logger.ErrorContext(ctx, "Status write failed",
				"rowID", rowID, "status", status.String(), "error", err)
			writeErrors = append(writeErrors, writeErr)
			continue
		}
		marked++
	}
	return marked, writeErrors
}
