package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"notifier/internal/core/domain/services"
	"notifier/internal/core/ports"
)

// CustomerOutcome reports what happened to a single customer during a pass.
type CustomerOutcome struct {
	CustomerName string
	Outcome      Outcome
	RowsMarked   int
}

// PassResult summarizes one complete notification pass over the row source.
type PassResult struct {
	PassID              uuid.UUID
	StartedAt           time.Time
	FinishedAt          time.Time
	Customers           []CustomerOutcome
	Sent                int
	Failed              int
	Skipped             int
	RowsMarked          int
	StatusWriteFailures int
	QuantityIssues      int
	LastDelivered       string
}

// NotifyCustomersCommandHandler runs a full notification pass: it reads all
// rows from the source, aggregates the pending ones per customer, sends one
// message per customer and marks every contributing row with the result.
//
// A failure for one customer never stops the pass. The only fatal error is
// the initial fetch: without rows there is nothing to decide on, so the
// error propagates and the pass reports nothing.
//
// Example:
//
//	handler := NewNotifyCustomersCommandHandler(source, aggregator, composer, dispatcher, recorder, logger)
//	cmd := NewNotifyCustomersCommand(true, "")
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("notification pass failed: %w", err)
//	}
//	log.Printf("sent %d, failed %d", result.Sent, result.Failed)
type NotifyCustomersCommandHandler struct {
	source     ports.RowSource
	aggregator services.OrderAggregator
	composer   services.MessageComposer
	dispatcher Dispatcher
	recorder   StatusRecorder
	logger     *slog.Logger
}

// NewNotifyCustomersCommandHandler creates a handler wiring the row source,
// the pure aggregation and composition services and the side-effecting
// dispatcher and recorder together.
func NewNotifyCustomersCommandHandler(
	source ports.RowSource,
	aggregator services.OrderAggregator,
	composer services.MessageComposer,
	dispatcher Dispatcher,
	recorder StatusRecorder,
	logger *slog.Logger,
) NotifyCustomersCommandHandler {
	return NotifyCustomersCommandHandler{
		source:     source,
		aggregator: aggregator,
		composer:   composer,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger.With("component", "notifycustomers"),
	}
}

// Handle processes one notification pass command.
// Customers without a usable phone are skipped and their rows left pending,
// so a corrected phone number is picked up by a later pass.
func (h *NotifyCustomersCommandHandler) Handle(
	ctx context.Context,
	cmd NotifyCustomersCommand,
) (PassResult, error) {
	if err := cmd.Validate(); err != nil {
		return PassResult{}, err
	}

	result := PassResult{
		PassID:    uuid.New(),
		StartedAt: time.Now(),
	}

	lines, err := h.source.ReadAll(ctx)
	if err != nil {
		return PassResult{}, err
	}

	aggregation, err := h.aggregator.Aggregate(lines)
	if err != nil {
		return PassResult{}, err
	}
	result.QuantityIssues = len(aggregation.Issues)
	for _, issue := range aggregation.Issues {
		h.logger.WarnContext(ctx, "Quantity coerced to zero",
			"passID", result.PassID,
			"rowID", issue.RowID,
			"customer", issue.CustomerKey,
			"item", issue.ItemName,
			"rawQuantity", issue.RawQuantity)
	}

	var poll *services.Poll
	if cmd.SendPoll() {
		p := h.composer.ConfirmationPoll()
		poll = &p
	}

	for _, agg := range aggregation.Orders {
		if _, err := agg.DispatchPhone(); err != nil {
			h.logger.WarnContext(ctx, "Customer skipped, no usable phone",
				"passID", result.PassID,
				"customer", agg.CustomerName(),
				"error", err)
			result.Skipped++
			continue
		}

		body, err := h.composer.Compose(agg)
		if err != nil {
			h.logger.ErrorContext(ctx, "Message composition failed",
				"passID", result.PassID,
				"customer", agg.CustomerName(),
				"error", err)
			result.Skipped++
			continue
		}

		outcome := h.dispatcher.Dispatch(ctx, agg, body, poll, cmd.AttachmentPath())
		marked, writeErrors := h.recorder.Record(ctx, agg, outcome)

		result.Customers = append(result.Customers, CustomerOutcome{
			CustomerName: agg.CustomerName(),
			Outcome:      outcome,
			RowsMarked:   marked,
		})
		result.RowsMarked += marked
		result.StatusWriteFailures += len(writeErrors)

		if outcome.IsDelivered() {
			result.Sent++
			result.LastDelivered = agg.CustomerName()
			h.logger.InfoContext(ctx, "Customer notified",
				"passID", result.PassID,
				"customer", agg.CustomerName(),
				"rowsMarked", marked)
		} else {
			result.Failed++
			h.logger.ErrorContext(ctx, "Customer notification failed",
				"passID", result.PassID,
				"customer", agg.CustomerName(),
				"error", outcome.Reason())
		}
	}

	result.FinishedAt = time.Now()
	return result, nil
}
