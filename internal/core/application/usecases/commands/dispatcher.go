package commands

import (
	"context"
	"log/slog"

	"notifier/internal/core/domain/model/order"
	"notifier/internal/core/domain/services"
	"notifier/internal/core/ports"
)

// Dispatcher sends one composed message per aggregated order through the
// shared messaging channel session and reports the result as an Outcome.
//
// Side effects happen only through the channel collaborator, in a fixed
// order for each customer: open conversation, inject the body, optionally
// attach media and the confirmation poll, then release the conversation.
// The base message send is the primary outcome: a poll or media failure is
// logged and the dispatch still counts as delivered.
type Dispatcher struct {
	channel ports.MessageChannel
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher bound to the pass's channel session.
func NewDispatcher(channel ports.MessageChannel, logger *slog.Logger) Dispatcher {
	return Dispatcher{
		channel: channel,
		logger:  logger.With("component", "dispatcher"),
	}
}

// Dispatch attempts exactly one send for the aggregated order. A failure is
// captured and returned as an Outcome, never raised: the caller decides how
// to proceed with the rest of the batch.
func (d Dispatcher) Dispatch(
	ctx context.Context,
	agg *order.AggregatedOrder,
	body string,
	poll *services.Poll,
	attachmentPath string,
) Outcome {
	phone, err := agg.DispatchPhone()
	if err != nil {
		return FailedOutcome(err)
	}

	if err = d.channel.Open(ctx, phone); err != nil {
		return FailedOutcome(err)
	}

	if err = d.channel.Send(ctx, body); err != nil {
		d.close(ctx, agg.CustomerName())
		return FailedOutcome(err)
	}

	if attachmentPath != "" {
		if attacher, ok := d.channel.(ports.MediaAttacher); ok {
			if err = attacher.AttachMedia(ctx, attachmentPath); err != nil {
				d.logger.WarnContext(ctx, "Media attachment failed",
					"customer", agg.CustomerName(), "path", attachmentPath, "error", err)
			}
		} else {
			d.logger.WarnContext(ctx, "Channel does not support media attachments",
				"customer", agg.CustomerName(), "path", attachmentPath)
		}
	}

	if poll != nil {
		if err = d.channel.AttachPoll(ctx, *poll); err != nil {
			d.logger.WarnContext(ctx, "Confirmation poll failed",
				"customer", agg.CustomerName(), "error", err)
		}
	}

	d.close(ctx, agg.CustomerName())
	return DeliveredOutcome()
}

func (d Dispatcher) close(ctx context.Context, customer string) {
	if err := d.channel.Close(ctx); err != nil {
		d.logger.WarnContext(ctx, "Closing conversation failed", "customer", customer, "error", err)
	}
}
