package ports

import (
	"context"
	"errors"

	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/services"
)

// ErrChannelUnavailable indicates the messaging channel could not reach the
// target conversation within its bounded wait. The affected customer's rows
// are marked Failed and the pass continues with the next customer.
var ErrChannelUnavailable = errors.New("message channel is unavailable")

// MessageChannel is the send-ready session the confirmations go out on. It
// is a stateful, single-focus resource: only one conversation is active at
// a time, so one session is shared across a whole pass and customers are
// processed strictly one after another.
//
// Every call must enforce its own bounded wait and surface a timeout as
// ErrChannelUnavailable; none may hang indefinitely.
type MessageChannel interface {
	// Open establishes a send-ready conversation with the canonical
	// dispatch address, replacing any previously open conversation.
	Open(ctx context.Context, phone kernel.Phone) error

	// Send delivers a message body into the open conversation.
	Send(ctx context.Context, text string) error

	// AttachPoll adds a yes/no confirmation prompt after the message body.
	// A poll failure is secondary: the base message send remains the
	// primary outcome.
	AttachPoll(ctx context.Context, poll services.Poll) error

	// Close releases the open conversation.
	Close(ctx context.Context) error
}

// MediaAttacher is an optional capability of a MessageChannel: attaching an
// image or file to the open conversation. Channels that cannot attach media
// simply do not implement it; the dispatcher probes with a type assertion.
type MediaAttacher interface {
	AttachMedia(ctx context.Context, path string) error
}
