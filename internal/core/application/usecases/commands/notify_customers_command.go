// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// per-customer processing, and status persistence.
package commands

import (
	"errors"

	"notifier/internal/pkg/guard"
)

var ErrNotifyCustomersCommandIsNotConstructed = errors.New(
	"NotifyCustomersCommand must be created via NewNotifyCustomersCommand constructor",
)

// NotifyCustomersCommand triggers one notification pass: fetch pending
// order rows, aggregate them per customer, send one confirmation message
// per customer, and record the outcome on every contributing row.
//
// Example:
//
//	cmd := NewNotifyCustomersCommand(true, "")
//	handler := NewNotifyCustomersCommandHandler(source, aggregator, composer, dispatcher, recorder, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("pass aborted: %v", err)
//	}
type NotifyCustomersCommand struct {
	sendPoll       bool
	attachmentPath string

	guard guard.ConstructorGuard
}

// NewNotifyCustomersCommand creates a command for one notification pass.
// sendPoll attaches a yes/no confirmation poll after each message;
// attachmentPath, when non-empty, names a media file attached to each
// message on channels that support it.
func NewNotifyCustomersCommand(sendPoll bool, attachmentPath string) NotifyCustomersCommand {
	return NotifyCustomersCommand{
		sendPoll:       sendPoll,
		attachmentPath: attachmentPath,
		guard:          guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrNotifyCustomersCommandIsNotConstructed if validation fails.
func (c *NotifyCustomersCommand) Validate() error {
	return c.guard.Validate(
		ErrNotifyCustomersCommandIsNotConstructed,
	)
}

// SendPoll reports whether a confirmation poll follows each message.
func (c *NotifyCustomersCommand) SendPoll() bool {
	return c.sendPoll
}

// AttachmentPath returns the media file attached to each message, or empty.
func (c *NotifyCustomersCommand) AttachmentPath() string {
	return c.attachmentPath
}
