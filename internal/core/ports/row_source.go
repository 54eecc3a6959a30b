// Package ports defines the contracts between the notification pipeline and
// its external collaborators: the row source holding order-line records and
// the messaging channel the confirmations go out on. Adapters implement
// these interfaces; the application core depends only on the contracts.
package ports

import (
	"context"
	"errors"
	"fmt"

	"notifier/internal/core/domain/model/order"
)

// ErrRowSourceUnavailable indicates the row source could not be reached at
// all. This is the one fatal fetch condition: the whole pass aborts and is
// retried on the next one.
var ErrRowSourceUnavailable = errors.New("row source is unavailable")

// RowSource supplies raw order-line records and accepts per-row status
// writes. Either a static file snapshot (read-only data, single pass) or a
// live store (read/write, polled repeatedly) satisfies this contract.
type RowSource interface {
	// ReadAll returns every order-line row in source order, one Line per
	// record. Rows are read fresh on every call, never cached, so records
	// edited or added externally appear on the next pass.
	ReadAll(ctx context.Context) ([]*order.Line, error)

	// WriteStatus updates the status cell of a single row. Writes are
	// row-by-row with no transactional rollback: a failed write leaves the
	// row pending for the next pass.
	WriteStatus(ctx context.Context, rowID string, status order.DeliveryStatus) error
}

// StatusWriteError reports one failed status write. The in-memory dispatch
// outcome and the persisted status now disagree, so the row will be retried
// next pass — if the dispatch itself succeeded, the customer may be
// notified twice (at-least-once delivery).
type StatusWriteError struct {
	RowID  string
	Status order.DeliveryStatus
	Cause  error
}

// NewStatusWriteError creates a StatusWriteError wrapping the underlying cause.
func NewStatusWriteError(rowID string, status order.DeliveryStatus, cause error) *StatusWriteError {
	return &StatusWriteError{
		RowID:  rowID,
		Status: status,
		Cause:  cause,
	}
}

func (e *StatusWriteError) Error() string {
	return fmt.Sprintf("status write failed: row %s to %s (cause: %s)", e.RowID, e.Status, e.Cause)
}

func (e *StatusWriteError) Unwrap() error {
	return e.Cause
}
