package order

import (
	"fmt"
	"strings"

	"notifier/internal/pkg/errs"
)

// DeliveryStatus represents the notification state of an order-line row.
// It implements a state machine with defined transitions so rows follow the
// correct notification workflow.
//
// State transitions:
//
//	Pending ──┬──> Sent
//	          └──> Failed
//
// Both Sent and Failed are terminal: a row with a non-blank persisted status
// is permanently excluded from aggregation, which is what makes re-running a
// pass idempotent.
//
// DeliveryStatus is a value object that validates state transitions and
// provides string representations for persistence and display.
type DeliveryStatus int

const (
	// Unknown represents a status cell holding a non-blank value this
	// system did not write. Such rows are never re-notified.
	Unknown DeliveryStatus = iota

	// Pending is the initial status: the row's status cell is blank and the
	// customer has not been notified about it yet.
	Pending

	// Sent indicates the confirmation message for the row was delivered.
	Sent

	// Failed indicates the dispatch attempt for the row failed.
	Failed
)

// Persisted cell values for each resolved status. Pending rows keep a blank
// cell so externally added rows are picked up without any marking step.
const (
	sentCellValue   = "Message Sent"
	failedCellValue = "Failed"
)

// getStatusStrings returns a map of DeliveryStatus values to their display names.
func getStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		Unknown: "Unknown",
		Pending: "Pending",
		Sent:    "Sent",
		Failed:  "Failed",
	}
}

// getValidStatusStrings returns a map of only valid DeliveryStatus values.
func getValidStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		Pending: "Pending",
		Sent:    "Sent",
		Failed:  "Failed",
	}
}

// DeliveryStatusFromCell maps a raw status cell value to a DeliveryStatus.
// A blank (or whitespace-only) cell is Pending. Cell values this system
// writes map back to Sent and Failed. Any other non-blank value is Unknown,
// which keeps foreign markings out of the pending set.
func DeliveryStatusFromCell(raw string) DeliveryStatus {
	switch strings.TrimSpace(raw) {
	case "":
		return Pending
	case sentCellValue:
		return Sent
	case failedCellValue:
		return Failed
	default:
		return Unknown
	}
}

// Validate checks if the DeliveryStatus value is valid.
//
// Valid statuses are: Pending, Sent, Failed. Unknown and any other values
// are invalid.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any value,
// including invalid ones.
func (s DeliveryStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CellValue returns the value persisted to the row source's status cell:
// blank for Pending, "Message Sent" for Sent, "Failed" for Failed.
func (s DeliveryStatus) CellValue() string {
	switch s {
	case Sent:
		return sentCellValue
	case Failed:
		return failedCellValue
	default:
		return ""
	}
}

// IsPending reports whether a row with this status still awaits notification.
func (s DeliveryStatus) IsPending() bool {
	return s == Pending
}

// ValidateResolve checks if the status allows resolution without performing
// the transition. Only Pending rows may resolve; Sent and Failed are
// terminal and Unknown is foreign data.
func (s DeliveryStatus) ValidateResolve() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to resolve", s.String()))
	}
	return nil
}

// Resolve transitions the status to Sent or Failed depending on the
// dispatch outcome for the row's customer.
//
// Valid transitions:
//   - Pending -> Sent  (delivered)
//   - Pending -> Failed (dispatch failed)
//
// Returns (0, error) if the transition is not allowed from the current
// status.
func (s DeliveryStatus) Resolve(delivered bool) (DeliveryStatus, error) {
	if err := s.ValidateResolve(); err != nil {
		return 0, err
	}

	if delivered {
		return Sent, nil
	}
	return Failed, nil
}
