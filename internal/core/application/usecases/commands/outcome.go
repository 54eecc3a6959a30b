package commands

import "fmt"

// Outcome is the result of one dispatch attempt: Delivered, or Failed with
// a captured reason. Per-customer failures are represented as values rather
// than raised as errors, so one customer's channel failure can never abort
// the batch.
type Outcome struct {
	delivered bool
	reason    error
}

// DeliveredOutcome marks a successful dispatch.
func DeliveredOutcome() Outcome {
	return Outcome{delivered: true}
}

// FailedOutcome captures a dispatch failure and its reason.
func FailedOutcome(reason error) Outcome {
	return Outcome{reason: reason}
}

// IsDelivered reports whether the dispatch succeeded.
func (o Outcome) IsDelivered() bool {
	return o.delivered
}

// Reason returns the captured failure reason, or nil when delivered.
func (o Outcome) Reason() error {
	return o.reason
}

// String implements fmt.Stringer for logs and summaries.
func (o Outcome) String() string {
	if o.delivered {
		return "Delivered"
	}
	if o.reason != nil {
		return fmt.Sprintf("Failed: %s", o.reason)
	}
	return "Failed"
}
