package services

import (
	"fmt"
	"strings"

	"notifier/internal/core/domain/model/order"
)

// DefaultSignature closes every confirmation message unless the composer is
// configured otherwise.
const DefaultSignature = "ASH Homes Customer Support"

// Poll describes the optional yes/no confirmation prompt attached after the
// message body.
type Poll struct {
	Question string
	Options  []string
}

// MessageComposer renders the customer-facing confirmation message for one
// aggregated order. The layout is fixed: greeting by customer name, the
// itemized list in aggregation order, the total to two decimal places, a
// closing call-to-action and the signature.
//
// Composition is pure text formatting: identical input yields byte-identical
// output, which golden tests rely on.
type MessageComposer struct {
	signature string
}

// NewMessageComposer creates a composer with the given closing signature
// (DefaultSignature when empty).
func NewMessageComposer(signature string) MessageComposer {
	if signature == "" {
		signature = DefaultSignature
	}
	return MessageComposer{signature: signature}
}

// Compose renders the confirmation message body for one aggregated order.
func (c MessageComposer) Compose(agg *order.AggregatedOrder) (string, error) {
	if err := agg.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", agg.CustomerName())
	b.WriteString("Thank you for your order of the following item(s):\n")
	for _, item := range agg.Items() {
		fmt.Fprintf(&b, "%s x %d\n", item.Name, item.Quantity)
	}
	fmt.Fprintf(&b,
		"\nYour total is Rs %s. Could you kindly confirm your order so we can proceed with dispatching it?\n\n",
		agg.Total())
	fmt.Fprintf(&b, "Best regards,\n%s", c.signature)

	return b.String(), nil
}

// ConfirmationPoll returns the yes/no poll asking the customer to confirm.
func (c MessageComposer) ConfirmationPoll() Poll {
	return Poll{
		Question: "Have you confirmed your order?",
		Options:  []string{"Yes", "No"},
	}
}
