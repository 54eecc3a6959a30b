package order

import (
	"errors"

	"notifier/internal/core/domain/model/kernel"

	"notifier/internal/pkg/errs"
)

// ErrAggregatedOrderIsNotConstructed is returned when an AggregatedOrder was
// not created through the NewAggregatedOrder factory method.
var ErrAggregatedOrderIsNotConstructed = errors.New(
	"AggregatedOrder must be created via NewAggregatedOrder constructor")

// ErrNoDispatchPhone is returned by DispatchPhone when the aggregate's first
// contributing line carried a phone that failed normalization. The customer
// is skipped for the pass and the rows stay pending.
var ErrNoDispatchPhone = errors.New("aggregated order has no dispatch phone")

// ItemQuantity is one entry of an aggregate's item list: a distinct item
// name with the quantity summed across all contributing lines.
type ItemQuantity struct {
	Name     string
	Quantity int
}

// AggregatedOrder is the per-customer merge of all pending order lines
// sharing a customer key within one pass. It is ephemeral: constructed by
// the aggregator, consumed by the dispatcher, and discarded at end of pass.
//
// AggregatedOrder invariants:
//   - items holds one entry per distinct item name, in first-seen order,
//     with quantities summed across contributing lines
//   - total is the exact sum of contributing line totals (no rounding
//     until display)
//   - rowIDs holds every contributing row exactly once, in order
//   - the dispatch phone comes from the first contributing line only
type AggregatedOrder struct {
	customerName string
	items        []ItemQuantity
	itemIndex    map[string]int
	total        kernel.Money
	phone        kernel.Phone
	phoneErr     error
	phoneKnown   bool
	rowIDs       []string

	isConstructed bool
}

// NewAggregatedOrder creates an empty aggregate for one customer.
// The customer name is carried verbatim; a blank billing name still groups
// its rows together rather than failing the pass.
func NewAggregatedOrder(customerName string) *AggregatedOrder {
	return &AggregatedOrder{
		customerName:  customerName,
		itemIndex:     make(map[string]int),
		isConstructed: true,
	}
}

// Validate ensures the aggregate was created through NewAggregatedOrder.
func (a *AggregatedOrder) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAggregatedOrderIsNotConstructed
	}
	return nil
}

// Fold merges one contributing line into the aggregate: the row ID is
// appended, the quantity is added to the item's running sum (creating the
// item entry in first-seen position when new), and the line total is added
// exactly to the aggregate total.
func (a *AggregatedOrder) Fold(rowID string, itemName string, quantity int, lineTotal kernel.Money) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if rowID == "" {
		return errs.NewValueIsRequiredError("rowID")
	}

	a.rowIDs = append(a.rowIDs, rowID)

	idx, ok := a.itemIndex[itemName]
	if !ok {
		idx = len(a.items)
		a.items = append(a.items, ItemQuantity{Name: itemName})
		a.itemIndex[itemName] = idx
	}
	a.items[idx].Quantity += quantity

	a.total = a.total.Add(lineTotal)
	return nil
}

// AssignDispatchPhone records the canonical dispatch address for the
// customer. Only the first assignment (or failure) is kept: later
// contributing lines' phone values are ignored for the pass.
func (a *AggregatedOrder) AssignDispatchPhone(phone kernel.Phone) {
	if a.phoneKnown {
		return
	}
	a.phone = phone
	a.phoneKnown = true
}

// MarkPhoneInvalid records that the first contributing line's phone failed
// normalization. Later assignments are ignored, matching the first-line
// rule.
func (a *AggregatedOrder) MarkPhoneInvalid(err error) {
	if a.phoneKnown {
		return
	}
	a.phoneErr = err
	a.phoneKnown = true
}

// DispatchPhone returns the customer's canonical dispatch address, or the
// normalization error recorded for the first contributing line. A phone
// that was never assigned yields ErrNoDispatchPhone.
func (a *AggregatedOrder) DispatchPhone() (kernel.Phone, error) {
	if a.phoneErr != nil {
		return kernel.Phone{}, a.phoneErr
	}
	if !a.phoneKnown {
		return kernel.Phone{}, ErrNoDispatchPhone
	}
	return a.phone, nil
}

// CustomerName returns the billing name the aggregate was grouped under.
func (a *AggregatedOrder) CustomerName() string {
	return a.customerName
}

// Items returns the aggregated item list in first-seen order.
// The returned slice is a copy.
func (a *AggregatedOrder) Items() []ItemQuantity {
	items := make([]ItemQuantity, len(a.items))
	copy(items, a.items)
	return items
}

// Total returns the exact sum of contributing line totals.
func (a *AggregatedOrder) Total() kernel.Money {
	return a.total
}

// RowIDs returns every contributing row ID in contribution order.
// The returned slice is a copy.
func (a *AggregatedOrder) RowIDs() []string {
	rowIDs := make([]string, len(a.rowIDs))
	copy(rowIDs, a.rowIDs)
	return rowIDs
}
