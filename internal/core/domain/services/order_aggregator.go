package services

import (
	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/model/order"
)

// QuantityIssue records one quantity cell that had to be coerced to zero
// during aggregation. Issues are surfaced to the caller, which logs them as
// data-quality conditions rather than failing the pass.
type QuantityIssue struct {
	RowID       string
	CustomerKey string
	ItemName    string
	RawQuantity string
}

// Aggregation is the result of one aggregation run: the per-customer
// aggregates in first-seen customer order, plus every quantity coercion
// encountered along the way.
type Aggregation struct {
	Orders []*order.AggregatedOrder
	Issues []QuantityIssue
}

// OrderAggregator is a domain service that groups pending order lines by
// customer and merges them into one AggregatedOrder per distinct customer
// key.
//
// Key responsibilities:
//   - Partitioning the pending set: every pending line lands in exactly one
//     aggregate, none is dropped or double-counted
//   - Merging duplicate line items by summing quantities
//   - Summing line totals exactly
//   - Deriving the dispatch phone from each customer's first contributing line
//
// Aggregation is a single pass over the input and preserves first-seen
// order, both for customers and for items within a customer.
//
// Example usage:
//
//	aggregator := services.NewOrderAggregator(kernel.DefaultCountryCode)
//	result, err := aggregator.Aggregate(pendingLines)
//	if err != nil {
//	    return err
//	}
//	for _, agg := range result.Orders {
//	    // compose and dispatch one message per customer
//	}
type OrderAggregator struct {
	countryCode string
}

// NewOrderAggregator creates an aggregator that normalizes dispatch phones
// with the given country code (kernel.DefaultCountryCode when empty).
func NewOrderAggregator(countryCode string) OrderAggregator {
	if countryCode == "" {
		countryCode = kernel.DefaultCountryCode
	}
	return OrderAggregator{countryCode: countryCode}
}

// Aggregate folds the pending lines into per-customer aggregates.
//
// Lines whose status is not Pending are skipped, so callers may hand over
// the full row snapshot unfiltered. The dispatch phone is normalized from
// the FIRST contributing line of each customer; later lines' phone values
// are ignored for the pass, even when the first one failed normalization.
func (a OrderAggregator) Aggregate(lines []*order.Line) (Aggregation, error) {
	var result Aggregation
	byCustomer := make(map[string]*order.AggregatedOrder)

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return Aggregation{}, err
		}
		if !line.IsPending() {
			continue
		}

		agg, ok := byCustomer[line.CustomerKey()]
		if !ok {
			agg = order.NewAggregatedOrder(line.CustomerKey())
			byCustomer[line.CustomerKey()] = agg
			result.Orders = append(result.Orders, agg)

			if phone, err := kernel.NewPhone(line.RawPhone(), a.countryCode); err != nil {
				agg.MarkPhoneInvalid(err)
			} else {
				agg.AssignDispatchPhone(phone)
			}
		}

		quantity, parsed := order.ParseQuantity(line.RawQuantity())
		if !parsed {
			result.Issues = append(result.Issues, QuantityIssue{
				RowID:       line.RowID(),
				CustomerKey: line.CustomerKey(),
				ItemName:    line.ItemName(),
				RawQuantity: line.RawQuantity(),
			})
		}

		if err := agg.Fold(line.RowID(), line.ItemName(), quantity, line.LineTotal()); err != nil {
			return Aggregation{}, err
		}
	}

	return result, nil
}
