package order

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"notifier/internal/core/domain/model/kernel"

	"notifier/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line represents one order-line row read from the row source: one purchased
// line item belonging to one customer. Lines are read fresh each pass and
// never cached, so rows edited or added externally are picked up on the next
// pass.
//
// A Line is a read-only snapshot. Status changes are written back to the row
// source through its row ID; the in-memory Line is discarded at end of pass.
//
// Line invariants:
//   - Must have a row ID (the opaque handle back into the row source)
//   - Can only be created through the NewLine constructor
//
// All other fields are carried as read: tolerance for messy rows lives in
// the aggregation step, not here.
type Line struct {
	// rowID is the opaque handle back into the row source, stable across a pass
	rowID string

	// customerKey is the billing name used for grouping (not uniqueness-guaranteed)
	customerKey string

	// itemName is the purchased line item's name
	itemName string

	// rawQuantity is the quantity cell exactly as read; parsed tolerantly later
	rawQuantity string

	// lineTotal is this line's monetary total
	lineTotal kernel.Money

	// rawPhone is the shipping phone exactly as read
	rawPhone string

	// status is the notification state persisted in the row's status cell
	status DeliveryStatus

	// isConstructed ensures the line was created via NewLine
	isConstructed bool
}

// NewLine creates a Line snapshot of one row source record.
//
// Only the row ID is mandatory: it is the handle status writes go through.
// Everything else is taken verbatim, including blank customer names and
// malformed quantity cells, so that one messy row cannot sink a fetch.
func NewLine(
	rowID string,
	customerKey string,
	itemName string,
	rawQuantity string,
	lineTotal kernel.Money,
	rawPhone string,
	status DeliveryStatus,
) (*Line, error) {
	if strings.TrimSpace(rowID) == "" {
		return nil, errs.NewValueIsRequiredError("rowID")
	}

	return &Line{
		rowID:         rowID,
		customerKey:   customerKey,
		itemName:      itemName,
		rawQuantity:   rawQuantity,
		lineTotal:     lineTotal,
		rawPhone:      rawPhone,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Line instance was properly constructed through NewLine.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// RowID returns the opaque handle back into the row source.
func (l *Line) RowID() string {
	return l.rowID
}

// CustomerKey returns the billing name used for grouping.
func (l *Line) CustomerKey() string {
	return l.customerKey
}

// ItemName returns the line item's name.
func (l *Line) ItemName() string {
	return l.itemName
}

// RawQuantity returns the quantity cell exactly as read.
func (l *Line) RawQuantity() string {
	return l.rawQuantity
}

// LineTotal returns this line's monetary total.
func (l *Line) LineTotal() kernel.Money {
	return l.lineTotal
}

// RawPhone returns the shipping phone exactly as read.
func (l *Line) RawPhone() string {
	return l.rawPhone
}

// Status returns the row's notification status.
func (l *Line) Status() DeliveryStatus {
	return l.status
}

// IsPending reports whether this row still awaits notification.
func (l *Line) IsPending() bool {
	return l.status.IsPending()
}

// ParseQuantity coerces a raw quantity cell to a non-negative integer.
//
// Parsing is tolerant: an integer parse is attempted first, then a
// float-then-truncate parse, and finally the value falls back to zero.
// Negative values are treated as malformed and also coerce to zero.
//
// The second return value reports whether the cell yielded a usable
// quantity; a false means the zero coercion must be surfaced as a
// data-quality condition, not silently ignored.
func ParseQuantity(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)

	if qty, err := strconv.Atoi(trimmed); err == nil {
		if qty < 0 {
			return 0, false
		}
		return qty, true
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if f < 0 {
			return 0, false
		}
		return int(f), true
	}

	return 0, false
}
