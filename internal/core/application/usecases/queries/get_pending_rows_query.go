package queries

import (
	"errors"

	"notifier/internal/pkg/guard"
)

var (
	ErrGetPendingRowsQueryIsNotConstructed = errors.New(
		"GetPendingRowsQuery must be created via NewGetPendingRowsQuery constructor",
	)
)

// GetPendingRowsQuery retrieves all order rows still awaiting notification.
// A row is pending when its status cell is blank.
//
// Example:
//
//	query := NewGetPendingRowsQuery()
//	handler := NewGetPendingRowsQueryHandler(db)
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending rows: %w", err)
//	}
//
//	fmt.Printf("%d rows awaiting notification\n", len(rows))
type GetPendingRowsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingRowsQuery creates a query to retrieve pending order rows.
// This is a parameterless query that fetches every row with a blank status.
func NewGetPendingRowsQuery() GetPendingRowsQuery {
	return GetPendingRowsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingRowsQueryIsNotConstructed if validation fails.
func (q GetPendingRowsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingRowsQueryIsNotConstructed)
}

// GetPendingRowsQueryResponse represents one order row awaiting notification.
type GetPendingRowsQueryResponse struct {
	RowID            string
	BillingName      string
	ShippingPhone    string
	LineitemName     string
	LineitemQuantity string
	Total            string
}
