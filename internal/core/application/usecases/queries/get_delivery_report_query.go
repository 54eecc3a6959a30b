package queries

import (
	"errors"

	"notifier/internal/pkg/guard"
)

var (
	ErrGetDeliveryReportQueryIsNotConstructed = errors.New(
		"GetDeliveryReportQuery must be created via NewGetDeliveryReportQuery constructor",
	)
)

// GetDeliveryReportQuery summarizes notification progress across all rows.
//
// Example:
//
//	query := NewGetDeliveryReportQuery()
//	handler := NewGetDeliveryReportQueryHandler(db)
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get delivery report: %w", err)
//	}
//
//	fmt.Printf("%d sent, %d failed, %d pending\n", report.Sent, report.Failed, report.Pending)
type GetDeliveryReportQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryReportQuery creates a query summarizing row statuses.
func NewGetDeliveryReportQuery() GetDeliveryReportQuery {
	return GetDeliveryReportQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryReportQueryIsNotConstructed if validation fails.
func (q GetDeliveryReportQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryReportQueryIsNotConstructed)
}

// GetDeliveryReportQueryResponse holds row counts per notification status.
// Unknown counts rows whose status cell carries an unrecognized value.
type GetDeliveryReportQueryResponse struct {
	Total   int64
	Pending int64
	Sent    int64
	Failed  int64
	Unknown int64
}
