package queries

import (
	"context"

	"notifier/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDeliveryReportQueryHandler aggregates row statuses into a progress
// report directly in SQL, without loading individual rows.
//
// Example:
//
//	handler := NewGetDeliveryReportQueryHandler(db)
//	query := NewGetDeliveryReportQuery()
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get delivery report: %v", err)
//	    return err
//	}
type GetDeliveryReportQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryReportQueryHandler creates a handler for delivery reports.
// Requires a GORM database connection for query execution.
func NewGetDeliveryReportQueryHandler(db *gorm.DB) GetDeliveryReportQueryHandler {
	return GetDeliveryReportQueryHandler{db: db}
}

// Handle executes the report query. Each distinct status cell value is
// counted and bucketed through the same cell mapping the pass itself uses,
// so the report and the pass never disagree on what counts as pending.
func (h GetDeliveryReportQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryReportQuery,
) (GetDeliveryReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryReportQueryResponse{}, err
	}

	var report GetDeliveryReportQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			msg_status,
			COUNT(*)
		FROM order_rows
		GROUP BY msg_status
	`).Rows()
	if err != nil {
		return GetDeliveryReportQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var cell string
		var count int64

		if err = rows.Scan(&cell, &count); err != nil {
			return GetDeliveryReportQueryResponse{}, err
		}

		report.Total += count
		switch order.DeliveryStatusFromCell(cell) {
		case order.Pending:
			report.Pending += count
		case order.Sent:
			report.Sent += count
		case order.Failed:
			report.Failed += count
		default:
			report.Unknown += count
		}
	}

	if err = rows.Err(); err != nil {
		return GetDeliveryReportQueryResponse{}, err
	}

	return report, nil
}
