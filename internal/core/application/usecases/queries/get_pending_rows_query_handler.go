package queries

import (
	"context"
	"strconv"

	"gorm.io/gorm"
)

// GetPendingRowsQueryHandler retrieves rows awaiting notification from the
// database. Used for pre-pass visibility: what would the next pass pick up.
//
// Example:
//
//	handler := NewGetPendingRowsQueryHandler(db)
//	query := NewGetPendingRowsQuery()
//
//	pendingRows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get pending rows: %v", err)
//	    return err
//	}
type GetPendingRowsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingRowsQueryHandler creates a handler for pending row queries.
// Requires a GORM database connection for query execution.
func NewGetPendingRowsQueryHandler(db *gorm.DB) GetPendingRowsQueryHandler {
	return GetPendingRowsQueryHandler{db: db}
}

// Handle executes the query to retrieve all rows whose status cell is blank.
// Results are sorted by row ID so the response mirrors pass order.
func (h GetPendingRowsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingRowsQuery,
) ([]GetPendingRowsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingRowsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			billing_name,
			shipping_phone,
			lineitem_name,
			lineitem_quantity,
			total
		FROM order_rows
		WHERE TRIM(msg_status) = ''
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rowResp GetPendingRowsQueryResponse
		var id int64

		err = rows.Scan(
			&id,
			&rowResp.BillingName,
			&rowResp.ShippingPhone,
			&rowResp.LineitemName,
			&rowResp.LineitemQuantity,
			&rowResp.Total,
		)
		if err != nil {
			return nil, err
		}

		rowResp.RowID = strconv.FormatInt(id, 10)
		pending = append(pending, rowResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
