// Package rowrepo persists order rows in a relational table and adapts them
// to the domain's line model. It implements the row source port for live
// deployments, where the notification status written back by a pass must
// survive restarts and concurrent readers.
package rowrepo

import (
	"strconv"
	"strings"

	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/model/order"

	"notifier/internal/pkg/errs"
)

// RowDTO represents the database structure for one order row. One record is
// one purchased line item; the row ID exposed to the domain is the numeric
// primary key rendered as a string.
type RowDTO struct {
	ID               int64 `gorm:"primaryKey;autoIncrement"`
	BillingName      string
	ShippingPhone    string
	LineitemName     string
	LineitemQuantity string
	Total            string
	MsgStatus        string
}

// TableName specifies the database table name for order rows.
// Overrides GORM's default naming convention to use "order_rows".
func (RowDTO) TableName() string {
	return "order_rows"
}

// toDomain converts a database record to a line snapshot.
//
// The total cell is the one field parsed strictly: a blank total counts as
// zero, but a malformed non-blank total fails the conversion so a corrupted
// table surfaces as a fetch error instead of a silently wrong sum.
func toDomain(dto RowDTO) (*order.Line, error) {
	total := kernel.NewMoneyFromMinorUnits(0)
	if strings.TrimSpace(dto.Total) != "" {
		parsed, err := kernel.ParseMoney(dto.Total)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("total", err)
		}
		total = parsed
	}

	return order.NewLine(
		strconv.FormatInt(dto.ID, 10),
		dto.BillingName,
		dto.LineitemName,
		dto.LineitemQuantity,
		total,
		dto.ShippingPhone,
		order.DeliveryStatusFromCell(dto.MsgStatus),
	)
}
