package services_test

import (
	"testing"

	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/model/order"
	"notifier/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLine(t *testing.T, rowID, customer, item, qty, total, phone string, status order.DeliveryStatus) *order.Line {
	t.Helper()
	money, err := kernel.ParseMoney(total)
	require.NoError(t, err)
	line, err := order.NewLine(rowID, customer, item, qty, money, phone, status)
	require.NoError(t, err)
	return line
}

func TestOrderAggregator_Aggregate(t *testing.T) {
	aggregator := services.NewOrderAggregator("+92")

	t.Run("groups lines by customer preserving first-seen order", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "1", "100.00", "0300-1234567", order.Pending),
			newLine(t, "3", "Bilal Ahmed", "Gadget", "1", "50.00", "0301-7654321", order.Pending),
			newLine(t, "4", "Ayesha Khan", "Gadget", "1", "50.00", "0300-1234567", order.Pending),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		require.Len(t, result.Orders, 2)
		assert.Equal(t, "Ayesha Khan", result.Orders[0].CustomerName())
		assert.Equal(t, "Bilal Ahmed", result.Orders[1].CustomerName())
		assert.Equal(t, []string{"2", "4"}, result.Orders[0].RowIDs())
		assert.Equal(t, []string{"3"}, result.Orders[1].RowIDs())
	})

	t.Run("partitions the pending set without loss or overlap", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "A", "Widget", "1", "10.00", "0300-1234567", order.Pending),
			newLine(t, "3", "B", "Widget", "1", "10.00", "0301-1111111", order.Pending),
			newLine(t, "4", "A", "Gadget", "1", "10.00", "0300-1234567", order.Pending),
			newLine(t, "5", "C", "Widget", "1", "10.00", "0302-2222222", order.Pending),
			newLine(t, "6", "B", "Gadget", "1", "10.00", "0301-1111111", order.Pending),
		}

		result, err := aggregator.Aggregate(lines)
		require.NoError(t, err)

		seen := make(map[string]int)
		for _, agg := range result.Orders {
			for _, rowID := range agg.RowIDs() {
				seen[rowID]++
			}
		}
		assert.Equal(t, map[string]int{"2": 1, "3": 1, "4": 1, "5": 1, "6": 1}, seen)
	})

	t.Run("sums duplicate item quantities", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "2", "10.00", "0300-1234567", order.Pending),
			newLine(t, "3", "Ayesha Khan", "Widget", "3", "15.00", "0300-1234567", order.Pending),
			newLine(t, "4", "Ayesha Khan", "Gadget", "1", "5.00", "0300-1234567", order.Pending),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		require.Len(t, result.Orders, 1)
		assert.Equal(t, []order.ItemQuantity{
			{Name: "Widget", Quantity: 5},
			{Name: "Gadget", Quantity: 1},
		}, result.Orders[0].Items())
	})

	t.Run("sums totals exactly", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "1", "120.50", "0300-1234567", order.Pending),
			newLine(t, "3", "Ayesha Khan", "Gadget", "1", "79.50", "0300-1234567", order.Pending),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		require.Len(t, result.Orders, 1)
		assert.Equal(t, "200.00", result.Orders[0].Total().String())
	})

	t.Run("skips non-pending lines", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "1", "10.00", "0300-1234567", order.Sent),
			newLine(t, "3", "Ayesha Khan", "Gadget", "1", "10.00", "0300-1234567", order.Pending),
			newLine(t, "4", "Bilal Ahmed", "Widget", "1", "10.00", "0301-7654321", order.Failed),
			newLine(t, "5", "Chand Ali", "Widget", "1", "10.00", "0302-1111111", order.Unknown),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		require.Len(t, result.Orders, 1)
		assert.Equal(t, []string{"3"}, result.Orders[0].RowIDs())
	})

	t.Run("all rows resolved yields empty aggregation", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "1", "10.00", "0300-1234567", order.Sent),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		assert.Empty(t, result.Orders)
		assert.Empty(t, result.Issues)
	})

	t.Run("derives dispatch phone from first contributing line", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "1", "10.00", "0300-1234567", order.Pending),
			newLine(t, "3", "Ayesha Khan", "Gadget", "1", "10.00", "0399-9999999", order.Pending),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		require.Len(t, result.Orders, 1)
		phone, err := result.Orders[0].DispatchPhone()
		require.NoError(t, err)
		assert.Equal(t, "+923001234567", phone.String())
	})

	t.Run("invalid first phone sticks even when later lines are valid", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "1", "10.00", "12345", order.Pending),
			newLine(t, "3", "Ayesha Khan", "Gadget", "1", "10.00", "0300-1234567", order.Pending),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		require.Len(t, result.Orders, 1)
		_, err = result.Orders[0].DispatchPhone()
		require.ErrorIs(t, err, kernel.ErrInvalidPhone)
	})

	t.Run("records quantity coercions as issues", func(t *testing.T) {
		lines := []*order.Line{
			newLine(t, "2", "Ayesha Khan", "Widget", "two", "10.00", "0300-1234567", order.Pending),
			newLine(t, "3", "Ayesha Khan", "Gadget", "3", "10.00", "0300-1234567", order.Pending),
		}

		result, err := aggregator.Aggregate(lines)

		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, services.QuantityIssue{
			RowID:       "2",
			CustomerKey: "Ayesha Khan",
			ItemName:    "Widget",
			RawQuantity: "two",
		}, result.Issues[0])

		// The coerced line still contributes its row and total.
		require.Len(t, result.Orders, 1)
		assert.Equal(t, []string{"2", "3"}, result.Orders[0].RowIDs())
		assert.Equal(t, []order.ItemQuantity{
			{Name: "Widget", Quantity: 0},
			{Name: "Gadget", Quantity: 3},
		}, result.Orders[0].Items())
		assert.Equal(t, "20.00", result.Orders[0].Total().String())
	})

	t.Run("empty input yields empty aggregation", func(t *testing.T) {
		result, err := aggregator.Aggregate(nil)

		require.NoError(t, err)
		assert.Empty(t, result.Orders)
	})

	t.Run("unconstructed line fails aggregation", func(t *testing.T) {
		_, err := aggregator.Aggregate([]*order.Line{{}})

		require.ErrorIs(t, err, order.ErrLineIsNotConstructed)
	})
}
