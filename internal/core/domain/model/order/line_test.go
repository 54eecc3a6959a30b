package order_test

import (
	"testing"

	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/model/order"
	"notifier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("valid line", func(t *testing.T) {
		total, err := kernel.ParseMoney("120.50")
		require.NoError(t, err)

		line, err := order.NewLine("2", "Ayesha Khan", "Widget", "2", total, "0300-1234567", order.Pending)

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.Equal(t, "2", line.RowID())
		assert.Equal(t, "Ayesha Khan", line.CustomerKey())
		assert.Equal(t, "Widget", line.ItemName())
		assert.Equal(t, "2", line.RawQuantity())
		assert.True(t, total.IsEqual(line.LineTotal()))
		assert.Equal(t, "0300-1234567", line.RawPhone())
		assert.Equal(t, order.Pending, line.Status())
		assert.True(t, line.IsPending())
	})

	t.Run("blank row ID is rejected", func(t *testing.T) {
		_, err := order.NewLine("  ", "Ayesha Khan", "Widget", "2", kernel.Money{}, "0300-1234567", order.Pending)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("blank customer name is tolerated", func(t *testing.T) {
		line, err := order.NewLine("3", "", "Widget", "2", kernel.Money{}, "0300-1234567", order.Pending)

		require.NoError(t, err)
		assert.Equal(t, "", line.CustomerKey())
	})

	t.Run("resolved line is not pending", func(t *testing.T) {
		line, err := order.NewLine("4", "Ayesha Khan", "Widget", "2", kernel.Money{}, "0300-1234567", order.Sent)

		require.NoError(t, err)
		assert.False(t, line.IsPending())
	})
}

func TestLine_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var line order.Line

		require.ErrorIs(t, line.Validate(), order.ErrLineIsNotConstructed)
	})

	t.Run("nil line fails validation", func(t *testing.T) {
		var line *order.Line

		require.ErrorIs(t, line.Validate(), order.ErrLineIsNotConstructed)
	})
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantQty int
		wantOK  bool
	}{
		{"plain integer", "3", 3, true},
		{"integer with whitespace", " 5 ", 5, true},
		{"zero", "0", 0, true},
		{"float truncates", "2.7", 2, true},
		{"float with trailing zero", "4.0", 4, true},
		{"non-numeric coerces to zero", "two", 0, false},
		{"blank coerces to zero", "", 0, false},
		{"negative coerces to zero", "-3", 0, false},
		{"negative float coerces to zero", "-2.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, ok := order.ParseQuantity(tt.raw)

			assert.Equal(t, tt.wantQty, qty)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
