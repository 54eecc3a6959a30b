package services_test

import (
	"testing"

	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/model/order"
	"notifier/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAggregate(t *testing.T) *order.AggregatedOrder {
	t.Helper()
	agg := order.NewAggregatedOrder("Ayesha Khan")
	require.NoError(t, agg.Fold("2", "Widget", 5, kernel.NewMoneyFromMinorUnits(12050)))
	require.NoError(t, agg.Fold("3", "Gadget", 1, kernel.NewMoneyFromMinorUnits(7950)))
	return agg
}

func TestMessageComposer_Compose(t *testing.T) {
	t.Run("golden message body", func(t *testing.T) {
		composer := services.NewMessageComposer("")

		body, err := composer.Compose(sampleAggregate(t))

		require.NoError(t, err)
		want := "Hi Ayesha Khan,\n" +
			"\n" +
			"Thank you for your order of the following item(s):\n" +
			"Widget x 5\n" +
			"Gadget x 1\n" +
			"\n" +
			"Your total is Rs 200.00. Could you kindly confirm your order so we can proceed with dispatching it?\n" +
			"\n" +
			"Best regards,\n" +
			"ASH Homes Customer Support"
		assert.Equal(t, want, body)
	})

	t.Run("custom signature", func(t *testing.T) {
		composer := services.NewMessageComposer("Acme Support")

		body, err := composer.Compose(sampleAggregate(t))

		require.NoError(t, err)
		assert.Contains(t, body, "Best regards,\nAcme Support")
		assert.NotContains(t, body, services.DefaultSignature)
	})

	t.Run("byte-identical for identical input", func(t *testing.T) {
		composer := services.NewMessageComposer("")

		first, err := composer.Compose(sampleAggregate(t))
		require.NoError(t, err)
		second, err := composer.Compose(sampleAggregate(t))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("unconstructed aggregate fails", func(t *testing.T) {
		composer := services.NewMessageComposer("")

		_, err := composer.Compose(&order.AggregatedOrder{})

		require.ErrorIs(t, err, order.ErrAggregatedOrderIsNotConstructed)
	})
}

func TestMessageComposer_ConfirmationPoll(t *testing.T) {
	poll := services.NewMessageComposer("").ConfirmationPoll()

	assert.Equal(t, "Have you confirmed your order?", poll.Question)
	assert.Equal(t, []string{"Yes", "No"}, poll.Options)
}
