package commands_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"notifier/internal/core/application/usecases/commands"
	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/model/order"
	"notifier/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecorderRowSource struct{ mock.Mock }

func (m *MockRecorderRowSource) ReadAll(ctx context.Context) ([]*order.Line, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Line), args.Error(1)
}

func (m *MockRecorderRowSource) WriteStatus(ctx context.Context, rowID string, status order.DeliveryStatus) error {
	args := m.Called(ctx, rowID, status)
	return args.Error(0)
}

func multiRowAggregate(t *testing.T, rowIDs ...string) *order.AggregatedOrder {
	t.Helper()

	agg := order.NewAggregatedOrder("John Doe")
	for _, rowID := range rowIDs {
		require.NoError(t, agg.Fold(rowID, "Widget", 1, kernel.NewMoneyFromMinorUnits(10000)))
	}
	return agg
}

func TestStatusRecorder_Record_Delivered(t *testing.T) {
	ctx := t.Context()
	agg := multiRowAggregate(t, "2", "5", "9")

	source := new(MockRecorderRowSource)
	mock.InOrder(
		source.On("WriteStatus", ctx, "2", order.Sent).Return(nil).Once(),
		source.On("WriteStatus", ctx, "5", order.Sent).Return(nil).Once(),
		source.On("WriteStatus", ctx, "9", order.Sent).Return(nil).Once(),
	)

	recorder := commands.NewStatusRecorder(source, discardLogger())
	marked, writeErrors := recorder.Record(ctx, agg, commands.DeliveredOutcome())

	assert.Equal(t, 3, marked)
	assert.Empty(t, writeErrors)
	source.AssertExpectations(t)
}

func TestStatusRecorder_Record_Failed(t *testing.T) {
	ctx := t.Context()
	agg := multiRowAggregate(t, "2")

	source := new(MockRecorderRowSource)
	source.On("WriteStatus", ctx, "2", order.Failed).Return(nil).Once()

	recorder := commands.NewStatusRecorder(source, discardLogger())
	marked, writeErrors := recorder.Record(ctx, agg, commands.FailedOutcome(errors.New("send box missing")))

	assert.Equal(t, 1, marked)
	assert.Empty(t, writeErrors)
	source.AssertExpectations(t)
}

func TestStatusRecorder_Record_WriteErrorDoesNotStopRemainingRows(t *testing.T) {
	ctx := t.Context()
	agg := multiRowAggregate(t, "2", "5", "9")

	source := new(MockRecorderRowSource)
	mock.InOrder(
		source.On("WriteStatus", ctx, "2", order.Sent).Return(nil).Once(),
		source.On("WriteStatus", ctx, "5", order.Sent).Return(errors.New("row vanished")).Once(),
		source.On("WriteStatus", ctx, "9", order.Sent).Return(nil).Once(),
	)

	recorder := commands.NewStatusRecorder(source, discardLogger())
	marked, writeErrors := recorder.Record(ctx, agg, commands.DeliveredOutcome())

	assert.Equal(t, 2, marked)
	require.Len(t, writeErrors, 1)

	var writeErr *ports.StatusWriteError
	require.ErrorAs(t, writeErrors[0], &writeErr)
	assert.Equal(t, "5", writeErr.RowID)
	assert.Equal(t, order.Sent, writeErr.Status)
	source.AssertExpectations(t)
}

func TestStatusRecorder_Record_WriteFailureLogsAtErrorSeverity(t *testing.T) {
	ctx := t.Context()
	agg := multiRowAggregate(t, "2")

	source := new(MockRecorderRowSource)
	source.On("WriteStatus", ctx, "2", order.Sent).Return(errors.New("row vanished")).Once()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	recorder := commands.NewStatusRecorder(source, logger)
	marked, writeErrors := recorder.Record(ctx, agg, commands.DeliveredOutcome())

	assert.Equal(t, 0, marked)
	require.Len(t, writeErrors, 1)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "Status write failed")
}
