package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"flytau/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LandDepartedFlights(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) CompleteLandedOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestSweepWithResult(t *testing.T) {
	ctx := context.Background()

	t.Run("flights land before orders complete", func(t *testing.T) {
		repo := new(mockRepository)
		var order []string
		repo.On("LandDepartedFlights", ctx, mock.Anything).Run(func(mock.Arguments) {
			order = append(order, "flights")
		}).Return(int64(2), nil)
		repo.On("CompleteLandedOrders", ctx).Run(func(mock.Arguments) {
			order = append(order, "orders")
		}).Return(int64(5), nil)

		svc := NewService(repo, logger.New())
		flightsLanded, ordersCompleted, err := svc.SweepWithResult(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(2), flightsLanded)
		assert.Equal(t, int64(5), ordersCompleted)
		assert.Equal(t, []string{"flights", "orders"}, order)
	})

	t.Run("second run over settled state changes nothing", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("LandDepartedFlights", ctx, mock.Anything).Return(int64(0), nil)
		repo.On("CompleteLandedOrders", ctx).Return(int64(0), nil)

		svc := NewService(repo, logger.New())
		flightsLanded, ordersCompleted, err := svc.SweepWithResult(ctx)
		require.NoError(t, err)
		assert.Zero(t, flightsLanded)
		assert.Zero(t, ordersCompleted)
	})

	t.Run("flight stage failure skips the order stage", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("LandDepartedFlights", ctx, mock.Anything).Return(int64(0), errors.New("db down"))

		svc := NewService(repo, logger.New())
		_, _, err := svc.SweepWithResult(ctx)
		require.Error(t, err)
		repo.AssertNotCalled(t, "CompleteLandedOrders", mock.Anything)
	})

	t.Run("sweep swallows failures", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("LandDepartedFlights", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

		svc := NewService(repo, logger.New())
		assert.NotPanics(t, func() { svc.Sweep(ctx) })
	})
}
