package reports

import (
	"context"
	"testing"

	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetFlightOccupancies(ctx context.Context) ([]FlightOccupancy, error) {
	args := m.Called(ctx)
	return args.Get(0).([]FlightOccupancy), args.Error(1)
}

func (m *mockRepository) GetRouteRevenues(ctx context.Context) ([]RouteRevenue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]RouteRevenue), args.Error(1)
}

func (m *mockRepository) GetStaffHours(ctx context.Context) ([]StaffHours, error) {
	args := m.Called(ctx)
	return args.Get(0).([]StaffHours), args.Error(1)
}

func TestAverageOccupancy(t *testing.T) {
	t.Run("averages per flight fill rates", func(t *testing.T) {
		avg := AverageOccupancy([]FlightOccupancy{
			{Occupancy: 0.5},
			{Occupancy: 1.0},
			{Occupancy: 0.0},
		})
		assert.InDelta(t, 0.5, avg, 1e-9)
	})

	t.Run("no flights means zero occupancy", func(t *testing.T) {
		assert.Zero(t, AverageOccupancy(nil))
	})
}

func TestReportsRequireManager(t *testing.T) {
	ctx := context.Background()
	svc := NewService(new(mockRepository))

	_, err := svc.GetOccupancyReport(ctx, identity.Customer("a@b.com"))
	assert.Equal(t, faults.KindUnauthorized, faults.KindOf(err))

	_, err = svc.GetRouteRevenues(ctx, identity.Guest("a@b.com", "A", "B"))
	assert.Equal(t, faults.KindUnauthorized, faults.KindOf(err))

	_, err = svc.GetStaffHours(ctx, identity.Customer("a@b.com"))
	assert.Equal(t, faults.KindUnauthorized, faults.KindOf(err))
}

func TestGetOccupancyReport(t *testing.T) {
	ctx := context.Background()
	manager := identity.Manager("123456789")

	repo := new(mockRepository)
	repo.On("GetFlightOccupancies", ctx).Return([]FlightOccupancy{
		{FlightID: "f1", Booked: 10, Capacity: 20, Occupancy: 0.5},
		{FlightID: "f2", Booked: 20, Capacity: 20, Occupancy: 1.0},
	}, nil)
	svc := NewService(repo)

	report, err := svc.GetOccupancyReport(ctx, manager)

	assert.NoError(t, err)
	assert.InDelta(t, 0.75, report.AverageOccupancy, 1e-9)
	assert.Len(t, report.Flights, 2)
}
