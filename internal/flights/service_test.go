package flights

import (
	"context"
	"testing"
	"time"

	"flytau/internal/fleet"
	"flytau/internal/shared/config"
	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"
	"flytau/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateFlightLine(ctx context.Context, line *FlightLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *mockRepository) GetFlightLine(ctx context.Context, origin, destination string) (*FlightLine, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FlightLine), args.Error(1)
}

func (m *mockRepository) ListFlightLines(ctx context.Context) ([]FlightLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]FlightLine), args.Error(1)
}

func (m *mockRepository) ListAirports(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepository) CreateFlight(ctx context.Context, flight *Flight) error {
	return m.Called(ctx, flight).Error(0)
}

func (m *mockRepository) GetFlight(ctx context.Context, id uuid.UUID) (*Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Flight), args.Error(1)
}

func (m *mockRepository) Search(ctx context.Context, query SearchQuery, now time.Time) ([]FlightSummary, error) {
	args := m.Called(ctx, query, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]FlightSummary), args.Error(1)
}

func (m *mockRepository) ListFlights(ctx context.Context, query ListQuery) ([]FlightSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]FlightSummary), args.Error(1)
}

func (m *mockRepository) OccupiedSeats(ctx context.Context, flightID uuid.UUID) ([]SeatRef, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SeatRef), args.Error(1)
}

func (m *mockRepository) UpdatePrices(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Flight, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Flight), args.Error(1)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRepository) CancelFlightWithRefunds(ctx context.Context, flightID uuid.UUID, now time.Time, lead time.Duration) ([]CanceledOrder, error) {
	args := m.Called(ctx, flightID, now, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CanceledOrder), args.Error(1)
}

type mockFleetRepository struct {
	mock.Mock
}

func (m *mockFleetRepository) CreatePlane(ctx context.Context, plane *fleet.Plane) error {
	return m.Called(ctx, plane).Error(0)
}

func (m *mockFleetRepository) GetPlane(ctx context.Context, planeID int) (*fleet.Plane, error) {
	args := m.Called(ctx, planeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Plane), args.Error(1)
}

func (m *mockFleetRepository) GetPlaneWithClasses(ctx context.Context, planeID int) (*fleet.Plane, error) {
	args := m.Called(ctx, planeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Plane), args.Error(1)
}

func (m *mockFleetRepository) ListPlanes(ctx context.Context) ([]fleet.Plane, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Plane), args.Error(1)
}

func (m *mockFleetRepository) ClassExists(ctx context.Context, planeID int, classType fleet.ClassType) (bool, error) {
	args := m.Called(ctx, planeID, classType)
	return args.Bool(0), args.Error(1)
}

func (m *mockFleetRepository) CreateClassWithSeats(ctx context.Context, class *fleet.PlaneClass, seats []fleet.Seat) error {
	return m.Called(ctx, class, seats).Error(0)
}

func (m *mockFleetRepository) GetSeats(ctx context.Context, planeID int) ([]fleet.Seat, error) {
	args := m.Called(ctx, planeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Seat), args.Error(1)
}

func newTestService(repo Repository, fleetRepo fleet.Repository) Service {
	return NewService(repo, fleetRepo, config.Load(), logger.New())
}

func TestCreateFlight(t *testing.T) {
	ctx := context.Background()
	manager := identity.Manager("123456789")
	departure := time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339)

	t.Run("rejects non-manager", func(t *testing.T) {
		svc := newTestService(new(mockRepository), new(mockFleetRepository))
		_, err := svc.CreateFlight(ctx, identity.Customer("a@b.com"), CreateFlightRequest{})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindUnauthorized))
	})

	t.Run("rejects unknown route", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetFlightLine", ctx, "TLV", "NYC").Return(nil, gorm.ErrRecordNotFound)

		svc := newTestService(repo, new(mockFleetRepository))
		_, err := svc.CreateFlight(ctx, manager, CreateFlightRequest{
			Origin:            "TLV",
			Destination:       "NYC",
			PlaneID:           1,
			DepartureDatetime: departure,
			PriceEconomy:      500,
		})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
	})

	t.Run("drops business price when plane has no business cabin", func(t *testing.T) {
		repo := new(mockRepository)
		fleetRepo := new(mockFleetRepository)
		price := 1200.0

		repo.On("GetFlightLine", ctx, "TLV", "NYC").Return(&FlightLine{Origin: "TLV", Destination: "NYC", DurationHours: 11}, nil)
		fleetRepo.On("GetPlaneWithClasses", ctx, 1).Return(&fleet.Plane{
			PlaneID: 1,
			Size:    fleet.PlaneSizeSmall,
			Classes: []fleet.PlaneClass{{PlaneID: 1, ClassType: fleet.ClassEconomy, RowsCount: 10, ColsCount: 4}},
		}, nil)
		repo.On("CreateFlight", ctx, mock.MatchedBy(func(f *Flight) bool {
			return f.PriceBusiness == nil && f.Status == StatusActive && f.CreatedByManager == "123456789"
		})).Return(nil)

		svc := newTestService(repo, fleetRepo)
		flight, err := svc.CreateFlight(ctx, manager, CreateFlightRequest{
			Origin:            "TLV",
			Destination:       "NYC",
			PlaneID:           1,
			DepartureDatetime: departure,
			PriceEconomy:      500,
			PriceBusiness:     &price,
		})
		require.NoError(t, err)
		assert.Nil(t, flight.PriceBusiness)
		repo.AssertExpectations(t)
	})

	t.Run("requires business price when cabin exists", func(t *testing.T) {
		repo := new(mockRepository)
		fleetRepo := new(mockFleetRepository)

		repo.On("GetFlightLine", ctx, "TLV", "NYC").Return(&FlightLine{Origin: "TLV", Destination: "NYC", DurationHours: 11}, nil)
		fleetRepo.On("GetPlaneWithClasses", ctx, 2).Return(&fleet.Plane{
			PlaneID: 2,
			Size:    fleet.PlaneSizeLarge,
			Classes: []fleet.PlaneClass{
				{PlaneID: 2, ClassType: fleet.ClassEconomy, RowsCount: 20, ColsCount: 6},
				{PlaneID: 2, ClassType: fleet.ClassBusiness, RowsCount: 4, ColsCount: 4},
			},
		}, nil)

		svc := newTestService(repo, fleetRepo)
		_, err := svc.CreateFlight(ctx, manager, CreateFlightRequest{
			Origin:            "TLV",
			Destination:       "NYC",
			PlaneID:           2,
			DepartureDatetime: departure,
			PriceEconomy:      500,
		})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
	})

	t.Run("rejects past departure", func(t *testing.T) {
		svc := newTestService(new(mockRepository), new(mockFleetRepository))
		_, err := svc.CreateFlight(ctx, manager, CreateFlightRequest{
			Origin:            "TLV",
			Destination:       "NYC",
			PlaneID:           1,
			DepartureDatetime: time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
			PriceEconomy:      500,
		})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	manager := identity.Manager("123456789")

	t.Run("cancellation is routed through the refund workflow", func(t *testing.T) {
		id := uuid.New()
		repo := new(mockRepository)
		repo.On("GetFlight", ctx, id).Return(&Flight{ID: id, Status: StatusActive}, nil)

		svc := newTestService(repo, new(mockFleetRepository))
		err := svc.UpdateStatus(ctx, manager, id.String(), UpdateStatusRequest{Status: "Canceled"})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("canceled flights are frozen", func(t *testing.T) {
		id := uuid.New()
		repo := new(mockRepository)
		repo.On("GetFlight", ctx, id).Return(&Flight{ID: id, Status: StatusCanceled}, nil)

		svc := newTestService(repo, new(mockFleetRepository))
		err := svc.UpdateStatus(ctx, manager, id.String(), UpdateStatusRequest{Status: "Active"})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindInvalidState))
	})
}

func TestGetSeatAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("computes availability for a flight", func(t *testing.T) {
		id := uuid.New()
		repo := new(mockRepository)
		fleetRepo := new(mockFleetRepository)

		seats, err := fleet.BuildSeats(1, fleet.ClassEconomy, 2, 2)
		require.NoError(t, err)

		repo.On("GetFlight", ctx, id).Return(&Flight{ID: id, PlaneID: 1, Status: StatusActive}, nil)
		fleetRepo.On("GetPlane", ctx, 1).Return(&fleet.Plane{PlaneID: 1, Size: fleet.PlaneSizeLarge}, nil)
		fleetRepo.On("GetSeats", ctx, 1).Return(seats, nil)
		repo.On("OccupiedSeats", ctx, id).Return([]SeatRef{{ClassType: fleet.ClassEconomy, SeatNumber: "1A"}}, nil)

		svc := newTestService(repo, fleetRepo)
		availability, err := svc.GetSeatAvailability(ctx, id.String())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"1B", "2A", "2B"}, availability.Available[fleet.ClassEconomy])
		assert.ElementsMatch(t, []string{"1A"}, availability.Occupied[fleet.ClassEconomy])
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		svc := newTestService(new(mockRepository), new(mockFleetRepository))
		_, err := svc.GetSeatAvailability(ctx, "not-a-uuid")
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
	})
}
