package fleet

import (
	"context"
	"testing"

	"flytau/internal/shared/faults"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreatePlane(ctx context.Context, plane *Plane) error {
	args := m.Called(ctx, plane)
	return args.Error(0)
}

func (m *mockRepository) GetPlane(ctx context.Context, planeID int) (*Plane, error) {
	args := m.Called(ctx, planeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Plane), args.Error(1)
}

func (m *mockRepository) GetPlaneWithClasses(ctx context.Context, planeID int) (*Plane, error) {
	args := m.Called(ctx, planeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Plane), args.Error(1)
}

func (m *mockRepository) ListPlanes(ctx context.Context) ([]Plane, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Plane), args.Error(1)
}

func (m *mockRepository) ClassExists(ctx context.Context, planeID int, classType ClassType) (bool, error) {
	args := m.Called(ctx, planeID, classType)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CreateClassWithSeats(ctx context.Context, class *PlaneClass, seats []Seat) error {
	args := m.Called(ctx, class, seats)
	return args.Error(0)
}

func (m *mockRepository) GetSeats(ctx context.Context, planeID int) ([]Seat, error) {
	args := m.Called(ctx, planeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Seat), args.Error(1)
}

func TestAddPlaneClass(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects business class on small plane", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPlane", ctx, 5).Return(&Plane{PlaneID: 5, Size: PlaneSizeSmall}, nil)

		svc := NewService(repo)
		_, err := svc.AddPlaneClass(ctx, 5, AddPlaneClassRequest{
			ClassType: "Business",
			RowsCount: 4,
			ColsCount: 4,
		})

		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
		repo.AssertNotCalled(t, "CreateClassWithSeats", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate class", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPlane", ctx, 5).Return(&Plane{PlaneID: 5, Size: PlaneSizeLarge}, nil)
		repo.On("ClassExists", ctx, 5, ClassEconomy).Return(true, nil)

		svc := NewService(repo)
		_, err := svc.AddPlaneClass(ctx, 5, AddPlaneClassRequest{
			ClassType: "Economy",
			RowsCount: 10,
			ColsCount: 6,
		})

		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
	})

	t.Run("missing plane reports not found", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPlane", ctx, 99).Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(repo)
		_, err := svc.AddPlaneClass(ctx, 99, AddPlaneClassRequest{
			ClassType: "Economy",
			RowsCount: 10,
			ColsCount: 6,
		})

		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindNotFound))
	})

	t.Run("creates class with generated seat grid", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPlane", ctx, 5).Return(&Plane{PlaneID: 5, Size: PlaneSizeLarge}, nil)
		repo.On("ClassExists", ctx, 5, ClassBusiness).Return(false, nil)
		repo.On("CreateClassWithSeats", ctx, mock.Anything, mock.MatchedBy(func(seats []Seat) bool {
			return len(seats) == 8 && seats[0].SeatNumber == "1A" && seats[7].SeatNumber == "2D"
		})).Return(nil)
		repo.On("GetPlaneWithClasses", ctx, 5).Return(&Plane{
			PlaneID: 5,
			Size:    PlaneSizeLarge,
			Classes: []PlaneClass{{PlaneID: 5, ClassType: ClassBusiness, RowsCount: 2, ColsCount: 4}},
		}, nil)

		svc := NewService(repo)
		resp, err := svc.AddPlaneClass(ctx, 5, AddPlaneClassRequest{
			ClassType: "Business",
			RowsCount: 2,
			ColsCount: 4,
		})

		require.NoError(t, err)
		assert.Equal(t, 8, resp.Capacity)
		repo.AssertExpectations(t)
	})
}

func TestAddPlane(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects bad purchase date", func(t *testing.T) {
		svc := NewService(new(mockRepository))
		_, err := svc.AddPlane(ctx, AddPlaneRequest{
			PlaneID:      1,
			Manufacturer: "Boeing",
			Size:         "Large",
			PurchaseDate: "12/01/2020",
		})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
	})

	t.Run("rejects duplicate fleet number", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPlane", ctx, 1).Return(&Plane{PlaneID: 1}, nil)

		svc := NewService(repo)
		_, err := svc.AddPlane(ctx, AddPlaneRequest{
			PlaneID:      1,
			Manufacturer: "Boeing",
			Size:         "Large",
			PurchaseDate: "2020-01-12",
		})
		require.Error(t, err)
		assert.True(t, faults.IsKind(err, faults.KindValidation))
	})

	t.Run("creates plane", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPlane", ctx, 1).Return(nil, gorm.ErrRecordNotFound)
		repo.On("CreatePlane", ctx, mock.MatchedBy(func(p *Plane) bool {
			return p.PlaneID == 1 && p.Size == PlaneSizeLarge
		})).Return(nil)

		svc := NewService(repo)
		resp, err := svc.AddPlane(ctx, AddPlaneRequest{
			PlaneID:      1,
			Manufacturer: "Airbus",
			Size:         "Large",
			PurchaseDate: "2020-01-12",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.PlaneID)
		repo.AssertExpectations(t)
	})
}
