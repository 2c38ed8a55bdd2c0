package crew

import (
	"context"
	"testing"
	"time"

	"flytau/internal/flights"
	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreatePilot(ctx context.Context, pilot *Pilot) error {
	args := m.Called(ctx, pilot)
	return args.Error(0)
}

func (m *mockRepository) CreateAttendant(ctx context.Context, attendant *FlightAttendant) error {
	args := m.Called(ctx, attendant)
	return args.Error(0)
}

func (m *mockRepository) ListPilots(ctx context.Context) ([]Pilot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Pilot), args.Error(1)
}

func (m *mockRepository) ListAttendants(ctx context.Context) ([]FlightAttendant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]FlightAttendant), args.Error(1)
}

func (m *mockRepository) GetPilots(ctx context.Context, ids []string) ([]Pilot, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]Pilot), args.Error(1)
}

func (m *mockRepository) GetAttendants(ctx context.Context, ids []string) ([]FlightAttendant, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]FlightAttendant), args.Error(1)
}

func (m *mockRepository) GetAssignments(ctx context.Context, flightID uuid.UUID) ([]string, []string, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func (m *mockRepository) ReplaceAssignments(ctx context.Context, flightID uuid.UUID, pilotIDs, attendantIDs []string) error {
	args := m.Called(ctx, flightID, pilotIDs, attendantIDs)
	return args.Error(0)
}

type mockFlightRepository struct {
	mock.Mock
}

func (m *mockFlightRepository) CreateFlightLine(ctx context.Context, line *flights.FlightLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *mockFlightRepository) GetFlightLine(ctx context.Context, origin, destination string) (*flights.FlightLine, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.FlightLine), args.Error(1)
}

func (m *mockFlightRepository) ListFlightLines(ctx context.Context) ([]flights.FlightLine, error) {
	args := m.Called(ctx)
	return args.Get(0).([]flights.FlightLine), args.Error(1)
}

func (m *mockFlightRepository) ListAirports(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFlightRepository) CreateFlight(ctx context.Context, flight *flights.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *mockFlightRepository) GetFlight(ctx context.Context, id uuid.UUID) (*flights.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.Flight), args.Error(1)
}

func (m *mockFlightRepository) Search(ctx context.Context, query flights.SearchQuery, now time.Time) ([]flights.FlightSummary, error) {
	args := m.Called(ctx, query, now)
	return args.Get(0).([]flights.FlightSummary), args.Error(1)
}

func (m *mockFlightRepository) ListFlights(ctx context.Context, query flights.ListQuery) ([]flights.FlightSummary, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]flights.FlightSummary), args.Error(1)
}

func (m *mockFlightRepository) OccupiedSeats(ctx context.Context, flightID uuid.UUID) ([]flights.SeatRef, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]flights.SeatRef), args.Error(1)
}

func (m *mockFlightRepository) UpdatePrices(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*flights.Flight, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.Flight), args.Error(1)
}

func (m *mockFlightRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status flights.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockFlightRepository) CancelFlightWithRefunds(ctx context.Context, flightID uuid.UUID, now time.Time, lead time.Duration) ([]flights.CanceledOrder, error) {
	args := m.Called(ctx, flightID, now, lead)
	return args.Get(0).([]flights.CanceledOrder), args.Error(1)
}

func pilotSet(qualified bool, ids ...string) []Pilot {
	out := make([]Pilot, 0, len(ids))
	for _, id := range ids {
		out = append(out, Pilot{IDNumber: id, LongHaulQualified: qualified})
	}
	return out
}

func attendantSet(qualified bool, ids ...string) []FlightAttendant {
	out := make([]FlightAttendant, 0, len(ids))
	for _, id := range ids {
		out = append(out, FlightAttendant{IDNumber: id, LongHaulQualified: qualified})
	}
	return out
}

func TestAssignCrew(t *testing.T) {
	ctx := context.Background()
	manager := identity.Manager("123456789")
	flightID := uuid.New()

	shortHaul := &flights.FlightLine{Origin: "TLV", Destination: "LHR", DurationHours: 5}
	longHaul := &flights.FlightLine{Origin: "TLV", Destination: "JFK", DurationHours: 7}

	flightOn := func(line *flights.FlightLine) *flights.Flight {
		return &flights.Flight{ID: flightID, Origin: line.Origin, Destination: line.Destination}
	}

	shortPilots := []string{"100000001", "100000002"}
	shortAttendants := []string{"200000001", "200000002", "200000003"}
	longPilots := []string{"100000001", "100000002", "100000003"}
	longAttendants := []string{"200000001", "200000002", "200000003", "200000004", "200000005", "200000006"}

	t.Run("customers cannot assign crew", func(t *testing.T) {
		svc := NewService(new(mockRepository), new(mockFlightRepository))

		_, err := svc.AssignCrew(ctx, identity.Customer("a@b.com"), flightID.String(), AssignCrewRequest{})

		assert.Equal(t, faults.KindUnauthorized, faults.KindOf(err))
	})

	t.Run("unknown flight is not found", func(t *testing.T) {
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(nil, gorm.ErrRecordNotFound)
		svc := NewService(new(mockRepository), flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     shortPilots,
			AttendantIDs: shortAttendants,
		})

		assert.Equal(t, faults.KindNotFound, faults.KindOf(err))
	})

	t.Run("short haul accepts 2 pilots and 3 attendants", func(t *testing.T) {
		repo := new(mockRepository)
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(shortHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "LHR").Return(shortHaul, nil)
		repo.On("GetPilots", ctx, shortPilots).Return(pilotSet(false, shortPilots...), nil)
		repo.On("GetAttendants", ctx, shortAttendants).Return(attendantSet(false, shortAttendants...), nil)
		repo.On("ReplaceAssignments", ctx, flightID, shortPilots, shortAttendants).Return(nil)
		svc := NewService(repo, flightRepo)

		resp, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     shortPilots,
			AttendantIDs: shortAttendants,
		})

		assert.NoError(t, err)
		assert.Equal(t, shortPilots, resp.PilotIDs)
		assert.Equal(t, shortAttendants, resp.AttendantIDs)
		repo.AssertNumberOfCalls(t, "ReplaceAssignments", 1)
	})

	t.Run("seven hour flight needs exactly 3 pilots", func(t *testing.T) {
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(longHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "JFK").Return(longHaul, nil)
		svc := NewService(new(mockRepository), flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     shortPilots,
			AttendantIDs: longAttendants,
		})

		assert.Equal(t, faults.KindValidation, faults.KindOf(err))
		assert.Contains(t, err.Error(), "3 pilots")
	})

	t.Run("seven hour flight needs exactly 6 attendants", func(t *testing.T) {
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(longHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "JFK").Return(longHaul, nil)
		svc := NewService(new(mockRepository), flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     longPilots,
			AttendantIDs: shortAttendants,
		})

		assert.Equal(t, faults.KindValidation, faults.KindOf(err))
		assert.Contains(t, err.Error(), "6 attendants")
	})

	t.Run("duplicated ids count once", func(t *testing.T) {
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(shortHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "LHR").Return(shortHaul, nil)
		svc := NewService(new(mockRepository), flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     []string{"100000001", "100000001"},
			AttendantIDs: shortAttendants,
		})

		assert.Equal(t, faults.KindValidation, faults.KindOf(err))
		assert.Contains(t, err.Error(), "2 pilots")
	})

	t.Run("unknown pilot id is not found", func(t *testing.T) {
		repo := new(mockRepository)
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(shortHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "LHR").Return(shortHaul, nil)
		repo.On("GetPilots", ctx, shortPilots).Return(pilotSet(false, "100000001"), nil)
		svc := NewService(repo, flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     shortPilots,
			AttendantIDs: shortAttendants,
		})

		assert.Equal(t, faults.KindNotFound, faults.KindOf(err))
	})

	t.Run("long haul rejects unqualified pilot by id", func(t *testing.T) {
		repo := new(mockRepository)
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(longHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "JFK").Return(longHaul, nil)

		pilots := pilotSet(true, "100000001", "100000003")
		pilots = append(pilots, Pilot{IDNumber: "100000002", LongHaulQualified: false})
		repo.On("GetPilots", ctx, longPilots).Return(pilots, nil)
		repo.On("GetAttendants", ctx, longAttendants).Return(attendantSet(true, longAttendants...), nil)
		svc := NewService(repo, flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     longPilots,
			AttendantIDs: longAttendants,
		})

		assert.Equal(t, faults.KindValidation, faults.KindOf(err))
		assert.Contains(t, err.Error(), "100000002")
		repo.AssertNotCalled(t, "ReplaceAssignments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("long haul rejects unqualified attendant by id", func(t *testing.T) {
		repo := new(mockRepository)
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(longHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "JFK").Return(longHaul, nil)

		attendants := attendantSet(true, longAttendants[:5]...)
		attendants = append(attendants, FlightAttendant{IDNumber: "200000006", LongHaulQualified: false})
		repo.On("GetPilots", ctx, longPilots).Return(pilotSet(true, longPilots...), nil)
		repo.On("GetAttendants", ctx, longAttendants).Return(attendants, nil)
		svc := NewService(repo, flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     longPilots,
			AttendantIDs: longAttendants,
		})

		assert.Equal(t, faults.KindValidation, faults.KindOf(err))
		assert.Contains(t, err.Error(), "200000006")
	})

	t.Run("seven hour flight with qualified crew succeeds", func(t *testing.T) {
		repo := new(mockRepository)
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(longHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "JFK").Return(longHaul, nil)
		repo.On("GetPilots", ctx, longPilots).Return(pilotSet(true, longPilots...), nil)
		repo.On("GetAttendants", ctx, longAttendants).Return(attendantSet(true, longAttendants...), nil)
		repo.On("ReplaceAssignments", ctx, flightID, longPilots, longAttendants).Return(nil)
		svc := NewService(repo, flightRepo)

		resp, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     longPilots,
			AttendantIDs: longAttendants,
		})

		assert.NoError(t, err)
		assert.Len(t, resp.PilotIDs, 3)
		assert.Len(t, resp.AttendantIDs, 6)
	})

	t.Run("short haul accepts unqualified crew", func(t *testing.T) {
		repo := new(mockRepository)
		flightRepo := new(mockFlightRepository)
		flightRepo.On("GetFlight", ctx, flightID).Return(flightOn(shortHaul), nil)
		flightRepo.On("GetFlightLine", ctx, "TLV", "LHR").Return(shortHaul, nil)
		repo.On("GetPilots", ctx, shortPilots).Return(pilotSet(false, shortPilots...), nil)
		repo.On("GetAttendants", ctx, shortAttendants).Return(attendantSet(false, shortAttendants...), nil)
		repo.On("ReplaceAssignments", ctx, flightID, shortPilots, shortAttendants).Return(nil)
		svc := NewService(repo, flightRepo)

		_, err := svc.AssignCrew(ctx, manager, flightID.String(), AssignCrewRequest{
			PilotIDs:     shortPilots,
			AttendantIDs: shortAttendants,
		})

		assert.NoError(t, err)
	})
}

func TestAddStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("manager adds a pilot", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("CreatePilot", ctx, mock.MatchedBy(func(p *Pilot) bool {
			return p.IDNumber == "123456789" && p.LongHaulQualified
		})).Return(nil)
		svc := NewService(repo, new(mockFlightRepository))

		pilot, err := svc.AddPilot(ctx, identity.Manager("999999999"), AddStaffRequest{
			IDNumber:          "123456789",
			FirstName:         "Dana",
			LastName:          "Levi",
			LongHaulQualified: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "123456789", pilot.IDNumber)
	})

	t.Run("customer cannot add staff", func(t *testing.T) {
		svc := NewService(new(mockRepository), new(mockFlightRepository))

		_, err := svc.AddAttendant(ctx, identity.Customer("a@b.com"), AddStaffRequest{
			IDNumber:  "123456789",
			FirstName: "Dana",
			LastName:  "Levi",
		})

		assert.Equal(t, faults.KindUnauthorized, faults.KindOf(err))
	})
}
