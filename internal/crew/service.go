package crew

import (
	"context"
	"errors"

	"flytau/internal/flights"
	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	AddPilot(ctx context.Context, requester identity.Requester, req AddStaffRequest) (*Pilot, error)
	AddAttendant(ctx context.Context, requester identity.Requester, req AddStaffRequest) (*FlightAttendant, error)
	ListPilots(ctx context.Context) ([]Pilot, error)
	ListAttendants(ctx context.Context) ([]FlightAttendant, error)
	GetAssignments(ctx context.Context, flightID string) (*AssignmentResponse, error)
	AssignCrew(ctx context.Context, requester identity.Requester, flightID string, req AssignCrewRequest) (*AssignmentResponse, error)
}

type service struct {
	repo       Repository
	flightRepo flights.Repository
}

func NewService(repo Repository, flightRepo flights.Repository) Service {
	return &service{repo: repo, flightRepo: flightRepo}
}

func (s *service) AddPilot(ctx context.Context, requester identity.Requester, req AddStaffRequest) (*Pilot, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can add crew")
	}

	pilot := &Pilot{
		IDNumber:          req.IDNumber,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		LongHaulQualified: req.LongHaulQualified,
	}
	if err := s.repo.CreatePilot(ctx, pilot); err != nil {
		return nil, err
	}
	return pilot, nil
}

func (s *service) AddAttendant(ctx context.Context, requester identity.Requester, req AddStaffRequest) (*FlightAttendant, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can add crew")
	}

	attendant := &FlightAttendant{
		IDNumber:          req.IDNumber,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		LongHaulQualified: req.LongHaulQualified,
	}
	if err := s.repo.CreateAttendant(ctx, attendant); err != nil {
		return nil, err
	}
	return attendant, nil
}

func (s *service) ListPilots(ctx context.Context) ([]Pilot, error) {
	return s.repo.ListPilots(ctx)
}

func (s *service) ListAttendants(ctx context.Context) ([]FlightAttendant, error) {
	return s.repo.ListAttendants(ctx)
}

func (s *service) GetAssignments(ctx context.Context, flightID string) (*AssignmentResponse, error) {
	id, err := uuid.Parse(flightID)
	if err != nil {
		return nil, faults.Validation("invalid flight id: %s", flightID)
	}

	pilotIDs, attendantIDs, err := s.repo.GetAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AssignmentResponse{
		FlightID:     flightID,
		PilotIDs:     pilotIDs,
		AttendantIDs: attendantIDs,
	}, nil
}

// AssignCrew validates the submitted crew against the flight's staffing
// rule and replaces the assignment wholesale. Checks run in a fixed order:
// pilot count, attendant count, then per-person long haul qualification
// with the first unqualified id aborting the operation.
func (s *service) AssignCrew(ctx context.Context, requester identity.Requester, flightID string, req AssignCrewRequest) (*AssignmentResponse, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can assign crew")
	}

	id, err := uuid.Parse(flightID)
	if err != nil {
		return nil, faults.Validation("invalid flight id: %s", flightID)
	}

	flight, err := s.flightRepo.GetFlight(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("flight %s not found", id)
		}
		return nil, err
	}

	line, err := s.flightRepo.GetFlightLine(ctx, flight.Origin, flight.Destination)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("flight line %s -> %s not found", flight.Origin, flight.Destination)
		}
		return nil, err
	}

	pilotIDs := Dedupe(req.PilotIDs)
	attendantIDs := Dedupe(req.AttendantIDs)
	required := RequiredCrew(line.DurationHours)

	if len(pilotIDs) != required.Pilots {
		return nil, faults.Validation("flight requires exactly %d pilots, got %d", required.Pilots, len(pilotIDs))
	}
	if len(attendantIDs) != required.Attendants {
		return nil, faults.Validation("flight requires exactly %d attendants, got %d", required.Attendants, len(attendantIDs))
	}

	pilots, err := s.repo.GetPilots(ctx, pilotIDs)
	if err != nil {
		return nil, err
	}
	if len(pilots) != len(pilotIDs) {
		return nil, faults.NotFound("one or more pilots do not exist")
	}

	attendants, err := s.repo.GetAttendants(ctx, attendantIDs)
	if err != nil {
		return nil, err
	}
	if len(attendants) != len(attendantIDs) {
		return nil, faults.NotFound("one or more attendants do not exist")
	}

	if line.IsLongHaul() {
		qualifiedPilots := make(map[string]bool, len(pilots))
		for _, p := range pilots {
			qualifiedPilots[p.IDNumber] = p.LongHaulQualified
		}
		for _, pilotID := range pilotIDs {
			if !qualifiedPilots[pilotID] {
				return nil, faults.Validation("pilot %s is not qualified for long haul flights", pilotID)
			}
		}

		qualifiedAttendants := make(map[string]bool, len(attendants))
		for _, a := range attendants {
			qualifiedAttendants[a.IDNumber] = a.LongHaulQualified
		}
		for _, attendantID := range attendantIDs {
			if !qualifiedAttendants[attendantID] {
				return nil, faults.Validation("attendant %s is not qualified for long haul flights", attendantID)
			}
		}
	}

	if err := s.repo.ReplaceAssignments(ctx, id, pilotIDs, attendantIDs); err != nil {
		return nil, err
	}

	return &AssignmentResponse{
		FlightID:     flightID,
		PilotIDs:     pilotIDs,
		AttendantIDs: attendantIDs,
	}, nil
}
