package reports

import (
	"context"

	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"
)

type Service interface {
	GetOccupancyReport(ctx context.Context, requester identity.Requester) (*OccupancyReport, error)
	GetRouteRevenues(ctx context.Context, requester identity.Requester) ([]RouteRevenue, error)
	GetStaffHours(ctx context.Context, requester identity.Requester) ([]StaffHours, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOccupancyReport(ctx context.Context, requester identity.Requester) (*OccupancyReport, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can view reports")
	}

	flights, err := s.repo.GetFlightOccupancies(ctx)
	if err != nil {
		return nil, err
	}

	return &OccupancyReport{
		AverageOccupancy: AverageOccupancy(flights),
		Flights:          flights,
	}, nil
}

func (s *service) GetRouteRevenues(ctx context.Context, requester identity.Requester) ([]RouteRevenue, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can view reports")
	}
	return s.repo.GetRouteRevenues(ctx)
}

func (s *service) GetStaffHours(ctx context.Context, requester identity.Requester) ([]StaffHours, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can view reports")
	}
	return s.repo.GetStaffHours(ctx)
}

// AverageOccupancy is the unweighted mean of per flight fill rates. An
// empty fleet schedule averages to zero.
func AverageOccupancy(flights []FlightOccupancy) float64 {
	if len(flights) == 0 {
		return 0
	}
	var sum float64
	for _, f := range flights {
		sum += f.Occupancy
	}
	return sum / float64(len(flights))
}
