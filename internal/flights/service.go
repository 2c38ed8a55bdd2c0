package flights

import (
	"context"
	"errors"
	"time"

	"flytau/internal/fleet"
	"flytau/internal/shared/config"
	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"
	"flytau/pkg/cache"
	"flytau/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sweeper runs the lifecycle sweeps. Injected so read endpoints can refresh
// flight and order statuses opportunistically without an import cycle.
type Sweeper interface {
	Sweep(ctx context.Context)
}

// Publisher fans cancellation events out to the notification pipeline.
// Publishing is best-effort and never fails the originating operation.
type Publisher interface {
	PublishFlightCanceled(ctx context.Context, flight *Flight, orders []CanceledOrder)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetSweeper(sweeper Sweeper)
	SetPublisher(publisher Publisher)

	SearchFlights(ctx context.Context, query SearchQuery) ([]FlightSummary, error)
	GetFlightBoard(ctx context.Context) ([]FlightSummary, error)
	ListAirports(ctx context.Context) ([]string, error)
	GetSeatAvailability(ctx context.Context, flightID string) (*AvailabilityResponse, error)

	AddFlightLine(ctx context.Context, requester identity.Requester, req AddFlightLineRequest) (*FlightLine, error)
	ListFlightLines(ctx context.Context) ([]FlightLine, error)
	CreateFlight(ctx context.Context, requester identity.Requester, req CreateFlightRequest) (*Flight, error)
	ListFlights(ctx context.Context, query ListQuery) ([]FlightSummary, error)
	UpdatePrices(ctx context.Context, requester identity.Requester, flightID string, req UpdatePricesRequest) (*Flight, error)
	UpdateStatus(ctx context.Context, requester identity.Requester, flightID string, req UpdateStatusRequest) error
	CancelFlight(ctx context.Context, requester identity.Requester, flightID string) error
}

type service struct {
	repo         Repository
	fleetRepo    fleet.Repository
	cfg          *config.Config
	log          *logger.Logger
	cacheService cache.Service
	sweeper      Sweeper
	publisher    Publisher
}

func NewService(repo Repository, fleetRepo fleet.Repository, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		fleetRepo: fleetRepo,
		cfg:       cfg,
		log:       log,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) { s.cacheService = cacheService }
func (s *service) SetSweeper(sweeper Sweeper)                 { s.sweeper = sweeper }
func (s *service) SetPublisher(publisher Publisher)           { s.publisher = publisher }

func (s *service) sweep(ctx context.Context) {
	if s.sweeper != nil {
		s.sweeper.Sweep(ctx)
	}
}

func (s *service) SearchFlights(ctx context.Context, query SearchQuery) ([]FlightSummary, error) {
	s.sweep(ctx)

	if s.cacheService != nil {
		var cached []FlightSummary
		key := cache.FlightSearchKey(query.Origin, query.Destination, query.Date)
		err := s.cacheService.GetOrSet(ctx, key, s.cfg.Redis.FlightBoardTTL, func() (interface{}, error) {
			return s.repo.Search(ctx, query, time.Now().UTC())
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.repo.Search(ctx, query, time.Now().UTC())
}

func (s *service) GetFlightBoard(ctx context.Context) ([]FlightSummary, error) {
	s.sweep(ctx)

	if s.cacheService != nil {
		var cached []FlightSummary
		err := s.cacheService.GetOrSet(ctx, cache.FlightBoardKey(), s.cfg.Redis.FlightBoardTTL, func() (interface{}, error) {
			return s.repo.ListFlights(ctx, ListQuery{})
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.repo.ListFlights(ctx, ListQuery{})
}

func (s *service) ListAirports(ctx context.Context) ([]string, error) {
	return s.repo.ListAirports(ctx)
}

func (s *service) GetSeatAvailability(ctx context.Context, flightID string) (*AvailabilityResponse, error) {
	s.sweep(ctx)

	id, err := uuid.Parse(flightID)
	if err != nil {
		return nil, faults.Validation("invalid flight id: %s", flightID)
	}

	if s.cacheService != nil {
		var cached AvailabilityResponse
		key := cache.AvailabilityKey(flightID)
		err := s.cacheService.GetOrSet(ctx, key, s.cfg.Redis.AvailabilityTTL, func() (interface{}, error) {
			return s.computeAvailability(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
	}
	return s.computeAvailability(ctx, id)
}

func (s *service) computeAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	flight, err := s.getFlight(ctx, id)
	if err != nil {
		return nil, err
	}

	plane, err := s.fleetRepo.GetPlane(ctx, flight.PlaneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("plane %d not found", flight.PlaneID)
		}
		return nil, err
	}

	seats, err := s.fleetRepo.GetSeats(ctx, flight.PlaneID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.repo.OccupiedSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	available, taken := ComputeAvailability(seats, occupied, plane.Size)
	return &AvailabilityResponse{
		FlightID:  flight.ID.String(),
		PlaneID:   flight.PlaneID,
		Available: available,
		Occupied:  taken,
	}, nil
}

func (s *service) AddFlightLine(ctx context.Context, requester identity.Requester, req AddFlightLineRequest) (*FlightLine, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can add flight lines")
	}
	if req.Origin == req.Destination {
		return nil, faults.Validation("origin and destination must differ")
	}

	if _, err := s.repo.GetFlightLine(ctx, req.Origin, req.Destination); err == nil {
		return nil, faults.Validation("flight line %s -> %s already exists", req.Origin, req.Destination)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	line := &FlightLine{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DurationHours: req.DurationHours,
	}
	if err := s.repo.CreateFlightLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *service) ListFlightLines(ctx context.Context) ([]FlightLine, error) {
	return s.repo.ListFlightLines(ctx)
}

func (s *service) CreateFlight(ctx context.Context, requester identity.Requester, req CreateFlightRequest) (*Flight, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can create flights")
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureDatetime)
	if err != nil {
		return nil, faults.Validation("departure_datetime must be RFC3339: %s", req.DepartureDatetime)
	}
	if !departure.After(time.Now().UTC()) {
		return nil, faults.Validation("departure must be in the future")
	}

	if _, err := s.repo.GetFlightLine(ctx, req.Origin, req.Destination); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.Validation("no flight line from %s to %s", req.Origin, req.Destination)
		}
		return nil, err
	}

	plane, err := s.fleetRepo.GetPlaneWithClasses(ctx, req.PlaneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("plane %d not found", req.PlaneID)
		}
		return nil, err
	}

	// A flight only carries a business price when the plane actually has a
	// business cabin.
	priceBusiness := req.PriceBusiness
	if !hasClass(plane.Classes, fleet.ClassBusiness) {
		priceBusiness = nil
	} else if priceBusiness == nil {
		return nil, faults.Validation("price_business is required for plane %d", req.PlaneID)
	}

	flight := &Flight{
		ID:                uuid.New(),
		Origin:            req.Origin,
		Destination:       req.Destination,
		PlaneID:           req.PlaneID,
		DepartureDatetime: departure.UTC(),
		Status:            StatusActive,
		PriceEconomy:      req.PriceEconomy,
		PriceBusiness:     priceBusiness,
		CreatedByManager:  requester.ManagerID,
	}
	if err := s.repo.CreateFlight(ctx, flight); err != nil {
		return nil, err
	}

	s.invalidateFlightCaches(ctx)
	return flight, nil
}

func hasClass(classes []fleet.PlaneClass, classType fleet.ClassType) bool {
	for _, pc := range classes {
		if pc.ClassType == classType {
			return true
		}
	}
	return false
}

func (s *service) ListFlights(ctx context.Context, query ListQuery) ([]FlightSummary, error) {
	s.sweep(ctx)
	return s.repo.ListFlights(ctx, query)
}

func (s *service) UpdatePrices(ctx context.Context, requester identity.Requester, flightID string, req UpdatePricesRequest) (*Flight, error) {
	if !requester.IsManager() {
		return nil, faults.Unauthorized("only managers can edit prices")
	}

	id, err := uuid.Parse(flightID)
	if err != nil {
		return nil, faults.Validation("invalid flight id: %s", flightID)
	}

	flight, err := s.getFlight(ctx, id)
	if err != nil {
		return nil, err
	}
	if !flight.Status.Bookable() {
		return nil, faults.InvalidState("prices of a %s flight cannot be edited", flight.Status)
	}

	updates := map[string]interface{}{}
	if req.PriceEconomy != nil {
		updates["price_economy"] = *req.PriceEconomy
	}
	if req.PriceBusiness != nil {
		if flight.PriceBusiness == nil {
			return nil, faults.Validation("flight has no business class")
		}
		updates["price_business"] = *req.PriceBusiness
	}
	if len(updates) == 0 {
		return nil, faults.Validation("no price changes supplied")
	}

	updated, err := s.repo.UpdatePrices(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateFlightCaches(ctx)
	return updated, nil
}

func (s *service) UpdateStatus(ctx context.Context, requester identity.Requester, flightID string, req UpdateStatusRequest) error {
	if !requester.IsManager() {
		return faults.Unauthorized("only managers can update flight status")
	}

	id, err := uuid.Parse(flightID)
	if err != nil {
		return faults.Validation("invalid flight id: %s", flightID)
	}

	flight, err := s.getFlight(ctx, id)
	if err != nil {
		return err
	}

	// Cancellation runs through the refunding workflow, never a raw status write.
	next := Status(req.Status)
	if next == StatusCanceled {
		return faults.Validation("use the cancellation endpoint to cancel a flight")
	}
	if flight.Status == StatusCanceled {
		return faults.InvalidState("canceled flights cannot change status")
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return err
	}

	s.invalidateFlightCaches(ctx)
	return nil
}

func (s *service) CancelFlight(ctx context.Context, requester identity.Requester, flightID string) error {
	if !requester.IsManager() {
		return faults.Unauthorized("only managers can cancel flights")
	}

	id, err := uuid.Parse(flightID)
	if err != nil {
		return faults.Validation("invalid flight id: %s", flightID)
	}

	flight, err := s.getFlight(ctx, id)
	if err != nil {
		return err
	}

	canceled, err := s.repo.CancelFlightWithRefunds(ctx, id, time.Now().UTC(), s.cfg.Booking.FlightCancelLead)
	if err != nil {
		return err
	}

	s.invalidateFlightCaches(ctx)
	s.log.LogFlightCancelled(ctx, flightID, requester.ManagerID, len(canceled))

	if s.publisher != nil {
		s.publisher.PublishFlightCanceled(ctx, flight, canceled)
	}
	return nil
}

func (s *service) getFlight(ctx context.Context, id uuid.UUID) (*Flight, error) {
	flight, err := s.repo.GetFlight(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("flight %s not found", id)
		}
		return nil, err
	}
	return flight, nil
}

func (s *service) invalidateFlightCaches(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, cache.FlightCachePattern()); err != nil {
		s.log.WithError(err).Warn("failed to invalidate flight caches")
	}
}
