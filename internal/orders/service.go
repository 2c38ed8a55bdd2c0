package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"flytau/internal/customers"
	"flytau/internal/fleet"
	"flytau/internal/flights"
	"flytau/internal/shared/config"
	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"
	"flytau/pkg/cache"
	"flytau/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Publisher fans order events out to the notification pipeline.
// Best-effort; a publish failure never fails the booking.
type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, order *FlightOrder)
	PublishOrderCanceled(ctx context.Context, order *FlightOrder, refund float64)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetSweeper(sweeper flights.Sweeper)
	SetPublisher(publisher Publisher)

	CreateOrder(ctx context.Context, requester identity.Requester, req CreateOrderRequest) (*OrderResponse, error)
	GetOrder(ctx context.Context, requester identity.Requester, orderID string) (*OrderResponse, error)
	GetGuestOrder(ctx context.Context, orderID, email string) (*OrderResponse, error)
	ListActiveOrders(ctx context.Context, requester identity.Requester) ([]OrderResponse, error)
	History(ctx context.Context, requester identity.Requester, query HistoryQuery) ([]OrderResponse, error)
	CancelOrder(ctx context.Context, requester identity.Requester, orderID string) (*CancellationResponse, error)
	CancelGuestOrder(ctx context.Context, orderID, email string) (*CancellationResponse, error)
}

type service struct {
	repo         Repository
	flightRepo   flights.Repository
	fleetRepo    fleet.Repository
	cfg          *config.Config
	log          *logger.Logger
	cacheService cache.Service
	sweeper      flights.Sweeper
	publisher    Publisher
}

func NewService(repo Repository, flightRepo flights.Repository, fleetRepo fleet.Repository, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		repo:       repo,
		flightRepo: flightRepo,
		fleetRepo:  fleetRepo,
		cfg:        cfg,
		log:        log,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) { s.cacheService = cacheService }
func (s *service) SetSweeper(sweeper flights.Sweeper)         { s.sweeper = sweeper }
func (s *service) SetPublisher(publisher Publisher)           { s.publisher = publisher }

func (s *service) sweep(ctx context.Context) {
	if s.sweeper != nil {
		s.sweeper.Sweep(ctx)
	}
}

func (s *service) CreateOrder(ctx context.Context, requester identity.Requester, req CreateOrderRequest) (*OrderResponse, error) {
	if requester.IsManager() {
		return nil, faults.Unauthorized("managers cannot place orders")
	}

	email, guest, err := resolveBooker(requester, req)
	if err != nil {
		return nil, err
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		return nil, faults.Validation("invalid flight id: %s", req.FlightID)
	}
	if len(req.Seats) == 0 {
		return nil, faults.Validation("at least one seat must be selected")
	}

	flight, err := s.flightRepo.GetFlight(ctx, flightID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("flight %s not found", flightID)
		}
		return nil, err
	}
	if !flight.Status.Bookable() {
		return nil, faults.InvalidState("flight %s is not open for booking", flightID)
	}
	if flight.PlaneID != req.PlaneID {
		return nil, faults.Validation("plane %d does not operate flight %s", req.PlaneID, flightID)
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
	seatMap := fleet.SeatSet(seats)

	order := &FlightOrder{
		ID:            uuid.New(),
		CustomerEmail: email,
		FlightID:      flightID,
		OrderDate:     time.Now().UTC(),
		Status:        StatusActive,
	}

	chosen := make(map[string]struct{}, len(req.Seats))
	for _, sel := range req.Seats {
		classType := fleet.ClassType(sel.ClassType)
		if classType == fleet.ClassBusiness && plane.Size == fleet.PlaneSizeSmall {
			return nil, faults.Validation("business class is not available on this flight")
		}

		key := fleet.SeatKey(classType, sel.SeatNumber)
		if _, dup := chosen[key]; dup {
			return nil, faults.Validation("seat %s (%s) selected twice", sel.SeatNumber, classType)
		}
		chosen[key] = struct{}{}

		if _, ok := seatMap[key]; !ok {
			return nil, faults.Validation("seat %s (%s) does not exist on plane %d", sel.SeatNumber, classType, plane.PlaneID)
		}

		price, ok := flight.PriceFor(classType)
		if !ok {
			return nil, faults.Validation("flight has no %s price", classType)
		}

		order.Tickets = append(order.Tickets, Ticket{
			ID:         uuid.New(),
			OrderID:    order.ID,
			FlightID:   flightID,
			PlaneID:    plane.PlaneID,
			ClassType:  classType,
			SeatNumber: sel.SeatNumber,
			Price:      price,
		})
		order.TotalPayment += price
	}

	if err := s.repo.CreateOrderWithSeatClaims(ctx, order, guest); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, flightID)
	s.log.LogOrderCreated(ctx, order.ID.String(), flightID.String(), email, len(order.Tickets))
	if s.publisher != nil {
		s.publisher.PublishOrderConfirmed(ctx, order)
	}

	resp := order.ToResponse()
	return &resp, nil
}

// resolveBooker extracts the owning email from the requester. Guests must
// supply their identity in the request body; it becomes a Customer row
// inside the booking transaction.
func resolveBooker(requester identity.Requester, req CreateOrderRequest) (string, *customers.Customer, error) {
	if requester.IsCustomer() {
		return requester.Email, nil, nil
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.FirstName == "" || req.LastName == "" {
		return "", nil, faults.Validation("guest bookings require email, first_name and last_name")
	}
	return email, &customers.Customer{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, nil
}

func (s *service) GetOrder(ctx context.Context, requester identity.Requester, orderID string) (*OrderResponse, error) {
	s.sweep(ctx)

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !requester.IsManager() && order.CustomerEmail != requester.Email {
		return nil, faults.Unauthorized("order belongs to another customer")
	}

	resp := order.ToResponse()
	return &resp, nil
}

func (s *service) GetGuestOrder(ctx context.Context, orderID, email string) (*OrderResponse, error) {
	s.sweep(ctx)

	order, err := s.authorizeGuest(ctx, orderID, email)
	if err != nil {
		return nil, err
	}

	resp := order.ToResponse()
	return &resp, nil
}

func (s *service) ListActiveOrders(ctx context.Context, requester identity.Requester) ([]OrderResponse, error) {
	s.sweep(ctx)

	if !requester.IsCustomer() {
		return nil, faults.Unauthorized("only customers have order lists")
	}

	orders, err := s.repo.ListByCustomer(ctx, requester.Email, "", true)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

func (s *service) History(ctx context.Context, requester identity.Requester, query HistoryQuery) ([]OrderResponse, error) {
	s.sweep(ctx)

	if !requester.IsCustomer() {
		return nil, faults.Unauthorized("purchase history requires a registered account")
	}

	orders, err := s.repo.ListByCustomer(ctx, requester.Email, Status(query.Status), false)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

func (s *service) CancelOrder(ctx context.Context, requester identity.Requester, orderID string) (*CancellationResponse, error) {
	if !requester.IsCustomer() {
		return nil, faults.Unauthorized("guest cancellations go through the guest endpoint")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerEmail != requester.Email {
		return nil, faults.Unauthorized("order belongs to another customer")
	}

	return s.cancel(ctx, order.ID)
}

func (s *service) CancelGuestOrder(ctx context.Context, orderID, email string) (*CancellationResponse, error) {
	order, err := s.authorizeGuest(ctx, orderID, email)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, order.ID)
}

func (s *service) cancel(ctx context.Context, orderID uuid.UUID) (*CancellationResponse, error) {
	result, err := s.repo.CancelOrder(ctx, orderID, time.Now().UTC(),
		s.cfg.Booking.OrderCancelLead, s.cfg.Booking.CancellationFeeRate)
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, result.Order.FlightID)
	s.log.LogOrderCancelled(ctx, orderID.String(), result.Fee, result.Refund)
	if s.publisher != nil {
		s.publisher.PublishOrderCanceled(ctx, result.Order, result.Refund)
	}

	return &CancellationResponse{
		OrderID: orderID.String(),
		Fee:     result.Fee,
		Refund:  result.Refund,
	}, nil
}

// authorizeGuest matches an order against the (order id, email) pair a
// guest supplies instead of a session identity.
func (s *service) authorizeGuest(ctx context.Context, orderID, email string) (*FlightOrder, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.CustomerEmail, strings.TrimSpace(email)) {
		return nil, faults.Unauthorized("email does not match this order")
	}
	return order, nil
}

func (s *service) loadOrder(ctx context.Context, orderID string) (*FlightOrder, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, faults.Validation("invalid order id: %s", orderID)
	}

	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("order %s not found", id)
		}
		return nil, err
	}
	return order, nil
}

func toResponses(orders []FlightOrder) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = orders[i].ToResponse()
	}
	return responses
}

func (s *service) invalidateAvailability(ctx context.Context, flightID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, cache.AvailabilityKey(flightID.String())); err != nil {
		s.log.WithError(err).Warn("failed to invalidate availability cache")
	}
}
