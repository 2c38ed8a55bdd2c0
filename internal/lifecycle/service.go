package lifecycle

import (
	"context"
	"time"

	"flytau/pkg/logger"
)

// Service runs the two ordered lifecycle sweeps: flights land first, then
// orders on landed flights complete. Both are idempotent bulk updates, safe
// to run on every inbound read. A sweep failure is logged and swallowed so
// it never fails the request that triggered it.
type Service interface {
	Sweep(ctx context.Context)
	SweepWithResult(ctx context.Context) (flightsLanded, ordersCompleted int64, err error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Sweep(ctx context.Context) {
	if _, _, err := s.SweepWithResult(ctx); err != nil {
		// already logged per stage
		return
	}
}

func (s *service) SweepWithResult(ctx context.Context) (int64, int64, error) {
	now := time.Now().UTC()

	flightsLanded, err := s.repo.LandDepartedFlights(ctx, now)
	if err != nil {
		s.log.LogSweepFailure(ctx, "land_departed_flights", err)
		return 0, 0, err
	}

	ordersCompleted, err := s.repo.CompleteLandedOrders(ctx)
	if err != nil {
		s.log.LogSweepFailure(ctx, "complete_landed_orders", err)
		return flightsLanded, 0, err
	}

	return flightsLanded, ordersCompleted, nil
}
