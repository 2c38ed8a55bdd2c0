package fleet

import (
	"context"
	"errors"
	"time"

	"flytau/internal/shared/faults"

	"gorm.io/gorm"
)

type Service interface {
	AddPlane(ctx context.Context, req AddPlaneRequest) (*PlaneResponse, error)
	AddPlaneClass(ctx context.Context, planeID int, req AddPlaneClassRequest) (*PlaneResponse, error)
	GetPlane(ctx context.Context, planeID int) (*PlaneResponse, error)
	ListPlanes(ctx context.Context) ([]PlaneResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddPlane(ctx context.Context, req AddPlaneRequest) (*PlaneResponse, error) {
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, faults.Validation("purchase_date must be YYYY-MM-DD: %s", req.PurchaseDate)
	}

	if existing, err := s.repo.GetPlane(ctx, req.PlaneID); err == nil && existing != nil {
		return nil, faults.Validation("plane %d already exists", req.PlaneID)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plane := &Plane{
		PlaneID:      req.PlaneID,
		Manufacturer: req.Manufacturer,
		Size:         PlaneSize(req.Size),
		PurchaseDate: purchaseDate,
	}
	if err := s.repo.CreatePlane(ctx, plane); err != nil {
		return nil, err
	}

	resp := plane.ToResponse()
	return &resp, nil
}

// AddPlaneClass configures one cabin class and generates its seat grid.
// Business class is rejected here for Small planes, so a Small plane simply
// never has a Business class row.
func (s *service) AddPlaneClass(ctx context.Context, planeID int, req AddPlaneClassRequest) (*PlaneResponse, error) {
	plane, err := s.repo.GetPlane(ctx, planeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("plane %d not found", planeID)
		}
		return nil, err
	}

	classType := ClassType(req.ClassType)
	if classType == ClassBusiness && plane.Size == PlaneSizeSmall {
		return nil, faults.Validation("business class is not available on small planes")
	}

	exists, err := s.repo.ClassExists(ctx, planeID, classType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, faults.Validation("class %s already configured for plane %d", classType, planeID)
	}

	seats, err := BuildSeats(planeID, classType, req.RowsCount, req.ColsCount)
	if err != nil {
		return nil, err
	}

	class := &PlaneClass{
		PlaneID:   planeID,
		ClassType: classType,
		RowsCount: req.RowsCount,
		ColsCount: req.ColsCount,
	}
	if err := s.repo.CreateClassWithSeats(ctx, class, seats); err != nil {
		return nil, err
	}

	return s.GetPlane(ctx, planeID)
}

func (s *service) GetPlane(ctx context.Context, planeID int) (*PlaneResponse, error) {
	plane, err := s.repo.GetPlaneWithClasses(ctx, planeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("plane %d not found", planeID)
		}
		return nil, err
	}
	resp := plane.ToResponse()
	return &resp, nil
}

func (s *service) ListPlanes(ctx context.Context) ([]PlaneResponse, error) {
	planes, err := s.repo.ListPlanes(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]PlaneResponse, len(planes))
	for i := range planes {
		responses[i] = planes[i].ToResponse()
	}
	return responses, nil
}
