package fleet

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	CreatePlane(ctx context.Context, plane *Plane) error
	GetPlane(ctx context.Context, planeID int) (*Plane, error)
	GetPlaneWithClasses(ctx context.Context, planeID int) (*Plane, error)
	ListPlanes(ctx context.Context) ([]Plane, error)
	ClassExists(ctx context.Context, planeID int, classType ClassType) (bool, error)
	CreateClassWithSeats(ctx context.Context, class *PlaneClass, seats []Seat) error
	GetSeats(ctx context.Context, planeID int) ([]Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePlane(ctx context.Context, plane *Plane) error {
	return r.db.WithContext(ctx).Create(plane).Error
}

func (r *repository) GetPlane(ctx context.Context, planeID int) (*Plane, error) {
	var plane Plane
	err := r.db.WithContext(ctx).Where("plane_id = ?", planeID).First(&plane).Error
	if err != nil {
		return nil, err
	}
	return &plane, nil
}

func (r *repository) GetPlaneWithClasses(ctx context.Context, planeID int) (*Plane, error) {
	var plane Plane
	err := r.db.WithContext(ctx).
		Preload("Classes").
		Where("plane_id = ?", planeID).
		First(&plane).Error
	if err != nil {
		return nil, err
	}
	return &plane, nil
}

func (r *repository) ListPlanes(ctx context.Context) ([]Plane, error) {
	var planes []Plane
	err := r.db.WithContext(ctx).
		Preload("Classes").
		Order("plane_id ASC").
		Find(&planes).Error
	return planes, err
}

func (r *repository) ClassExists(ctx context.Context, planeID int, classType ClassType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PlaneClass{}).
		Where("plane_id = ? AND class_type = ?", planeID, classType).
		Count(&count).Error
	return count > 0, err
}

// CreateClassWithSeats inserts the class row and its full seat grid as one
// unit so a plane never ends up with a class but no seats.
func (r *repository) CreateClassWithSeats(ctx context.Context, class *PlaneClass, seats []Seat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(class).Error; err != nil {
			return fmt.Errorf("failed to create plane class: %w", err)
		}
		if err := tx.CreateInBatches(seats, 500).Error; err != nil {
			return fmt.Errorf("failed to create seats: %w", err)
		}
		return nil
	})
}

func (r *repository) GetSeats(ctx context.Context, planeID int) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("plane_id = ?", planeID).
		Order("class_type ASC, seat_number ASC").
		Find(&seats).Error
	return seats, err
}
