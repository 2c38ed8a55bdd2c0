package fleet

import (
	"time"
)

type PlaneSize string

const (
	PlaneSizeSmall PlaneSize = "Small"
	PlaneSizeLarge PlaneSize = "Large"
)

type ClassType string

const (
	ClassEconomy  ClassType = "Economy"
	ClassBusiness ClassType = "Business"
)

// Plane is keyed by its fleet number, assigned by the airline.
type Plane struct {
	PlaneID      int       `json:"plane_id" gorm:"primaryKey;column:plane_id;autoIncrement:false"`
	Manufacturer string    `json:"manufacturer" gorm:"not null;size:100"`
	Size         PlaneSize `json:"size" gorm:"type:varchar(10);not null"`
	PurchaseDate time.Time `json:"purchase_date" gorm:"not null"`

	Classes []PlaneClass `json:"classes,omitempty" gorm:"foreignKey:PlaneID;references:PlaneID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// PlaneClass is the cabin configuration of one class on one plane. At most
// one row per (plane, class type); Business is never configured on a Small
// plane.
type PlaneClass struct {
	PlaneID   int       `json:"plane_id" gorm:"primaryKey;autoIncrement:false"`
	ClassType ClassType `json:"class_type" gorm:"primaryKey;type:varchar(10)"`
	RowsCount int       `json:"rows_count" gorm:"not null;check:rows_count > 0"`
	ColsCount int       `json:"cols_count" gorm:"not null;check:cols_count > 0 AND cols_count <= 26"`
}

// Seat is a template coordinate on a plane. It carries no flight-specific
// occupancy state; occupancy lives on tickets.
type Seat struct {
	PlaneID    int       `json:"plane_id" gorm:"primaryKey;autoIncrement:false"`
	ClassType  ClassType `json:"class_type" gorm:"primaryKey;type:varchar(10)"`
	SeatNumber string    `json:"seat_number" gorm:"primaryKey;size:5"`
}

type AddPlaneRequest struct {
	PlaneID      int    `json:"plane_id" binding:"required,min=1"`
	Manufacturer string `json:"manufacturer" binding:"required,min=2,max=100"`
	Size         string `json:"size" binding:"required,oneof=Small Large"`
	PurchaseDate string `json:"purchase_date" binding:"required"`
}

type AddPlaneClassRequest struct {
	ClassType string `json:"class_type" binding:"required,oneof=Economy Business"`
	RowsCount int    `json:"rows_count" binding:"required"`
	ColsCount int    `json:"cols_count" binding:"required"`
}

type PlaneResponse struct {
	PlaneID      int                  `json:"plane_id"`
	Manufacturer string               `json:"manufacturer"`
	Size         PlaneSize            `json:"size"`
	PurchaseDate time.Time            `json:"purchase_date"`
	Capacity     int                  `json:"capacity"`
	Classes      []PlaneClassResponse `json:"classes"`
}

type PlaneClassResponse struct {
	ClassType ClassType `json:"class_type"`
	RowsCount int       `json:"rows_count"`
	ColsCount int       `json:"cols_count"`
	SeatCount int       `json:"seat_count"`
}

func (p *Plane) ToResponse() PlaneResponse {
	classes := make([]PlaneClassResponse, len(p.Classes))
	for i, pc := range p.Classes {
		classes[i] = PlaneClassResponse{
			ClassType: pc.ClassType,
			RowsCount: pc.RowsCount,
			ColsCount: pc.ColsCount,
			SeatCount: pc.RowsCount * pc.ColsCount,
		}
	}
	return PlaneResponse{
		PlaneID:      p.PlaneID,
		Manufacturer: p.Manufacturer,
		Size:         p.Size,
		PurchaseDate: p.PurchaseDate,
		Capacity:     Capacity(p.Classes),
		Classes:      classes,
	}
}

// TableName specifies the table name for GORM
func (Plane) TableName() string {
	return "planes"
}

func (PlaneClass) TableName() string {
	return "plane_classes"
}

func (Seat) TableName() string {
	return "seats"
}
