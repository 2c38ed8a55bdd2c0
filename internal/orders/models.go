package orders

import (
	"time"

	"flytau/internal/fleet"

	"github.com/google/uuid"
)

type FlightOrder struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CustomerEmail string    `json:"customer_email" gorm:"not null;size:255;column:customer_email"`
	FlightID      uuid.UUID `json:"flight_id" gorm:"type:uuid;not null"`
	OrderDate     time.Time `json:"order_date" gorm:"not null"`
	Status        Status    `json:"status" gorm:"type:varchar(20);default:'Active'"`
	TotalPayment  float64   `json:"total_payment" gorm:"not null;check:total_payment >= 0"`

	Tickets []Ticket `json:"tickets,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Ticket binds one seat coordinate to one order. The partial unique index
// over (flight_id, plane_id, class_type, seat_number) WHERE NOT canceled is
// the last line of defense against double booking; Canceled mirrors the
// parent order's cancellation so freed seats drop out of the index.
type Ticket struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OrderID    uuid.UUID       `json:"order_id" gorm:"type:uuid;not null"`
	FlightID   uuid.UUID       `json:"flight_id" gorm:"type:uuid;not null"`
	PlaneID    int             `json:"plane_id" gorm:"not null"`
	ClassType  fleet.ClassType `json:"class_type" gorm:"type:varchar(10);not null"`
	SeatNumber string          `json:"seat_number" gorm:"not null;size:5"`
	Price      float64         `json:"price" gorm:"not null;check:price >= 0"`
	Canceled   bool            `json:"canceled" gorm:"not null;default:false"`
}

type SeatSelection struct {
	ClassType  string `json:"class_type" binding:"required,oneof=Economy Business"`
	SeatNumber string `json:"seat_number" binding:"required"`
}

type CreateOrderRequest struct {
	FlightID string          `json:"flight_id" binding:"required"`
	PlaneID  int             `json:"plane_id" binding:"required,min=1"`
	Seats    []SeatSelection `json:"seats" binding:"required"`

	// Guest identity fields, ignored for authenticated customers
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// GuestOrderRequest authorizes a guest against an order by its id and the
// booking email.
type GuestOrderRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type HistoryQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Active Completed Canceled_By_Client Canceled_By_Company"`
}

type TicketResponse struct {
	ClassType  fleet.ClassType `json:"class_type"`
	SeatNumber string          `json:"seat_number"`
	Price      float64         `json:"price"`
}

type OrderResponse struct {
	ID            string           `json:"id"`
	CustomerEmail string           `json:"customer_email"`
	FlightID      string           `json:"flight_id"`
	OrderDate     time.Time        `json:"order_date"`
	Status        Status           `json:"status"`
	TotalPayment  float64          `json:"total_payment"`
	Tickets       []TicketResponse `json:"tickets"`
}

type CancellationResponse struct {
	OrderID string  `json:"order_id"`
	Fee     float64 `json:"fee"`
	Refund  float64 `json:"refund"`
}

func (o *FlightOrder) ToResponse() OrderResponse {
	tickets := make([]TicketResponse, len(o.Tickets))
	for i, t := range o.Tickets {
		tickets[i] = TicketResponse{
			ClassType:  t.ClassType,
			SeatNumber: t.SeatNumber,
			Price:      t.Price,
		}
	}
	return OrderResponse{
		ID:            o.ID.String(),
		CustomerEmail: o.CustomerEmail,
		FlightID:      o.FlightID.String(),
		OrderDate:     o.OrderDate,
		Status:        o.Status,
		TotalPayment:  o.TotalPayment,
		Tickets:       tickets,
	}
}

// TableName specifies the table name for GORM
func (FlightOrder) TableName() string {
	return "flight_orders"
}

func (Ticket) TableName() string {
	return "tickets"
}
