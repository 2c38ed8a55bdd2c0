package crew

import (
	"time"

	"github.com/google/uuid"
)

// Pilot and FlightAttendant are keyed by their 9 digit national id number.
type Pilot struct {
	IDNumber          string    `json:"id_number" gorm:"primaryKey;size:9;column:id_number"`
	FirstName         string    `json:"first_name" gorm:"not null;size:100"`
	LastName          string    `json:"last_name" gorm:"not null;size:100"`
	LongHaulQualified bool      `json:"long_haul_qualified" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type FlightAttendant struct {
	IDNumber          string    `json:"id_number" gorm:"primaryKey;size:9;column:id_number"`
	FirstName         string    `json:"first_name" gorm:"not null;size:100"`
	LastName          string    `json:"last_name" gorm:"not null;size:100"`
	LongHaulQualified bool      `json:"long_haul_qualified" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type FlightPilotAssignment struct {
	FlightID uuid.UUID `json:"flight_id" gorm:"type:uuid;primaryKey"`
	PilotID  string    `json:"pilot_id" gorm:"primaryKey;size:9"`
}

type FlightAttendantAssignment struct {
	FlightID    uuid.UUID `json:"flight_id" gorm:"type:uuid;primaryKey"`
	AttendantID string    `json:"attendant_id" gorm:"primaryKey;size:9"`
}

type AddStaffRequest struct {
	IDNumber          string `json:"id_number" binding:"required,len=9,numeric"`
	FirstName         string `json:"first_name" binding:"required,min=2,max=100"`
	LastName          string `json:"last_name" binding:"required,min=2,max=100"`
	LongHaulQualified bool   `json:"long_haul_qualified"`
}

type AssignCrewRequest struct {
	PilotIDs     []string `json:"pilot_ids" binding:"required"`
	AttendantIDs []string `json:"attendant_ids" binding:"required"`
}

type AssignmentResponse struct {
	FlightID     string   `json:"flight_id"`
	PilotIDs     []string `json:"pilot_ids"`
	AttendantIDs []string `json:"attendant_ids"`
}

// TableName specifies the table name for GORM
func (Pilot) TableName() string {
	return "pilots"
}

func (FlightAttendant) TableName() string {
	return "flight_attendants"
}

func (FlightPilotAssignment) TableName() string {
	return "flight_pilot_assignments"
}

func (FlightAttendantAssignment) TableName() string {
	return "flight_attendant_assignments"
}
