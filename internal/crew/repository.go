package crew

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreatePilot(ctx context.Context, pilot *Pilot) error
	CreateAttendant(ctx context.Context, attendant *FlightAttendant) error
	ListPilots(ctx context.Context) ([]Pilot, error)
	ListAttendants(ctx context.Context) ([]FlightAttendant, error)
	GetPilots(ctx context.Context, ids []string) ([]Pilot, error)
	GetAttendants(ctx context.Context, ids []string) ([]FlightAttendant, error)
	GetAssignments(ctx context.Context, flightID uuid.UUID) ([]string, []string, error)
	ReplaceAssignments(ctx context.Context, flightID uuid.UUID, pilotIDs, attendantIDs []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePilot(ctx context.Context, pilot *Pilot) error {
	return r.db.WithContext(ctx).Create(pilot).Error
}

func (r *repository) CreateAttendant(ctx context.Context, attendant *FlightAttendant) error {
	return r.db.WithContext(ctx).Create(attendant).Error
}

func (r *repository) ListPilots(ctx context.Context) ([]Pilot, error) {
	var pilots []Pilot
	err := r.db.WithContext(ctx).Order("id_number ASC").Find(&pilots).Error
	return pilots, err
}

func (r *repository) ListAttendants(ctx context.Context) ([]FlightAttendant, error) {
	var attendants []FlightAttendant
	err := r.db.WithContext(ctx).Order("id_number ASC").Find(&attendants).Error
	return attendants, err
}

func (r *repository) GetPilots(ctx context.Context, ids []string) ([]Pilot, error) {
	var pilots []Pilot
	err := r.db.WithContext(ctx).Where("id_number IN ?", ids).Find(&pilots).Error
	return pilots, err
}

func (r *repository) GetAttendants(ctx context.Context, ids []string) ([]FlightAttendant, error) {
	var attendants []FlightAttendant
	err := r.db.WithContext(ctx).Where("id_number IN ?", ids).Find(&attendants).Error
	return attendants, err
}

func (r *repository) GetAssignments(ctx context.Context, flightID uuid.UUID) ([]string, []string, error) {
	var pilotIDs []string
	if err := r.db.WithContext(ctx).Model(&FlightPilotAssignment{}).
		Where("flight_id = ?", flightID).
		Pluck("pilot_id", &pilotIDs).Error; err != nil {
		return nil, nil, err
	}

	var attendantIDs []string
	if err := r.db.WithContext(ctx).Model(&FlightAttendantAssignment{}).
		Where("flight_id = ?", flightID).
		Pluck("attendant_id", &attendantIDs).Error; err != nil {
		return nil, nil, err
	}
	return pilotIDs, attendantIDs, nil
}

// ReplaceAssignments swaps a flight's whole crew in one transaction: prior
// assignment rows are deleted, then the new set is inserted. Assignment is
// wholesale, never incremental.
func (r *repository) ReplaceAssignments(ctx context.Context, flightID uuid.UUID, pilotIDs, attendantIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flight_id = ?", flightID).Delete(&FlightPilotAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear pilot assignments: %w", err)
		}
		if err := tx.Where("flight_id = ?", flightID).Delete(&FlightAttendantAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear attendant assignments: %w", err)
		}

		for _, pilotID := range pilotIDs {
			if err := tx.Create(&FlightPilotAssignment{FlightID: flightID, PilotID: pilotID}).Error; err != nil {
				return fmt.Errorf("failed to assign pilot %s: %w", pilotID, err)
			}
		}
		for _, attendantID := range attendantIDs {
			if err := tx.Create(&FlightAttendantAssignment{FlightID: flightID, AttendantID: attendantID}).Error; err != nil {
				return fmt.Errorf("failed to assign attendant %s: %w", attendantID, err)
			}
		}
		return nil
	})
}
