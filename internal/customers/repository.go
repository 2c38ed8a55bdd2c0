package customers

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetCustomer(ctx context.Context, email string) (*Customer, error)
	EnsureCustomer(ctx context.Context, customer *Customer) error
	GetRegistered(ctx context.Context, email string) (*RegisteredCustomer, error)
	CreateRegistered(ctx context.Context, customer *Customer, registered *RegisteredCustomer, phones []CustomerPhone) error
	GetPhones(ctx context.Context, email string) ([]string, error)
	CreditBalance(ctx context.Context, email string, amount float64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCustomer(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// EnsureCustomer inserts the identity row if it does not exist yet. Repeat
// guest bookings under the same email reuse the existing row untouched.
func (r *repository) EnsureCustomer(ctx context.Context, customer *Customer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(customer).Error
}

func (r *repository) GetRegistered(ctx context.Context, email string) (*RegisteredCustomer, error) {
	var registered RegisteredCustomer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&registered).Error
	if err != nil {
		return nil, err
	}
	return &registered, nil
}

// CreateRegistered writes the identity, credential and phone rows as one
// unit so registration never half-applies.
func (r *repository) CreateRegistered(ctx context.Context, customer *Customer, registered *RegisteredCustomer, phones []CustomerPhone) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(customer).Error; err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		if err := tx.Create(registered).Error; err != nil {
			return fmt.Errorf("failed to create registered customer: %w", err)
		}
		if len(phones) > 0 {
			if err := tx.Create(&phones).Error; err != nil {
				return fmt.Errorf("failed to create phone numbers: %w", err)
			}
		}
		return nil
	})
}

func (r *repository) GetPhones(ctx context.Context, email string) ([]string, error) {
	var phones []string
	err := r.db.WithContext(ctx).Model(&CustomerPhone{}).
		Where("email = ?", email).
		Pluck("phone", &phones).Error
	return phones, err
}

func (r *repository) CreditBalance(ctx context.Context, email string, amount float64) error {
	return r.db.WithContext(ctx).Model(&RegisteredCustomer{}).
		Where("email = ?", email).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}
