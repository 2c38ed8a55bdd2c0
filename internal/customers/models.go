package customers

import "time"

// Customer is the identity record every order points at. Guests get a
// Customer row only; registration adds a RegisteredCustomer row on top.
type Customer struct {
	Email     string    `json:"email" gorm:"primaryKey;size:255"`
	FirstName string    `json:"first_name" gorm:"not null;size:100"`
	LastName  string    `json:"last_name" gorm:"not null;size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// RegisteredCustomer adds the credential and the balance refunds are
// credited to.
type RegisteredCustomer struct {
	Email        string    `json:"email" gorm:"primaryKey;size:255"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	Balance      float64   `json:"balance" gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type CustomerPhone struct {
	Email string `json:"email" gorm:"primaryKey;size:255"`
	Phone string `json:"phone" gorm:"primaryKey;size:20"`
}

type CustomerResponse struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Balance   *float64 `json:"balance,omitempty"`
	Phones    []string `json:"phones,omitempty"`
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

func (RegisteredCustomer) TableName() string {
	return "registered_customers"
}

func (CustomerPhone) TableName() string {
	return "customer_phones"
}
