package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Manager is an airline employee account. Managers sign in with their 9
// digit id number, not an email.
type Manager struct {
	IDNumber     string    `json:"id_number" gorm:"primaryKey;size:9;column:id_number"`
	FirstName    string    `json:"first_name" gorm:"not null;size:100"`
	LastName     string    `json:"last_name" gorm:"not null;size:100"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// JWTClaims carries the requester identity inside tokens. Email is set for
// customers, ManagerID for managers, never both.
type JWTClaims struct {
	Email     string `json:"email,omitempty"`
	ManagerID string `json:"manager_id,omitempty"`
	Role      string `json:"role"`
	Type      string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TableName specifies the table name for GORM
func (Manager) TableName() string {
	return "managers"
}
