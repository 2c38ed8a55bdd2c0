package auth

// registration request payload
type RegisterRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	FirstName string   `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string   `json:"last_name" binding:"required,min=2,max=100"`
	Phones    []string `json:"phones" binding:"omitempty,dive,min=7,max=20"`
}

// customer login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// manager login request payload
type ManagerLoginRequest struct {
	IDNumber string `json:"id_number" binding:"required,len=9,numeric"`
	Password string `json:"password" binding:"required,min=6"`
}

// represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// authentication response for customers
type AuthResponse struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// authentication response for managers
type ManagerAuthResponse struct {
	IDNumber     string `json:"id_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
