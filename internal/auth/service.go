package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"flytau/internal/customers"
	"flytau/internal/shared/config"
	"flytau/internal/shared/faults"
	"flytau/internal/shared/identity"
	"flytau/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ManagerLogin(ctx context.Context, req *ManagerLoginRequest) (*ManagerAuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Profile(ctx context.Context, requester identity.Requester) (*customers.CustomerResponse, error)
}

type service struct {
	repo         Repository
	customerRepo customers.Repository
	config       *config.Config
	log          *logger.Logger
}

func NewService(repo Repository, customerRepo customers.Repository, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		customerRepo: customerRepo,
		config:       cfg,
		log:          log,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.customerRepo.GetRegistered(ctx, email); err == nil {
		return nil, faults.Validation("email %s is already registered", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &customers.Customer{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	registered := &customers.RegisteredCustomer{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	phones := make([]customers.CustomerPhone, 0, len(req.Phones))
	for _, phone := range req.Phones {
		phones = append(phones, customers.CustomerPhone{Email: email, Phone: phone})
	}

	if err := s.customerRepo.CreateRegistered(ctx, customer, registered, phones); err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(identity.Customer(email))
	if err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, email, "register")
	return &AuthResponse{
		Email:        email,
		FirstName:    customer.FirstName,
		LastName:     customer.LastName,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	registered, err := s.customerRepo.GetRegistered(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.LogAuthFailure(ctx, email, "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registered.PasswordHash), []byte(req.Password)); err != nil {
		s.log.LogAuthFailure(ctx, email, "wrong password")
		return nil, ErrInvalidCredentials
	}

	customer, err := s.customerRepo.GetCustomer(ctx, email)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(identity.Customer(email))
	if err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, email, "login")
	return &AuthResponse{
		Email:        email,
		FirstName:    customer.FirstName,
		LastName:     customer.LastName,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) ManagerLogin(ctx context.Context, req *ManagerLoginRequest) (*ManagerAuthResponse, error) {
	manager, err := s.repo.GetManager(ctx, req.IDNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.LogAuthFailure(ctx, req.IDNumber, "unknown manager id")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte(req.Password)); err != nil {
		s.log.LogAuthFailure(ctx, req.IDNumber, "wrong password")
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.generateTokenPair(identity.Manager(manager.IDNumber))
	if err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, manager.IDNumber, "manager login")
	return &ManagerAuthResponse{
		IDNumber:     manager.IDNumber,
		FirstName:    manager.FirstName,
		LastName:     manager.LastName,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	switch identity.Role(claims.Role) {
	case identity.RoleCustomer:
		// Verify the account still exists before re-issuing
		if _, err := s.customerRepo.GetRegistered(ctx, claims.Email); err != nil {
			return nil, ErrInvalidToken
		}
		return s.generateTokenPair(identity.Customer(claims.Email))
	case identity.RoleManager:
		if _, err := s.repo.GetManager(ctx, claims.ManagerID); err != nil {
			return nil, ErrInvalidToken
		}
		return s.generateTokenPair(identity.Manager(claims.ManagerID))
	default:
		return nil, ErrInvalidToken
	}
}

// Profile returns the registered customer's account view with balance and
// phone numbers.
func (s *service) Profile(ctx context.Context, requester identity.Requester) (*customers.CustomerResponse, error) {
	if !requester.IsCustomer() {
		return nil, faults.Unauthorized("only customers have a profile")
	}

	customer, err := s.customerRepo.GetCustomer(ctx, requester.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("customer %s not found", requester.Email)
		}
		return nil, err
	}
	registered, err := s.customerRepo.GetRegistered(ctx, requester.Email)
	if err != nil {
		return nil, err
	}
	phones, err := s.customerRepo.GetPhones(ctx, requester.Email)
	if err != nil {
		return nil, err
	}

	return &customers.CustomerResponse{
		Email:     customer.Email,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Balance:   &registered.Balance,
		Phones:    phones,
	}, nil
}

func (s *service) generateTokenPair(requester identity.Requester) (*TokenPair, error) {
	now := time.Now()

	accessClaims := claimsFor(requester, "access", now, now.Add(s.config.JWT.JWTExpiresIn))
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := claimsFor(requester, "refresh", now, now.Add(s.config.JWT.RefreshExpiresIn))
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func claimsFor(requester identity.Requester, tokenType string, issuedAt, expiresAt time.Time) JWTClaims {
	subject := requester.Email
	if requester.IsManager() {
		subject = requester.ManagerID
	}
	return JWTClaims{
		Email:     requester.Email,
		ManagerID: requester.ManagerID,
		Role:      string(requester.Role),
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "flytau",
			Subject:   subject,
		},
	}
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
