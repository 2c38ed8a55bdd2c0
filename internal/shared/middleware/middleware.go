package middleware

import (
	"net/http"
	"strings"

	"flytau/internal/shared/config"
	"flytau/internal/shared/identity"
	"flytau/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const requesterKey = "requester"

// JWTAuth creates a JWT authentication middleware
func JWTAuth() gin.HandlerFunc {
	return JWTAuthWithConfig(config.Load())
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token claims", nil, nil)
			c.Abort()
			return
		}
		if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
			c.Abort()
			return
		}

		requester, ok := requesterFromClaims(claims)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token subject", nil, nil)
			c.Abort()
			return
		}
		c.Set(requesterKey, requester)

		c.Next()
	}
}

// requesterFromClaims builds the explicit requester identity from token
// claims. The identity is always constructed here at the request boundary
// and passed into services, never read from ambient state further down.
func requesterFromClaims(claims jwt.MapClaims) (identity.Requester, bool) {
	role, _ := claims["role"].(string)
	switch identity.Role(role) {
	case identity.RoleCustomer:
		email, ok := claims["email"].(string)
		if !ok || email == "" {
			return identity.Requester{}, false
		}
		return identity.Customer(email), true
	case identity.RoleManager:
		managerID, ok := claims["manager_id"].(string)
		if !ok || managerID == "" {
			return identity.Requester{}, false
		}
		return identity.Manager(managerID), true
	default:
		return identity.Requester{}, false
	}
}

// GetRequester extracts the authenticated requester from the gin context.
func GetRequester(c *gin.Context) (identity.Requester, bool) {
	value, exists := c.Get(requesterKey)
	if !exists {
		return identity.Requester{}, false
	}
	requester, ok := value.(identity.Requester)
	return requester, ok
}

// RequireManager middleware that requires an authenticated manager
func RequireManager() gin.HandlerFunc {
	return requireRole(identity.RoleManager)
}

// RequireCustomer middleware that requires an authenticated customer
func RequireCustomer() gin.HandlerFunc {
	return requireRole(identity.RoleCustomer)
}

func requireRole(required identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := GetRequester(c)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "requester identity not found in context", nil, nil)
			c.Abort()
			return
		}

		if requester.Role != required {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth middleware validates JWT token if present but doesn't require it
func OptionalAuth() gin.HandlerFunc {
	return OptionalAuthWithConfig(config.Load())
}

func OptionalAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}
		if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
			c.Next()
			return
		}

		if requester, ok := requesterFromClaims(claims); ok {
			c.Set(requesterKey, requester)
		}

		c.Next()
	}
}

// CORS middleware
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
