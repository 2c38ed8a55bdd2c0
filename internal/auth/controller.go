package auth

import (
	"errors"
	"net/http"

	"flytau/internal/shared/middleware"
	"flytau/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Registration successful", resp, nil)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

func (c *Controller) ManagerLogin(ctx *gin.Context) {
	var req ManagerLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	resp, err := c.service.ManagerLogin(ctx.Request.Context(), &req)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", tokenPair, nil)
}

func (c *Controller) Profile(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	profile, err := c.service.Profile(ctx.Request.Context(), requester)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile retrieved successfully", profile, nil)
}

// respondAuthError keeps credential failures as plain 401s so callers can
// not probe which part of the credential was wrong.
func (c *Controller) respondAuthError(ctx *gin.Context, err error) {
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken) {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid credentials", nil, nil)
		return
	}
	response.RespondError(ctx, err)
}
