package orders

import (
	"net/http"

	"flytau/internal/shared/identity"
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

// CreateOrder serves both authenticated customers and guests. With a valid
// token the order is owned by the token's email; otherwise the body must
// carry the guest identity fields.
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		requester = identity.Guest(req.Email, req.FirstName, req.LastName)
	}

	order, err := c.service.CreateOrder(ctx.Request.Context(), requester, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Order created successfully", order, nil)
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	order, err := c.service.GetOrder(ctx.Request.Context(), requester, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order retrieved successfully", order, nil)
}

func (c *Controller) GetGuestOrder(ctx *gin.Context) {
	var req GuestOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	order, err := c.service.GetGuestOrder(ctx.Request.Context(), ctx.Param("id"), req.Email)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order retrieved successfully", order, nil)
}

func (c *Controller) ListActiveOrders(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	orders, err := c.service.ListActiveOrders(ctx.Request.Context(), requester)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Active orders retrieved successfully", orders, nil)
}

func (c *Controller) History(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var query HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	orders, err := c.service.History(ctx.Request.Context(), requester, query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Purchase history retrieved successfully", orders, nil)
}

func (c *Controller) CancelOrder(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	result, err := c.service.CancelOrder(ctx.Request.Context(), requester, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order canceled successfully", result, nil)
}

func (c *Controller) CancelGuestOrder(ctx *gin.Context) {
	var req GuestOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.CancelGuestOrder(ctx.Request.Context(), ctx.Param("id"), req.Email)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order canceled successfully", result, nil)
}
