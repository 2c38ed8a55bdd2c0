package flights

import (
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

// PUBLIC

func (c *Controller) SearchFlights(ctx *gin.Context) {
	var query SearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	flights, err := c.service.SearchFlights(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flights retrieved successfully", flights, nil)
}

func (c *Controller) GetFlightBoard(ctx *gin.Context) {
	board, err := c.service.GetFlightBoard(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight board retrieved successfully", board, nil)
}

func (c *Controller) ListAirports(ctx *gin.Context) {
	airports, err := c.service.ListAirports(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Airports retrieved successfully", airports, nil)
}

func (c *Controller) GetSeatAvailability(ctx *gin.Context) {
	availability, err := c.service.GetSeatAvailability(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat availability retrieved successfully", availability, nil)
}

// MANAGER

func (c *Controller) AddFlightLine(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var req AddFlightLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	line, err := c.service.AddFlightLine(ctx.Request.Context(), requester, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Flight line added successfully", line, nil)
}

func (c *Controller) ListFlightLines(ctx *gin.Context) {
	lines, err := c.service.ListFlightLines(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight lines retrieved successfully", lines, nil)
}

func (c *Controller) CreateFlight(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var req CreateFlightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	flight, err := c.service.CreateFlight(ctx.Request.Context(), requester, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Flight created successfully", flight, nil)
}

func (c *Controller) ListFlights(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	flights, err := c.service.ListFlights(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flights retrieved successfully", flights, nil)
}

func (c *Controller) UpdatePrices(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var req UpdatePricesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	flight, err := c.service.UpdatePrices(ctx.Request.Context(), requester, ctx.Param("id"), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Prices updated successfully", flight, nil)
}

func (c *Controller) UpdateStatus(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.service.UpdateStatus(ctx.Request.Context(), requester, ctx.Param("id"), req); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight status updated successfully", nil, nil)
}

func (c *Controller) CancelFlight(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	if err := c.service.CancelFlight(ctx.Request.Context(), requester, ctx.Param("id")); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight canceled and orders refunded", nil, nil)
}
