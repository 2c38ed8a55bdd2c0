package reports

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

func (c *Controller) GetOccupancyReport(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	report, err := c.service.GetOccupancyReport(ctx.Request.Context(), requester)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Occupancy report retrieved successfully", report, nil)
}

func (c *Controller) GetRouteRevenues(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	revenues, err := c.service.GetRouteRevenues(ctx.Request.Context(), requester)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Route revenue report retrieved successfully", revenues, nil)
}

func (c *Controller) GetStaffHours(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	hours, err := c.service.GetStaffHours(ctx.Request.Context(), requester)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Staff hours report retrieved successfully", hours, nil)
}
