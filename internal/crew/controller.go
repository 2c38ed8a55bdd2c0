package crew

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

func (c *Controller) AddPilot(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var req AddStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	pilot, err := c.service.AddPilot(ctx.Request.Context(), requester, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Pilot added successfully", pilot, nil)
}

func (c *Controller) AddAttendant(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var req AddStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	attendant, err := c.service.AddAttendant(ctx.Request.Context(), requester, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Attendant added successfully", attendant, nil)
}

func (c *Controller) ListPilots(ctx *gin.Context) {
	pilots, err := c.service.ListPilots(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Pilots retrieved successfully", pilots, nil)
}

func (c *Controller) ListAttendants(ctx *gin.Context) {
	attendants, err := c.service.ListAttendants(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Attendants retrieved successfully", attendants, nil)
}

func (c *Controller) GetAssignments(ctx *gin.Context) {
	assignments, err := c.service.GetAssignments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Crew assignments retrieved successfully", assignments, nil)
}

func (c *Controller) AssignCrew(ctx *gin.Context) {
	requester, ok := middleware.GetRequester(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Requester identity not found", nil, nil)
		return
	}

	var req AssignCrewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	assignments, err := c.service.AssignCrew(ctx.Request.Context(), requester, ctx.Param("id"), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Crew assigned successfully", assignments, nil)
}
