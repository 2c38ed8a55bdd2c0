package fleet

import (
	"net/http"
	"strconv"

	"flytau/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) AddPlane(ctx *gin.Context) {
	var req AddPlaneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	plane, err := c.service.AddPlane(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Plane added successfully", plane, nil)
}

func (c *Controller) AddPlaneClass(ctx *gin.Context) {
	planeID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid plane ID", nil, err.Error())
		return
	}

	var req AddPlaneClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	plane, err := c.service.AddPlaneClass(ctx.Request.Context(), planeID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Plane class added successfully", plane, nil)
}

func (c *Controller) GetPlane(ctx *gin.Context) {
	planeID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid plane ID", nil, err.Error())
		return
	}

	plane, err := c.service.GetPlane(ctx.Request.Context(), planeID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Plane retrieved successfully", plane, nil)
}

func (c *Controller) ListPlanes(ctx *gin.Context) {
	planes, err := c.service.ListPlanes(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Planes retrieved successfully", planes, nil)
}
