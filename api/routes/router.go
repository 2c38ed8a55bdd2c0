// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"flytau/internal/auth"
	"flytau/internal/crew"
	"flytau/internal/customers"
	"flytau/internal/fleet"
	"flytau/internal/flights"
	"flytau/internal/lifecycle"
	"flytau/internal/orders"
	"flytau/internal/reports"
	"flytau/internal/shared/config"
	"flytau/internal/shared/database"
	"flytau/pkg/cache"
	"flytau/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	log    *logger.Logger

	cacheService     cache.Service
	lifecycleService lifecycle.Service
	flightPublisher  flights.Publisher
	orderPublisher   orders.Publisher

	// kept for cross-feature injection during setup
	fleetRepo  fleet.Repository
	flightRepo flights.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger) *Router {
	return &Router{
		config: cfg,
		db:     db,
		log:    log,
	}
}

// SetLifecycleService injects the sweep service shared by read endpoints
// and the background job.
func (r *Router) SetLifecycleService(service lifecycle.Service) {
	r.lifecycleService = service
}

// SetPublishers injects the notification publishers. Both may be nil when
// the broker is disabled; services treat a nil publisher as a no-op.
func (r *Router) SetPublishers(flightPublisher flights.Publisher, orderPublisher orders.Publisher) {
	r.flightPublisher = flightPublisher
	r.orderPublisher = orderPublisher
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupFleetRoutes(api)
		r.setupFlightRoutes(api)
		r.setupOrderRoutes(api)
		r.setupCrewRoutes(api)
		r.setupReportRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "flytau-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "flytau-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	customerRepo := customers.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, customerRepo, r.config, r.log)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

// setupFleetRoutes configures plane and seat map management routes
func (r *Router) setupFleetRoutes(rg *gin.RouterGroup) {
	fleetRepo := fleet.NewRepository(r.db.GetPostgreSQL())
	fleetService := fleet.NewService(fleetRepo)
	fleetController := fleet.NewController(fleetService)

	r.fleetRepo = fleetRepo

	fleet.SetupFleetRoutes(rg, fleetController)
}

// setupFlightRoutes configures flight search, board and management routes
func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	flightRepo := flights.NewRepository(r.db.GetPostgreSQL())
	flightService := flights.NewService(flightRepo, r.fleetRepo, r.config, r.log)

	if r.cacheService != nil {
		flightService.SetCacheService(r.cacheService)
	}
	if r.lifecycleService != nil {
		flightService.SetSweeper(r.lifecycleService)
	}
	if r.flightPublisher != nil {
		flightService.SetPublisher(r.flightPublisher)
	}

	r.flightRepo = flightRepo

	flightController := flights.NewController(flightService)
	flights.SetupFlightRoutes(rg, flightController)
}

// setupOrderRoutes configures booking and cancellation routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) {
	orderRepo := orders.NewRepository(r.db.GetPostgreSQL())
	orderService := orders.NewService(orderRepo, r.flightRepo, r.fleetRepo, r.config, r.log)

	if r.cacheService != nil {
		orderService.SetCacheService(r.cacheService)
	}
	if r.lifecycleService != nil {
		orderService.SetSweeper(r.lifecycleService)
	}
	if r.orderPublisher != nil {
		orderService.SetPublisher(r.orderPublisher)
	}

	orderController := orders.NewController(orderService)
	orders.SetupOrderRoutes(rg, orderController)
}

// setupCrewRoutes configures staff and crew assignment routes
func (r *Router) setupCrewRoutes(rg *gin.RouterGroup) {
	crewRepo := crew.NewRepository(r.db.GetPostgreSQL())
	crewService := crew.NewService(crewRepo, r.flightRepo)
	crewController := crew.NewController(crewService)

	crew.SetupCrewRoutes(rg, crewController)
}

// setupReportRoutes configures manager reporting routes
func (r *Router) setupReportRoutes(rg *gin.RouterGroup) {
	reportRepo := reports.NewRepository(r.db.GetPostgreSQL())
	reportService := reports.NewService(reportRepo)
	reportController := reports.NewController(reportService)

	reports.SetupReportRoutes(rg, reportController)
}
